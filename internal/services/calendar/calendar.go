// Package calendar computes which days of the rolling content calendar
// a user may access. The window spans 30 days back and 60 days ahead of
// today; whether a day inside the window is unlocked depends on the
// user's subscription or premium state.
package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/beluxlabs/belux-backend/internal/models"
)

// Window bounds, counted from today. The lower bound is inclusive, the
// upper bound exclusive.
const (
	DaysBack  = 30
	DaysAhead = 60
)

// defaultTrialDays is the access window applied when a premium grant
// carries an activation date but no explicit expiry.
const defaultTrialDays = 7

// Repository declares the reads the gate needs.
type Repository interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ListEntries(ctx context.Context, userID string) ([]*models.DailyEntry, error)
}

// Service is the calendar gate.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// New creates a new calendar Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// DateKey is the map key format of DayStatuses.
const DateKey = "2006-01-02"

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// unlocked decides whether a single day is accessible to the user.
// Users who never activated see nothing, subscribers included.
// Activated subscribers see every day of the window. Everyone else
// sees the days of their grant: up to and including the explicit
// expiry day when one is set, otherwise the seven days starting at
// activation. The grant window stays visible after the premium flag
// is cleared; past days are history, not access.
func unlocked(user *models.User, day time.Time) bool {
	if user.PremiumActivatedAt == nil {
		return false
	}
	if user.IsSubscriber {
		return true
	}

	activationDay := truncateToDay(*user.PremiumActivatedAt)
	if day.Before(activationDay) {
		return false
	}

	if expiry := user.EffectiveExpiry(); expiry != nil {
		return !day.After(truncateToDay(*expiry))
	}
	return day.Before(activationDay.AddDate(0, 0, defaultTrialDays))
}

// DayStatuses returns the gate verdict for every day of the window,
// keyed by date, with the completion flags of any existing entry
// attached.
func (s *Service) DayStatuses(ctx context.Context, userID string) (map[string]models.DayStatus, error) {
	const op = "services.calendar.DayStatuses"

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	byDay := make(map[string]*models.DailyEntry, len(entries))
	for _, entry := range entries {
		byDay[entry.Date.UTC().Format(DateKey)] = entry
	}

	today := truncateToDay(s.now())
	statuses := make(map[string]models.DayStatus, DaysBack+DaysAhead)
	for offset := -DaysBack; offset < DaysAhead; offset++ {
		day := today.AddDate(0, 0, offset)
		key := day.Format(DateKey)

		status := models.DayStatus{Status: models.DayBlocked}
		if unlocked(user, day) {
			status.Status = models.DayUnlocked
		}
		if entry, ok := byDay[key]; ok {
			status.EntryExists = true
			status.HasPhoto = entry.FacePhotoBase64 != ""
			status.HasChecklist = entry.HasCompletedChecklistItem()
			status.IsComplete = status.HasPhoto && status.HasChecklist
		}
		statuses[key] = status
	}

	s.log.Debug("calendar statuses computed",
		slog.String("user_id", userID), slog.Int("days", len(statuses)))
	return statuses, nil
}
