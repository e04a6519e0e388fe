// Package entry manages the per-day skincare records: one entry per
// user per calendar day, holding a face photo with its AI analysis, a
// list of analyzed product photos and the daily checklist.
package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/beluxlabs/belux-backend/internal/lib/sl"
	"github.com/beluxlabs/belux-backend/internal/models"
	"github.com/beluxlabs/belux-backend/internal/storage/repository"
)

// Fallback texts returned when the analyzer is unreachable or errors
// out; an entry update never fails because the AI failed.
const (
	FaceAnalysisFallback    = "Não foi possível analisar a foto neste momento. Tente novamente mais tarde."
	ProductAnalysisFallback = "Não foi possível identificar o produto nesta foto. Tente novamente com uma foto mais clara."
)

// dateLayout is the wire format of entry dates.
const dateLayout = "2006-01-02"

// ErrInvalidDate marks a date string that does not parse as 2006-01-02.
var ErrInvalidDate = errors.New("invalid date")

// Repository declares the storage operations the entry service needs.
type Repository interface {
	CreateEntry(ctx context.Context, entry models.DailyEntry) error
	GetEntry(ctx context.Context, entryID string) (*models.DailyEntry, error)
	FindEntryByDay(ctx context.Context, userID string, dayStart time.Time) (*models.DailyEntry, error)
	UpdateEntry(ctx context.Context, entry models.DailyEntry) error
	AppendProductAnalysis(ctx context.Context, entryID, photoBase64, analysis string) error
	ListEntriesSince(ctx context.Context, userID string, since time.Time) ([]*models.DailyEntry, error)
}

// Analyzer produces free-text analyses of user photos.
type Analyzer interface {
	AnalyzeDailyFace(ctx context.Context, imageBase64 string) (string, error)
	AnalyzeProduct(ctx context.Context, imageBase64 string) (string, error)
}

// Service manages daily entries.
type Service struct {
	repo     Repository
	analyzer Analyzer
	log      *slog.Logger
	now      func() time.Time
}

// New creates a new entry Service.
func New(repo Repository, analyzer Analyzer, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		analyzer: analyzer,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDay parses a 2006-01-02 date, defaulting to today when empty.
func (s *Service) parseDay(raw string) (time.Time, error) {
	if raw == "" {
		return truncateToDay(s.now()), nil
	}
	day, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, want %s", ErrInvalidDate, raw, dateLayout)
	}
	return day, nil
}

// CreateOrGetForDay returns the user's entry for the given day,
// creating it with the default checklist when none exists yet. Two
// concurrent calls for the same day converge on a single entry: the
// loser of the insert race re-reads the winner's row.
func (s *Service) CreateOrGetForDay(ctx context.Context, userID, date string) (*models.DailyEntry, error) {
	const op = "services.entry.CreateOrGetForDay"

	day, err := s.parseDay(date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := s.repo.FindEntryByDay(ctx, userID, day)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrEntryNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	entry := models.DailyEntry{
		ID:               uuid.New().String(),
		UserID:           userID,
		Date:             day,
		ProductsPhotos:   []string{},
		ProductsAnalysis: []string{},
		Checklist:        models.DefaultDailyChecklist(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		if winner, readErr := s.repo.FindEntryByDay(ctx, userID, day); readErr == nil {
			return winner, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("daily entry created",
		slog.String("user_id", userID), slog.String("date", day.Format(dateLayout)))
	return &entry, nil
}

// Update applies the non-nil fields of the request to the entry. A new
// face photo is analyzed before the write; when the analyzer fails the
// photo is still stored with the fallback text.
func (s *Service) Update(ctx context.Context, entryID string, req models.UpdateEntryRequest) (*models.DailyEntry, error) {
	const op = "services.entry.Update"

	entry, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if req.FacePhotoBase64 != nil && *req.FacePhotoBase64 != "" {
		entry.FacePhotoBase64 = *req.FacePhotoBase64

		analysis, err := s.analyzer.AnalyzeDailyFace(ctx, *req.FacePhotoBase64)
		if err != nil {
			s.log.Warn("daily face analysis failed, using fallback",
				slog.String("entry_id", entryID), sl.Err(err))
			analysis = FaceAnalysisFallback
		}
		entry.FaceAnalysis = analysis
	}
	if req.Observations != nil {
		entry.Observations = *req.Observations
	}
	if req.Checklist != nil {
		entry.Checklist = req.Checklist
	}
	entry.UpdatedAt = s.now()

	if err := s.repo.UpdateEntry(ctx, *entry); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entry, nil
}

// AnalyzeProduct analyzes a product photo and appends the photo and its
// analysis to the entry's parallel lists in one storage statement.
// Returns the analysis text.
func (s *Service) AnalyzeProduct(ctx context.Context, entryID, photoBase64 string) (string, error) {
	const op = "services.entry.AnalyzeProduct"

	if _, err := s.repo.GetEntry(ctx, entryID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	analysis, err := s.analyzer.AnalyzeProduct(ctx, photoBase64)
	if err != nil {
		s.log.Warn("product analysis failed, using fallback",
			slog.String("entry_id", entryID), sl.Err(err))
		analysis = ProductAnalysisFallback
	}

	if err := s.repo.AppendProductAnalysis(ctx, entryID, photoBase64, analysis); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return analysis, nil
}

// ListRecent returns the user's entries of the last given days, most
// recent first.
func (s *Service) ListRecent(ctx context.Context, userID string, days int) ([]*models.DailyEntry, error) {
	const op = "services.entry.ListRecent"

	since := truncateToDay(s.now()).AddDate(0, 0, -days)
	entries, err := s.repo.ListEntriesSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

// GetByDate returns the user's entry for the given day, or
// repository.ErrEntryNotFound.
func (s *Service) GetByDate(ctx context.Context, userID, date string) (*models.DailyEntry, error) {
	const op = "services.entry.GetByDate"

	day, err := s.parseDay(date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	entry, err := s.repo.FindEntryByDay(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entry, nil
}
