// Package routine seeds and lists the 7-day starter routine a user
// receives after onboarding.
package routine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/beluxlabs/belux-backend/internal/models"
)

// routineDays is the length of the starter routine.
const routineDays = 7

// Repository declares the storage operations the routine service needs.
type Repository interface {
	CreateRoutines(ctx context.Context, routines []models.DailyRoutine) error
	ListRoutines(ctx context.Context, userID string) ([]*models.DailyRoutine, error)
}

// Service seeds and lists starter routines.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// New creates a new routine Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// baseChecklist returns a fresh copy of the tasks each routine day
// starts with.
func baseChecklist() []models.ChecklistItem {
	return []models.ChecklistItem{
		{Task: "Lavar o rosto"},
		{Task: "Aplicar sérum recomendado"},
		{Task: "Usar protetor solar"},
		{Task: "Hidratar a pele"},
		{Task: "Beber água (2L)"},
	}
}

// Create seeds seven routine days starting today, each with its own
// copy of the base checklist, in one transaction.
func (s *Service) Create(ctx context.Context, userID string) ([]models.DailyRoutine, error) {
	const op = "services.routine.Create"

	now := s.now()
	routines := make([]models.DailyRoutine, 0, routineDays)
	for day := 1; day <= routineDays; day++ {
		routines = append(routines, models.DailyRoutine{
			ID:        uuid.New().String(),
			UserID:    userID,
			Day:       day,
			Date:      now.AddDate(0, 0, day-1),
			Checklist: baseChecklist(),
		})
	}

	if err := s.repo.CreateRoutines(ctx, routines); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("starter routine created",
		slog.String("user_id", userID), slog.Int("days", routineDays))
	return routines, nil
}

// List returns the user's routine days ordered by day number.
func (s *Service) List(ctx context.Context, userID string) ([]*models.DailyRoutine, error) {
	const op = "services.routine.List"

	routines, err := s.repo.ListRoutines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return routines, nil
}
