package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/beluxlabs/belux-backend/internal/models"
)

// CreateRoutines inserts the seeded routine days in one transaction.
func (s *Storage) CreateRoutines(ctx context.Context, routines []models.DailyRoutine) error {
	const op = "storage.CreateRoutines"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO daily_routines (id, user_id, day, date, checklist, completed)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	for _, r := range routines {
		checklistJSON, err := json.Marshal(r.Checklist)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if _, err := tx.ExecContext(ctx, query,
			r.ID, r.UserID, r.Day, r.Date, checklistJSON, r.Completed); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListRoutines returns the user's routine days ordered by day number.
func (s *Storage) ListRoutines(ctx context.Context, userID string) ([]*models.DailyRoutine, error) {
	const op = "storage.ListRoutines"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, day, date, checklist, completed
			  FROM daily_routines
			  WHERE user_id = $1
			  ORDER BY day`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.DailyRoutine
	for rows.Next() {
		var r models.DailyRoutine
		var checklistJSON []byte
		if err := rows.Scan(&r.ID, &r.UserID, &r.Day, &r.Date, &checklistJSON, &r.Completed); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal(checklistJSON, &r.Checklist); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
