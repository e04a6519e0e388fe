package repository

import (
	"context"
	"fmt"

	"github.com/beluxlabs/belux-backend/internal/models"
)

// SaveQuizResult persists the outcome of a quiz evaluation.
func (s *Storage) SaveQuizResult(ctx context.Context, result models.QuizResult) error {
	const op = "storage.SaveQuizResult"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO quiz_results (id, skin_type, characteristics, recommendations, created_at)
			  VALUES ($1, $2, $3, $4, $5)`
	_, err := s.DB.ExecContext(ctx, query,
		result.ID, result.SkinType, result.Characteristics, result.Recommendations, result.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
