package repository

import (
	"context"
	"fmt"

	"github.com/beluxlabs/belux-backend/internal/models"
)

// Stats aggregates the counters shown on the admin dashboard.
type Stats struct {
	TotalUsers    int `json:"total_users"`
	PremiumUsers  int `json:"premium_users"`
	Subscribers   int `json:"subscribers"`
	TotalAnalyses int `json:"total_analyses"`
	TotalQuiz     int `json:"total_quiz_completions"`
}

// CountStats returns the aggregated dashboard counters.
func (s *Storage) CountStats(ctx context.Context) (*Stats, error) {
	const op = "storage.CountStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      (SELECT COUNT(*) FROM users),
			      (SELECT COUNT(*) FROM users WHERE is_premium = TRUE),
			      (SELECT COUNT(*) FROM users WHERE is_subscriber = TRUE),
			      (SELECT COUNT(*) FROM facial_analyses),
			      (SELECT COUNT(*) FROM quiz_results)`
	var st Stats
	err := s.DB.QueryRowContext(ctx, query).Scan(
		&st.TotalUsers, &st.PremiumUsers, &st.Subscribers, &st.TotalAnalyses, &st.TotalQuiz)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &st, nil
}

// RecentUsers returns the latest registered users.
func (s *Storage) RecentUsers(ctx context.Context, limit int) ([]*models.User, error) {
	const op = "storage.RecentUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  ORDER BY created_at DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
