package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/beluxlabs/belux-backend/internal/models"
)

const pgUniqueViolation = "23505"

// CreateCode inserts a freshly minted code. A collision with an
// existing code maps to ErrCodeExists so callers can mint again.
func (s *Storage) CreateCode(ctx context.Context, code models.PremiumCode) error {
	const op = "storage.CreateCode"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO premium_codes (code, created_at, used, used_by, used_at)
			  VALUES ($1, $2, $3, $4, $5)`
	_, err := s.DB.ExecContext(ctx, query,
		code.Code, code.CreatedAt, code.Used, code.UsedBy, code.UsedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%s: %w", op, ErrCodeExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetCode returns a code row, or ErrCodeNotFound.
func (s *Storage) GetCode(ctx context.Context, code string) (*models.PremiumCode, error) {
	const op = "storage.GetCode"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT code, created_at, used, used_by, used_at
			  FROM premium_codes WHERE code = $1`
	var result models.PremiumCode
	var usedBy sql.NullString
	var usedAt sql.NullTime
	err := s.DB.QueryRowContext(ctx, query, code).Scan(
		&result.Code, &result.CreatedAt, &result.Used, &usedBy, &usedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrCodeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if usedBy.Valid {
		result.UsedBy = &usedBy.String
	}
	if usedAt.Valid {
		result.UsedAt = &usedAt.Time
	}
	return &result, nil
}

// RedeemCode marks the code used and grants the user 30-day premium in
// one transaction. The used flag flips through a conditional update, so
// two concurrent redemptions of the same code resolve to exactly one
// success and one ErrCodeAlreadyUsed. Partial completion (code burned
// but user not upgraded) rolls back.
func (s *Storage) RedeemCode(ctx context.Context, userID, code string,
	redeemedAt, expiresAt time.Time) error {
	const op = "storage.RedeemCode"
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

	result, err := tx.ExecContext(ctx,
		`UPDATE premium_codes
		 SET used = TRUE, used_by = $1, used_at = $2
		 WHERE code = $3 AND used = FALSE`,
		userID, redeemedAt, code)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		var used bool
		err = tx.QueryRowContext(ctx,
			`SELECT used FROM premium_codes WHERE code = $1`, code).Scan(&used)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, ErrCodeNotFound)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return fmt.Errorf("%s: %w", op, ErrCodeAlreadyUsed)
	}

	result, err = tx.ExecContext(ctx,
		`UPDATE users
		 SET is_premium = TRUE,
		     premium_activated_at = $1,
		     trial_ends_at = $2,
		     premium_code = $3,
		     premium_code_expires_at = $2
		 WHERE id = $4`,
		redeemedAt, expiresAt, code, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err = result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
