package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/beluxlabs/belux-backend/internal/models"
)

const userColumns = `id, full_name, email, is_premium, is_subscriber,
			  premium_activated_at, subscription_started_at, trial_ends_at,
			  premium_code, premium_code_expires_at, last_payment_id, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var activatedAt, subscriptionStartedAt, trialEndsAt, codeExpiresAt sql.NullTime
	var premiumCode, lastPaymentID sql.NullString
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.IsPremium, &u.IsSubscriber,
		&activatedAt, &subscriptionStartedAt, &trialEndsAt,
		&premiumCode, &codeExpiresAt, &lastPaymentID, &u.CreatedAt); err != nil {
		return nil, err
	}
	if activatedAt.Valid {
		u.PremiumActivatedAt = &activatedAt.Time
	}
	if subscriptionStartedAt.Valid {
		u.SubscriptionStartedAt = &subscriptionStartedAt.Time
	}
	if trialEndsAt.Valid {
		u.TrialEndsAt = &trialEndsAt.Time
	}
	if codeExpiresAt.Valid {
		u.PremiumCodeExpiresAt = &codeExpiresAt.Time
	}
	u.PremiumCode = premiumCode.String
	u.LastPaymentID = lastPaymentID.String
	return u, nil
}

// CreateUser inserts a new user row.
func (s *Storage) CreateUser(ctx context.Context, user models.User) error {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (id, full_name, email, is_premium, is_subscriber,
			      premium_activated_at, trial_ends_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.DB.ExecContext(ctx, query,
		user.ID, user.FullName, user.Email, user.IsPremium, user.IsSubscriber,
		user.PremiumActivatedAt, user.TrialEndsAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUser returns a user by ID, or ErrUserNotFound.
func (s *Storage) GetUser(ctx context.Context, userID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail returns a user by e-mail, or ErrUserNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpsertPremiumByEmail grants premium to the user with the given e-mail,
// creating the row when it does not exist yet. The insert-or-update is a
// single statement so two concurrent activations for the same e-mail
// cannot create duplicate users.
func (s *Storage) UpsertPremiumByEmail(ctx context.Context, newID, email, fullName string,
	activatedAt, expiresAt time.Time) (*models.User, error) {
	const op = "storage.UpsertPremiumByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (id, full_name, email, is_premium, premium_activated_at, trial_ends_at)
			  VALUES ($1, $2, $3, TRUE, $4, $5)
			  ON CONFLICT (email) DO UPDATE
			  SET is_premium = TRUE,
			      premium_activated_at = EXCLUDED.premium_activated_at,
			      trial_ends_at = EXCLUDED.trial_ends_at
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, newID, fullName, email, activatedAt, expiresAt))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GrantPremiumByEmail activates premium for an existing user only.
// Returns ErrUserNotFound when no row matches; the webhook path relies
// on this to avoid creating users from payment events.
func (s *Storage) GrantPremiumByEmail(ctx context.Context, email string,
	activatedAt, expiresAt time.Time, paymentID string) error {
	const op = "storage.GrantPremiumByEmail"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_premium = TRUE,
			      premium_activated_at = $1,
			      trial_ends_at = $2,
			      last_payment_id = NULLIF($3, '')
			  WHERE email = $4`
	result, err := s.DB.ExecContext(ctx, query, activatedAt, expiresAt, paymentID, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// SetPremiumExpired flips the premium flag off after the window passed.
func (s *Storage) SetPremiumExpired(ctx context.Context, userID string) error {
	const op = "storage.SetPremiumExpired"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET is_premium = FALSE WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ActivateSubscription marks the user as a recurring subscriber.
func (s *Storage) ActivateSubscription(ctx context.Context, userID string, startedAt time.Time) error {
	const op = "storage.ActivateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_subscriber = TRUE, subscription_started_at = $1
			  WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, startedAt, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// FindPremiumExpiringToday returns premium users whose effective expiry
// (code expiry when set, trial expiry otherwise) falls on the current day.
func (s *Storage) FindPremiumExpiringToday(ctx context.Context) ([]*models.User, error) {
	const op = "storage.FindPremiumExpiringToday"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE is_premium = TRUE
			    AND COALESCE(premium_code_expires_at, trial_ends_at)::DATE = CURRENT_DATE`
	rows, err := s.DB.QueryContext(ctx, query)
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
