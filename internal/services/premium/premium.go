// Package premium implements the premium-access ledger: registration,
// the three grant paths (manual code, auto-activation, payment webhook),
// code minting and the status check that expires stale grants. Every
// operation is idempotent with respect to repeated identical input, and
// code redemption delegates to the storage layer's single-transaction
// conditional update so the same code can never be granted twice.
package premium

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/beluxlabs/belux-backend/internal/lib/premiumcode"
	"github.com/beluxlabs/belux-backend/internal/lib/sl"
	"github.com/beluxlabs/belux-backend/internal/models"
	"github.com/beluxlabs/belux-backend/internal/storage/repository"
)

// Grant windows. The webhook path deliberately grants a shorter window
// than the code paths; do not unify without a product decision.
const (
	CodeGrantDays    = 30
	WebhookGrantDays = 7
)

// codeMintAttempts bounds the retry loop on code collisions.
const codeMintAttempts = 5

// Repository declares the storage operations the ledger needs.
type Repository interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpsertPremiumByEmail(ctx context.Context, newID, email, fullName string, activatedAt, expiresAt time.Time) (*models.User, error)
	GrantPremiumByEmail(ctx context.Context, email string, activatedAt, expiresAt time.Time, paymentID string) error
	SetPremiumExpired(ctx context.Context, userID string) error
	ActivateSubscription(ctx context.Context, userID string, startedAt time.Time) error
	CreateCode(ctx context.Context, code models.PremiumCode) error
	RedeemCode(ctx context.Context, userID, code string, redeemedAt, expiresAt time.Time) error
}

// Cache holds recently computed premium statuses.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service is the premium ledger.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// New creates a new premium Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Status is the outcome of a premium status check.
type Status struct {
	IsPremium     bool       `json:"is_premium"`
	Status        string     `json:"status"` // active, expired or no_premium
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	ExpiredAt     *time.Time `json:"expired_at,omitempty"`
	DaysRemaining *int       `json:"days_remaining,omitempty"`
	Message       string     `json:"message,omitempty"`
}

// Status values.
const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusNoPremium = "no_premium"
)

func statusCacheKey(userID string) string {
	return fmt.Sprintf("premium:status:%s", userID)
}

func (s *Service) invalidateStatus(ctx context.Context, userID string) {
	if err := s.cache.Invalidate(ctx, statusCacheKey(userID)); err != nil {
		s.log.Warn("failed to invalidate status cache", slog.String("user_id", userID), sl.Err(err))
	}
}

// RegisterUser returns the existing user for the e-mail unchanged, or
// creates a new non-premium user. A losing duplicate-insert race
// resolves to a harmless re-read.
func (s *Service) RegisterUser(ctx context.Context, fullName, email string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	newUser := models.User{
		ID:        uuid.New().String(),
		FullName:  fullName,
		Email:     email,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateUser(ctx, newUser); err != nil {
		// Lost the insert race against a concurrent registration.
		if existing, readErr := s.repo.GetUserByEmail(ctx, email); readErr == nil {
			return existing, nil
		}
		return nil, err
	}

	s.log.Info("registered new user", slog.String("user_id", newUser.ID))
	return &newUser, nil
}

// ActivatePremiumAuto upserts the user by e-mail and grants 30-day
// premium; calling it twice recomputes the expiry without creating a
// duplicate user.
func (s *Service) ActivatePremiumAuto(ctx context.Context, email, fullName string) (*models.User, time.Time, error) {
	now := s.now()
	expiresAt := now.AddDate(0, 0, CodeGrantDays)

	user, err := s.repo.UpsertPremiumByEmail(ctx, uuid.New().String(), email, fullName, now, expiresAt)
	if err != nil {
		return nil, time.Time{}, err
	}
	s.invalidateStatus(ctx, user.ID)

	s.log.Info("premium auto-activated", slog.String("user_id", user.ID))
	return user, expiresAt, nil
}

// RedeemCode burns a single-use code and grants the user 30-day
// premium as one transaction. Returns repository.ErrCodeNotFound,
// ErrCodeAlreadyUsed or ErrUserNotFound for the handler to map.
func (s *Service) RedeemCode(ctx context.Context, userID, rawCode string) (time.Time, error) {
	code := premiumcode.Normalize(rawCode)
	now := s.now()
	expiresAt := now.AddDate(0, 0, CodeGrantDays)

	if err := s.repo.RedeemCode(ctx, userID, code, now, expiresAt); err != nil {
		return time.Time{}, err
	}
	s.invalidateStatus(ctx, userID)

	s.log.Info("premium code redeemed",
		slog.String("user_id", userID), slog.String("code", code))
	return expiresAt, nil
}

// mintCode inserts a fresh unused code, retrying on the unlikely
// collision with an existing one.
func (s *Service) mintCode(ctx context.Context) (*models.PremiumCode, error) {
	for range codeMintAttempts {
		code := models.PremiumCode{
			Code:      premiumcode.New(),
			CreatedAt: s.now(),
		}
		err := s.repo.CreateCode(ctx, code)
		if err == nil {
			return &code, nil
		}
		if !errors.Is(err, repository.ErrCodeExists) {
			return nil, err
		}
		s.log.Warn("premium code collision, minting again", slog.String("code", code.Code))
	}
	return nil, fmt.Errorf("could not mint a unique premium code in %d attempts", codeMintAttempts)
}

// GenerateCode mints a new unused code for later manual redemption.
func (s *Service) GenerateCode(ctx context.Context) (*models.PremiumCode, error) {
	code, err := s.mintCode(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Info("premium code generated", slog.String("code", code.Code))
	return code, nil
}

// GenerateAndActivateCode provisions premium after a payment without
// manual code entry: finds or creates the user, mints a fresh code and
// immediately redeems it for a 30-day grant.
func (s *Service) GenerateAndActivateCode(ctx context.Context, email, fullName string) (string, *models.User, time.Time, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		user, err = s.RegisterUser(ctx, fullName, email)
	}
	if err != nil {
		return "", nil, time.Time{}, err
	}

	code, err := s.mintCode(ctx)
	if err != nil {
		return "", nil, time.Time{}, err
	}

	expiresAt, err := s.RedeemCode(ctx, user.ID, code.Code)
	if err != nil {
		return "", nil, time.Time{}, err
	}

	updated, err := s.repo.GetUser(ctx, user.ID)
	if err != nil {
		return "", nil, time.Time{}, err
	}

	s.log.Info("premium code generated and activated",
		slog.String("user_id", user.ID), slog.String("code", code.Code))
	return code.Code, updated, expiresAt, nil
}

// CheckStatus resolves the user's effective premium state. An expired
// grant is persisted as non-premium before the expired status is
// returned, so the check is a state transition and not just a read.
func (s *Service) CheckStatus(ctx context.Context, userID string) (*Status, error) {
	var cached Status
	if found, err := s.cache.Get(ctx, statusCacheKey(userID), &cached); err == nil && found {
		return &cached, nil
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	expiresAt := user.EffectiveExpiry()
	if user.IsPremium && expiresAt != nil {
		now := s.now()
		if now.After(*expiresAt) {
			if err := s.repo.SetPremiumExpired(ctx, userID); err != nil {
				return nil, err
			}
			s.invalidateStatus(ctx, userID)
			return &Status{
				Status:    StatusExpired,
				ExpiredAt: expiresAt,
				Message:   "Seu acesso premium expirou. Renove sua assinatura!",
			}, nil
		}

		daysRemaining := int(expiresAt.Sub(now).Hours() / 24)
		status := Status{
			IsPremium:     true,
			Status:        StatusActive,
			ExpiresAt:     expiresAt,
			DaysRemaining: &daysRemaining,
		}
		if err := s.cache.Set(ctx, statusCacheKey(userID), status, time.Minute); err != nil {
			s.log.Warn("failed to cache premium status", sl.Err(err))
		}
		return &status, nil
	}

	return &Status{
		Status:  StatusNoPremium,
		Message: "Você precisa de acesso premium para usar esta área.",
	}, nil
}

// OnPaymentApproved is the webhook-triggered grant: 7-day premium for
// an existing user. A payment for an unknown e-mail is logged and
// dropped; the webhook path never creates users.
func (s *Service) OnPaymentApproved(ctx context.Context, email, paymentID string, amount float64) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		s.log.Warn("payment approved for unknown user",
			slog.String("email", email), slog.String("payment_id", paymentID))
		return nil
	}
	if err != nil {
		return err
	}

	now := s.now()
	if err := s.repo.GrantPremiumByEmail(ctx, email, now, now.AddDate(0, 0, WebhookGrantDays), paymentID); err != nil {
		return err
	}
	s.invalidateStatus(ctx, user.ID)

	s.log.Info("premium granted via payment webhook",
		slog.String("user_id", user.ID),
		slog.String("payment_id", paymentID),
		slog.Float64("amount", amount))
	return nil
}

// ValidatePayment is the interim direct confirmation path: 7-day grant
// for an existing user. Returns repository.ErrUserNotFound when the
// e-mail is unknown.
func (s *Service) ValidatePayment(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.repo.GrantPremiumByEmail(ctx, email, now, now.AddDate(0, 0, WebhookGrantDays), ""); err != nil {
		return nil, err
	}
	s.invalidateStatus(ctx, user.ID)

	return s.repo.GetUser(ctx, user.ID)
}

// ActivateSubscription marks the user as a recurring subscriber with an
// unrestricted content window.
func (s *Service) ActivateSubscription(ctx context.Context, userID string) error {
	if err := s.repo.ActivateSubscription(ctx, userID, s.now()); err != nil {
		return err
	}
	s.invalidateStatus(ctx, userID)

	s.log.Info("subscription activated", slog.String("user_id", userID))
	return nil
}

// GetUser exposes the ledger's user lookup to handlers.
func (s *Service) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.repo.GetUser(ctx, userID)
}
