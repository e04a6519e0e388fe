// Package models holds the domain structures shared between the
// business logic and the storage layer, plus the auxiliary types used
// to receive JSON requests before conversion.
package models

import "time"

// User represents a registered user of the coaching product.
// Premium access is time-boxed; subscriber access is unrestricted.
type User struct {
	ID                    string     `json:"id"`
	FullName              string     `json:"full_name"`
	Email                 string     `json:"email"`
	IsPremium             bool       `json:"is_premium"`
	IsSubscriber          bool       `json:"is_subscriber"`
	PremiumActivatedAt    *time.Time `json:"premium_activated_at,omitempty"`
	SubscriptionStartedAt *time.Time `json:"subscription_started_at,omitempty"`
	TrialEndsAt           *time.Time `json:"trial_ends_at,omitempty"`
	PremiumCode           string     `json:"premium_code,omitempty"`
	PremiumCodeExpiresAt  *time.Time `json:"premium_code_expires_at,omitempty"`
	LastPaymentID         string     `json:"last_payment_id,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

// EffectiveExpiry resolves the expiry that currently governs premium
// access: the code-based expiry when present, the trial expiry otherwise.
func (u *User) EffectiveExpiry() *time.Time {
	if u.PremiumCodeExpiresAt != nil {
		return u.PremiumCodeExpiresAt
	}
	return u.TrialEndsAt
}

// RegisterUserRequest is the JSON body of POST /users/register.
type RegisterUserRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// ActivatePremiumRequest is shared by the auto-activation and
// generate-and-activate endpoints. FullName is only required when the
// user does not exist yet.
type ActivatePremiumRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name"`
}
