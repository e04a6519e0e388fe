package models

import "time"

// PaymentNotification is the raw webhook event kept for auditing.
type PaymentNotification struct {
	ID        int       `json:"id"`
	EventType string    `json:"type"`
	Action    string    `json:"action"`
	Payload   []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidatePaymentRequest is the JSON body of POST /payment/validate,
// the interim confirmation path used before the webhook existed.
type ValidatePaymentRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Confirmed bool   `json:"confirmed"`
}

// ActivateSubscriptionRequest is the JSON body of POST /subscription/activate.
type ActivateSubscriptionRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// ExpiryNotice is the message published for users whose premium access
// expires today, consumed by the notification sender.
type ExpiryNotice struct {
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	ExpiresAt time.Time `json:"expires_at"`
}
