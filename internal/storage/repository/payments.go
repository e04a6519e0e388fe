package repository

import (
	"context"
	"fmt"

	"github.com/beluxlabs/belux-backend/internal/models"
)

// SavePaymentNotification records a raw webhook event for auditing.
func (s *Storage) SavePaymentNotification(ctx context.Context, n models.PaymentNotification) (int, error) {
	const op = "storage.SavePaymentNotification"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payment_notifications (event_type, action, payload, created_at)
			  VALUES ($1, $2, $3, NOW()) RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, n.EventType, n.Action, n.Payload).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}
