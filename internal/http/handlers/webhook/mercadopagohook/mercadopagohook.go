// Package mercadopagohook implements the Mercado Pago webhook endpoint.
// The handler always acknowledges with 200 so the gateway does not
// retry forever; every failure is logged and absorbed.
package mercadopagohook

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/beluxlabs/belux-backend/internal/http/response"
	"github.com/beluxlabs/belux-backend/internal/lib/sl"
	"github.com/beluxlabs/belux-backend/internal/mercadopago"
	"github.com/beluxlabs/belux-backend/internal/models"
)

// Gateway fetches payment details from Mercado Pago.
type Gateway interface {
	Configured() bool
	GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error)
}

// Service is the grant path triggered by approved payments.
type Service interface {
	OnPaymentApproved(ctx context.Context, email, paymentID string, amount float64) error
}

// Auditor keeps the raw webhook events.
type Auditor interface {
	SavePaymentNotification(ctx context.Context, n models.PaymentNotification) (int, error)
}

// Handler processes Mercado Pago webhook events.
type Handler struct {
	log     *slog.Logger
	gateway Gateway
	service Service
	auditor Auditor
}

// New creates a new Handler.
func New(log *slog.Logger, gateway Gateway, service Service, auditor Auditor) *Handler {
	return &Handler{
		log:     log,
		gateway: gateway,
		service: service,
		auditor: auditor,
	}
}

// ServeHTTP godoc
// @Summary Mercado Pago webhook
// @Description Receives payment events. Approved payments grant 7-day premium to the matching existing user. Always answers 200.
// @Tags Webhook
// @Accept json
// @Produce json
// @Success 200 {object} response.Response "Acknowledged"
// @Router /webhook/mercadopago [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.webhook.mercadopago"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ack := func() {
		w.WriteHeader(http.StatusOK)
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"received": true,
		}))
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		ack()
		return
	}

	var event mercadopago.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Warn("unparsable webhook body", sl.Err(err))
		ack()
		return
	}

	if _, err := h.auditor.SavePaymentNotification(r.Context(), models.PaymentNotification{
		EventType: event.Type,
		Action:    event.Action,
		Payload:   body,
	}); err != nil {
		log.Error("failed to audit webhook event", sl.Err(err))
	}

	if !event.IsPaymentEvent() {
		log.Info("ignoring non-payment event", slog.String("type", event.Type))
		ack()
		return
	}
	if !h.gateway.Configured() {
		log.Warn("payment gateway not configured, acknowledging without processing")
		ack()
		return
	}

	payment, err := h.gateway.GetPayment(r.Context(), event.Data.ID)
	if err != nil {
		log.Error("failed to fetch payment", slog.String("payment_id", event.Data.ID), sl.Err(err))
		ack()
		return
	}

	if payment.Status != mercadopago.StatusApproved {
		log.Info("payment not approved, nothing to grant",
			slog.String("payment_id", event.Data.ID),
			slog.String("status", payment.Status))
		ack()
		return
	}

	email := payment.UserEmail()
	if email == "" {
		log.Warn("approved payment without user e-mail", slog.String("payment_id", event.Data.ID))
		ack()
		return
	}

	if err := h.service.OnPaymentApproved(r.Context(), email, event.Data.ID, payment.TransactionAmount); err != nil {
		log.Error("failed to process approved payment", sl.Err(err))
	}
	ack()
}
