// Package validatepayment implements the interim HTTP handler that
// grants 7-day premium after a directly confirmed payment, used where
// the gateway webhook is not wired up yet.
package validatepayment

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/beluxlabs/belux-backend/internal/http/response"
	"github.com/beluxlabs/belux-backend/internal/lib/sl"
	"github.com/beluxlabs/belux-backend/internal/models"
	"github.com/beluxlabs/belux-backend/internal/storage/repository"
)

// Handler validates direct payment confirmations.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the validation logic.
type Service interface {
	ValidatePayment(ctx context.Context, email string) (*models.User, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Validate a payment
// @Description Grants 7-day premium to an existing user after a confirmed payment.
// @Tags Premium
// @Accept json
// @Produce json
// @Param request body models.ValidatePaymentRequest true "E-mail and confirmation flag"
// @Success 200 {object} response.Response "Updated user"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON or unconfirmed payment"
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Grant failed"
// @Router /payment/validate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.premium.validatepayment"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ValidatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	if !req.Confirmed {
		log.Info("payment not confirmed", slog.String("email", req.Email))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("payment not confirmed"))
		return
	}

	user, err := h.service.ValidatePayment(r.Context(), req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		log.Info("user not found", slog.String("email", req.Email))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}
	if err != nil {
		log.Error("failed to validate payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not validate payment"))
		return
	}

	log.Info("payment validated", slog.String("user_id", user.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user,
	}))
}
