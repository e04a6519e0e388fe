// Package activateauto implements the HTTP handler that grants 30-day
// premium by e-mail right after a confirmed payment, without a code.
package activateauto

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/beluxlabs/belux-backend/internal/http/response"
	"github.com/beluxlabs/belux-backend/internal/lib/sl"
	"github.com/beluxlabs/belux-backend/internal/models"
)

// Handler grants premium automatically after payment.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the activation logic.
type Service interface {
	ActivatePremiumAuto(ctx context.Context, email, fullName string) (*models.User, time.Time, error)
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
// @Summary Activate premium automatically
// @Description Grants 30-day premium to the user with the given e-mail, creating the user when needed. Repeating the call recomputes the expiry.
// @Tags Premium
// @Accept json
// @Produce json
// @Param request body models.ActivatePremiumRequest true "User e-mail and name"
// @Success 200 {object} response.Response "Updated user and expiry"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Activation failed"
// @Router /users/activate-premium-auto [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.premium.activateauto"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ActivatePremiumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	if req.FullName == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("full_name is required"))
		return
	}

	user, expiresAt, err := h.service.ActivatePremiumAuto(r.Context(), req.Email, req.FullName)
	if err != nil {
		log.Error("failed to activate premium", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not activate premium"))
		return
	}

	log.Info("premium activated automatically", slog.String("user_id", user.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user":       user,
		"expires_at": expiresAt,
	}))
}
