// Package generateactivate implements the HTTP handler that mints a
// fresh premium code and redeems it on the spot, the post-payment
// provisioning path that skips manual code entry.
package generateactivate

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

// Handler mints and redeems codes in one call.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the generate-and-activate logic.
type Service interface {
	GenerateAndActivateCode(ctx context.Context, email, fullName string) (string, *models.User, time.Time, error)
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
// @Summary Generate and activate a premium code
// @Description Finds or creates the user, mints a fresh code and redeems it immediately for a 30-day grant.
// @Tags Premium
// @Accept json
// @Produce json
// @Param request body models.ActivatePremiumRequest true "User e-mail and name"
// @Success 200 {object} response.Response "Code, user and expiry"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Provisioning failed"
// @Router /users/generate-and-activate-code [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.premium.generateactivate"
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

	code, user, expiresAt, err := h.service.GenerateAndActivateCode(r.Context(), req.Email, req.FullName)
	if err != nil {
		log.Error("failed to generate and activate code", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not generate and activate code"))
		return
	}

	log.Info("code generated and activated", slog.String("user_id", user.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"code":       code,
		"user":       user,
		"expires_at": expiresAt,
	}))
}
