// Package redeemcode implements the HTTP handler that burns a
// single-use premium code for the user in the URL.
package redeemcode

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/beluxlabs/belux-backend/internal/http/response"
	"github.com/beluxlabs/belux-backend/internal/lib/sl"
	"github.com/beluxlabs/belux-backend/internal/models"
	"github.com/beluxlabs/belux-backend/internal/storage/repository"
)

// Handler redeems premium codes.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the redemption logic.
type Service interface {
	RedeemCode(ctx context.Context, userID, rawCode string) (time.Time, error)
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
// @Summary Redeem a premium code
// @Description Burns the code and grants the user 30-day premium in one transaction. A code can be used exactly once.
// @Tags Premium
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.RedeemCodeRequest true "The code"
// @Success 200 {object} response.Response "Expiry of the new grant"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON, invalid or already-used code"
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Redemption failed"
// @Router /users/{id}/activate-premium-code [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.premium.redeemcode"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "id")

	var req models.RedeemCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	expiresAt, err := h.service.RedeemCode(r.Context(), userID, req.Code)
	switch {
	case errors.Is(err, repository.ErrCodeNotFound):
		log.Info("invalid code", slog.String("user_id", userID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid code"))
		return
	case errors.Is(err, repository.ErrCodeAlreadyUsed):
		log.Info("code already used", slog.String("user_id", userID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("code already used"))
		return
	case errors.Is(err, repository.ErrUserNotFound):
		log.Info("user not found", slog.String("user_id", userID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	case err != nil:
		log.Error("failed to redeem code", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not redeem code"))
		return
	}

	log.Info("code redeemed", slog.String("user_id", userID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"expires_at": expiresAt,
	}))
}
