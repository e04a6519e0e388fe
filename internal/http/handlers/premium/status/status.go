// Package status implements the HTTP handler that reports the user's
// effective premium state, flipping expired grants off along the way.
package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/beluxlabs/belux-backend/internal/http/response"
	"github.com/beluxlabs/belux-backend/internal/lib/sl"
	"github.com/beluxlabs/belux-backend/internal/services/premium"
	"github.com/beluxlabs/belux-backend/internal/storage/repository"
)

// Handler reports premium status.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the status check logic.
type Service interface {
	CheckStatus(ctx context.Context, userID string) (*premium.Status, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Premium status
// @Description Resolves the user's premium state. An expired grant is persisted as non-premium before the expired status is returned.
// @Tags Premium
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response "active, expired or no_premium"
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Failure 500 {object} response.ErrorResponse "Status check failed"
// @Router /users/{id}/check-premium-status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.premium.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "id")

	status, err := h.service.CheckStatus(r.Context(), userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		log.Info("user not found", slog.String("user_id", userID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}
	if err != nil {
		log.Error("failed to check premium status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check premium status"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(status))
}
