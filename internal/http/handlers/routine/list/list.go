// Package list implements the HTTP handler that returns a user's
// routine days ordered by day number.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/beluxlabs/belux-backend/internal/http/response"
	"github.com/beluxlabs/belux-backend/internal/lib/sl"
	"github.com/beluxlabs/belux-backend/internal/models"
)

// Handler lists routine days.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the listing logic.
type Service interface {
	List(ctx context.Context, userID string) ([]*models.DailyRoutine, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List routine days
// @Tags Routine
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response "Routine days ordered by day number"
// @Failure 500 {object} response.ErrorResponse "Listing failed"
// @Router /routine/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.routine.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "id")

	routines, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Error("failed to list routines", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list routines"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"routines": routines,
	}))
}
