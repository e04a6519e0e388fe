// Package calendarstatus implements the HTTP handler that returns the
// calendar gate verdict for every day of the rolling window.
package calendarstatus

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
	"github.com/beluxlabs/belux-backend/internal/models"
	"github.com/beluxlabs/belux-backend/internal/storage/repository"
)

// Handler reports calendar day statuses.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the calendar gate.
type Service interface {
	DayStatuses(ctx context.Context, userID string) (map[string]models.DayStatus, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Calendar day statuses
// @Description Returns, for each day from 30 days back to 60 days ahead, whether the day is unlocked for the user and the completion flags of any existing entry.
// @Tags Calendar
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response "Day statuses keyed by date"
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Failure 500 {object} response.ErrorResponse "Computation failed"
// @Router /daily-entries/{id}/calendar-status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.calendarstatus"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "id")

	statuses, err := h.service.DayStatuses(r.Context(), userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		log.Info("user not found", slog.String("user_id", userID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}
	if err != nil {
		log.Error("failed to compute calendar statuses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute calendar statuses"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"days": statuses,
	}))
}
