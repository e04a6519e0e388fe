// Package bydate implements the HTTP handler that returns the entry of
// one specific calendar day.
package bydate

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
	entryservice "github.com/beluxlabs/belux-backend/internal/services/entry"
	"github.com/beluxlabs/belux-backend/internal/storage/repository"
)

// Handler reads entries by date.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the lookup logic.
type Service interface {
	GetByDate(ctx context.Context, userID, date string) (*models.DailyEntry, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Get the entry of a day
// @Tags Entries
// @Produce json
// @Param id path string true "User ID"
// @Param date path string true "Date (2006-01-02)"
// @Success 200 {object} response.Response "The entry"
// @Failure 400 {object} response.ErrorResponse "Malformed date"
// @Failure 404 {object} response.ErrorResponse "No entry for the day"
// @Failure 500 {object} response.ErrorResponse "Lookup failed"
// @Router /daily-entries/{id}/date/{date} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.bydate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "id")
	date := chi.URLParam(r, "date")

	entry, err := h.service.GetByDate(r.Context(), userID, date)
	switch {
	case errors.Is(err, entryservice.ErrInvalidDate):
		log.Info("invalid date", slog.String("date", date))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid date, want 2006-01-02"))
		return
	case errors.Is(err, repository.ErrEntryNotFound):
		log.Info("entry not found", slog.String("user_id", userID), slog.String("date", date))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("entry not found"))
		return
	case err != nil:
		log.Error("failed to get daily entry", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get daily entry"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"entry": entry,
	}))
}
