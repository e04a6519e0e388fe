// Package list implements the HTTP handler that returns a user's
// recent daily entries.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/beluxlabs/belux-backend/internal/http/response"
	"github.com/beluxlabs/belux-backend/internal/lib/sl"
	"github.com/beluxlabs/belux-backend/internal/models"
)

// defaultDays is the window used when the query parameter is absent.
const defaultDays = 30

// Handler lists recent daily entries.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the listing logic.
type Service interface {
	ListRecent(ctx context.Context, userID string, days int) ([]*models.DailyEntry, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List recent daily entries
// @Tags Entries
// @Produce json
// @Param id path string true "User ID"
// @Param days query int false "Window in days, default 30"
// @Success 200 {object} response.Response "Entries, most recent first"
// @Failure 400 {object} response.ErrorResponse "Malformed days parameter"
// @Failure 500 {object} response.ErrorResponse "Listing failed"
// @Router /daily-entries/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "id")

	days := defaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Info("invalid days parameter", slog.String("days", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("days must be a positive integer"))
			return
		}
		days = parsed
	}

	entries, err := h.service.ListRecent(r.Context(), userID, days)
	if err != nil {
		log.Error("failed to list daily entries", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list daily entries"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"entries": entries,
	}))
}
