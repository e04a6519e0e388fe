// Package update implements the HTTP handler that applies a partial
// update to a daily entry. A new face photo triggers the AI analysis
// before the write.
package update

import (
	"context"
	"encoding/json"
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

// Handler updates daily entries.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the update logic.
type Service interface {
	Update(ctx context.Context, entryID string, req models.UpdateEntryRequest) (*models.DailyEntry, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Update a daily entry
// @Description Applies the non-nil fields of the body. A new face photo is analyzed by the AI; on analyzer failure the photo is stored with a fallback text.
// @Tags Entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param request body models.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} response.Response "The updated entry"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 404 {object} response.ErrorResponse "Entry not found"
// @Failure 500 {object} response.ErrorResponse "Update failed"
// @Router /daily-entries/{id}/update [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	entryID := chi.URLParam(r, "id")

	var req models.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	entry, err := h.service.Update(r.Context(), entryID, req)
	if errors.Is(err, repository.ErrEntryNotFound) {
		log.Info("entry not found", slog.String("entry_id", entryID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("entry not found"))
		return
	}
	if err != nil {
		log.Error("failed to update daily entry", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update daily entry"))
		return
	}

	log.Info("daily entry updated", slog.String("entry_id", entryID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"entry": entry,
	}))
}
