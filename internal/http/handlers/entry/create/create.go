// Package create implements the HTTP handler that returns the entry of
// a calendar day, creating it on first access.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/beluxlabs/belux-backend/internal/http/response"
	"github.com/beluxlabs/belux-backend/internal/lib/sl"
	"github.com/beluxlabs/belux-backend/internal/models"
	entryservice "github.com/beluxlabs/belux-backend/internal/services/entry"
)

// Handler creates or fetches daily entries.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the entry logic.
type Service interface {
	CreateOrGetForDay(ctx context.Context, userID, date string) (*models.DailyEntry, error)
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
// @Summary Create or get the daily entry
// @Description Returns the user's entry for the given day (today when omitted), creating it with the default checklist on first access.
// @Tags Entries
// @Accept json
// @Produce json
// @Param request body models.CreateEntryRequest true "User ID and optional date (2006-01-02)"
// @Success 200 {object} response.Response "The entry"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON or date"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Creation failed"
// @Router /daily-entries/create [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateEntryRequest
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

	entry, err := h.service.CreateOrGetForDay(r.Context(), req.UserID, req.Date)
	if errors.Is(err, entryservice.ErrInvalidDate) {
		log.Info("invalid date", slog.String("date", req.Date))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid date, want 2006-01-02"))
		return
	}
	if err != nil {
		log.Error("failed to create daily entry", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create daily entry"))
		return
	}

	log.Info("daily entry resolved", slog.String("entry_id", entry.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"entry": entry,
	}))
}
