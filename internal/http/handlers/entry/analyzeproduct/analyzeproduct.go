// Package analyzeproduct implements the HTTP handler that analyzes a
// product photo and appends it to the entry's product lists.
package analyzeproduct

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/beluxlabs/belux-backend/internal/http/response"
	"github.com/beluxlabs/belux-backend/internal/lib/sl"
	"github.com/beluxlabs/belux-backend/internal/models"
	"github.com/beluxlabs/belux-backend/internal/storage/repository"
)

// Handler analyzes product photos.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the product analysis logic.
type Service interface {
	AnalyzeProduct(ctx context.Context, entryID, photoBase64 string) (string, error)
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
// @Summary Analyze a product photo
// @Description Runs the AI product analysis and appends the photo with its analysis to the entry. On analyzer failure a fallback text is stored instead.
// @Tags Entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param request body models.ProductImageRequest true "The photo"
// @Success 200 {object} response.Response "The analysis text"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 404 {object} response.ErrorResponse "Entry not found"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Analysis failed"
// @Router /daily-entries/{id}/analyze-product [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.analyzeproduct"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	entryID := chi.URLParam(r, "id")

	var req models.ProductImageRequest
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

	analysis, err := h.service.AnalyzeProduct(r.Context(), entryID, req.ImageBase64)
	if errors.Is(err, repository.ErrEntryNotFound) {
		log.Info("entry not found", slog.String("entry_id", entryID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("entry not found"))
		return
	}
	if err != nil {
		log.Error("failed to analyze product", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not analyze product"))
		return
	}

	log.Info("product analyzed", slog.String("entry_id", entryID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"analysis": analysis,
	}))
}
