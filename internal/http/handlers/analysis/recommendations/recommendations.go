// Package recommendations implements the HTTP handler that lists a
// user's product recommendations, most recent first.
package recommendations

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

// Handler lists product recommendations.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the listing logic.
type Service interface {
	ListRecommendations(ctx context.Context, userID string) ([]*models.ProductRecommendation, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List product recommendations
// @Tags Analysis
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response "Recommendations, most recent first"
// @Failure 500 {object} response.ErrorResponse "Listing failed"
// @Router /users/{id}/recommendations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analysis.recommendations"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "id")

	recs, err := h.service.ListRecommendations(r.Context(), userID)
	if err != nil {
		log.Error("failed to list recommendations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list recommendations"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"recommendations": recs,
	}))
}
