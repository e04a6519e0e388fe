// Package health implements the liveness probe.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/beluxlabs/belux-backend/internal/http/response"
)

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status":  "ok",
		"service": "belux-backend",
	}))
}
