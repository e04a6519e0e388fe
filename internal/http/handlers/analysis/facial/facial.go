// Package facial implements the HTTP handler that runs the premium
// facial analysis and returns the structured report with its Belux
// product recommendation.
package facial

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
	"github.com/beluxlabs/belux-backend/internal/services/analysis"
	"github.com/beluxlabs/belux-backend/internal/storage/repository"
)

// Handler runs facial analyses.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the analysis logic.
type Service interface {
	AnalyzeFace(ctx context.Context, userID, imageBase64 string) (*analysis.Result, error)
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
// @Summary Facial analysis
// @Description Runs the AI facial analysis for a premium user or subscriber and returns the report with a product recommendation.
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body models.FacialAnalysisRequest true "User ID and photo"
// @Success 200 {object} response.Response "Analysis and recommendation"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 403 {object} response.ErrorResponse "Premium access required"
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 502 {object} response.ErrorResponse "Analyzer unavailable"
// @Router /analysis/facial [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analysis.facial"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.FacialAnalysisRequest
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

	result, err := h.service.AnalyzeFace(r.Context(), req.UserID, req.ImageBase64)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		log.Info("user not found", slog.String("user_id", req.UserID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	case errors.Is(err, analysis.ErrPremiumRequired):
		log.Info("premium required", slog.String("user_id", req.UserID))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("premium access required"))
		return
	case err != nil:
		log.Error("failed to analyze face", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not analyze face"))
		return
	}

	log.Info("facial analysis done",
		slog.String("user_id", req.UserID),
		slog.String("analysis_id", result.Analysis.ID))
	render.JSON(w, r, response.StatusOKWithData(result))
}
