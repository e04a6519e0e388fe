// Package submit implements the HTTP handler that scores the skin-type
// quiz and returns the resulting classification.
package submit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/beluxlabs/belux-backend/internal/http/response"
	"github.com/beluxlabs/belux-backend/internal/lib/sl"
	"github.com/beluxlabs/belux-backend/internal/models"
)

// Handler scores quiz submissions.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the quiz evaluation logic.
type Service interface {
	Evaluate(ctx context.Context, answers []models.QuizAnswer) (*models.QuizResult, error)
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
// @Summary Score the skin-type quiz
// @Description Evaluates the submitted answers and returns the skin type with characteristics and care recommendations.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param request body models.QuizSubmission true "Quiz answers"
// @Success 200 {object} response.Response "Quiz result"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Evaluation failed"
// @Router /quiz/submit [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.quiz.submit"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.QuizSubmission
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

	result, err := h.service.Evaluate(r.Context(), req.Answers)
	if err != nil {
		log.Error("failed to evaluate quiz", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not evaluate quiz"))
		return
	}

	log.Info("quiz evaluated", slog.String("skin_type", result.SkinType))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"result": result,
	}))
}
