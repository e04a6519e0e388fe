// Package create implements the HTTP handler that seeds the 7-day
// starter routine for a user.
package create

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

// Handler seeds starter routines.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the routine seeding logic.
type Service interface {
	Create(ctx context.Context, userID string) ([]models.DailyRoutine, error)
}

// request is the JSON body of the endpoint.
type request struct {
	UserID string `json:"user_id" validate:"required"`
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
// @Summary Create starter routine
// @Description Seeds seven routine days starting today, each with the base checklist.
// @Tags Routine
// @Accept json
// @Produce json
// @Success 200 {object} response.Response "The seeded routines"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Seeding failed"
// @Router /routine/create [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.routine.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req request
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

	routines, err := h.service.Create(r.Context(), req.UserID)
	if err != nil {
		log.Error("failed to create routine", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create routine"))
		return
	}

	log.Info("routine created", slog.String("user_id", req.UserID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message":  "Rotina de 7 dias criada com sucesso",
		"routines": routines,
	}))
}
