// Package admingenerate implements the admin HTTP handler that mints
// unused premium codes for later distribution. The caller proves
// adminship with a password checked against a bcrypt hash from the
// configuration.
package admingenerate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"golang.org/x/crypto/bcrypt"

	"github.com/beluxlabs/belux-backend/internal/http/response"
	"github.com/beluxlabs/belux-backend/internal/lib/sl"
	"github.com/beluxlabs/belux-backend/internal/models"
)

// Handler mints premium codes for admins.
type Handler struct {
	log               *slog.Logger
	service           Service
	validate          *validator.Validate
	adminPasswordHash string
}

// Service is the code minting logic.
type Service interface {
	GenerateCode(ctx context.Context) (*models.PremiumCode, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service, adminPasswordHash string) *Handler {
	return &Handler{
		log:               log,
		service:           service,
		validate:          validator.New(),
		adminPasswordHash: adminPasswordHash,
	}
}

// ServeHTTP godoc
// @Summary Generate a premium code
// @Description Mints a new unused premium code. Requires the admin password.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body models.GenerateCodeRequest true "Admin password"
// @Success 200 {object} response.Response "The new code"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 403 {object} response.ErrorResponse "Wrong password"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Minting failed"
// @Router /admin/generate-premium-code [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.premium.admingenerate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.GenerateCodeRequest
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

	if err := bcrypt.CompareHashAndPassword([]byte(h.adminPasswordHash), []byte(req.AdminPassword)); err != nil {
		log.Warn("admin password rejected")
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("wrong admin password"))
		return
	}

	code, err := h.service.GenerateCode(r.Context())
	if err != nil {
		log.Error("failed to generate code", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not generate code"))
		return
	}

	log.Info("code generated", slog.String("code", code.Code))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"code": code.Code,
	}))
}
