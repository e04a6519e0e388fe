// Package stats implements the admin HTTP handler that reports usage
// counters and the latest registrations.
package stats

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
	"github.com/beluxlabs/belux-backend/internal/storage/repository"
)

// recentUsersLimit bounds the recent registrations list.
const recentUsersLimit = 10

// Repository provides the aggregate reads.
type Repository interface {
	CountStats(ctx context.Context) (*repository.Stats, error)
	RecentUsers(ctx context.Context, limit int) ([]*models.User, error)
}

// Handler reports admin statistics.
type Handler struct {
	log               *slog.Logger
	repo              Repository
	validate          *validator.Validate
	adminPasswordHash string
}

// New creates a new Handler.
func New(log *slog.Logger, repo Repository, adminPasswordHash string) *Handler {
	return &Handler{
		log:               log,
		repo:              repo,
		validate:          validator.New(),
		adminPasswordHash: adminPasswordHash,
	}
}

// ServeHTTP godoc
// @Summary Usage statistics
// @Description Returns user, premium, subscriber, analysis and quiz counters plus the latest registrations. Requires the admin password.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body models.GenerateCodeRequest true "Admin password"
// @Success 200 {object} response.Response "Counters and recent users"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 403 {object} response.ErrorResponse "Wrong password"
// @Failure 500 {object} response.ErrorResponse "Aggregation failed"
// @Router /admin/stats [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.stats"
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

	stats, err := h.repo.CountStats(r.Context())
	if err != nil {
		log.Error("failed to count stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute stats"))
		return
	}

	recent, err := h.repo.RecentUsers(r.Context(), recentUsersLimit)
	if err != nil {
		log.Error("failed to list recent users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list recent users"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"stats":        stats,
		"recent_users": recent,
	}))
}
