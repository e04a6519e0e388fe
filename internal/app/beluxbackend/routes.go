// Package beluxbackend wires the API server: storage, cache, services,
// handlers and the HTTP listener.
package beluxbackend

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	adminstats "github.com/beluxlabs/belux-backend/internal/http/handlers/admin/stats"
	analysisfacial "github.com/beluxlabs/belux-backend/internal/http/handlers/analysis/facial"
	analysislist "github.com/beluxlabs/belux-backend/internal/http/handlers/analysis/list"
	analysisrecs "github.com/beluxlabs/belux-backend/internal/http/handlers/analysis/recommendations"
	entryanalyzeproduct "github.com/beluxlabs/belux-backend/internal/http/handlers/entry/analyzeproduct"
	entrybydate "github.com/beluxlabs/belux-backend/internal/http/handlers/entry/bydate"
	entrycalendarstatus "github.com/beluxlabs/belux-backend/internal/http/handlers/entry/calendarstatus"
	entrycreate "github.com/beluxlabs/belux-backend/internal/http/handlers/entry/create"
	entrylist "github.com/beluxlabs/belux-backend/internal/http/handlers/entry/list"
	entryupdate "github.com/beluxlabs/belux-backend/internal/http/handlers/entry/update"
	"github.com/beluxlabs/belux-backend/internal/http/handlers/health"
	premiumactivateauto "github.com/beluxlabs/belux-backend/internal/http/handlers/premium/activateauto"
	premiumadmingenerate "github.com/beluxlabs/belux-backend/internal/http/handlers/premium/admingenerate"
	premiumgenerateactivate "github.com/beluxlabs/belux-backend/internal/http/handlers/premium/generateactivate"
	premiumredeemcode "github.com/beluxlabs/belux-backend/internal/http/handlers/premium/redeemcode"
	premiumstatus "github.com/beluxlabs/belux-backend/internal/http/handlers/premium/status"
	premiumvalidatepayment "github.com/beluxlabs/belux-backend/internal/http/handlers/premium/validatepayment"
	quizsubmit "github.com/beluxlabs/belux-backend/internal/http/handlers/quiz/submit"
	routinecreate "github.com/beluxlabs/belux-backend/internal/http/handlers/routine/create"
	routinelist "github.com/beluxlabs/belux-backend/internal/http/handlers/routine/list"
	subscriptionactivate "github.com/beluxlabs/belux-backend/internal/http/handlers/subscription/activate"
	"github.com/beluxlabs/belux-backend/internal/http/handlers/user/get"
	"github.com/beluxlabs/belux-backend/internal/http/handlers/user/register"
	webhookmercadopago "github.com/beluxlabs/belux-backend/internal/http/handlers/webhook/mercadopagohook"
	"github.com/beluxlabs/belux-backend/internal/http/middlewarectx"
	"github.com/beluxlabs/belux-backend/internal/mercadopago"
	analysisservice "github.com/beluxlabs/belux-backend/internal/services/analysis"
	calendarservice "github.com/beluxlabs/belux-backend/internal/services/calendar"
	entryservice "github.com/beluxlabs/belux-backend/internal/services/entry"
	premiumservice "github.com/beluxlabs/belux-backend/internal/services/premium"
	quizservice "github.com/beluxlabs/belux-backend/internal/services/quiz"
	routineservice "github.com/beluxlabs/belux-backend/internal/services/routine"
	"github.com/beluxlabs/belux-backend/internal/storage/repository"
)

// Services bundles everything the router needs.
type Services struct {
	Quiz     *quizservice.Service
	Premium  *premiumservice.Service
	Calendar *calendarservice.Service
	Entry    *entryservice.Service
	Analysis *analysisservice.Service
	Routine  *routineservice.Service
	Gateway  *mercadopago.Client
	Repo     *repository.Storage
}

// RegisterRoutes registers every route of the API server.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, adminPasswordHash string) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/health", health.New(logger).ServeHTTP)
			r.Post("/quiz/submit", quizsubmit.New(logger, svc.Quiz).ServeHTTP)

			r.Route("/users", func(r chi.Router) {
				r.Post("/register", register.New(logger, svc.Premium).ServeHTTP)
				r.Post("/activate-premium-auto", premiumactivateauto.New(logger, svc.Premium).ServeHTTP)
				r.Post("/generate-and-activate-code", premiumgenerateactivate.New(logger, svc.Premium).ServeHTTP)
				r.Get("/{id}", get.New(logger, svc.Premium).ServeHTTP)
				r.Post("/{id}/activate-premium-code", premiumredeemcode.New(logger, svc.Premium).ServeHTTP)
				r.Get("/{id}/check-premium-status", premiumstatus.New(logger, svc.Premium).ServeHTTP)
				r.Get("/{id}/analyses", analysislist.New(logger, svc.Analysis).ServeHTTP)
				r.Get("/{id}/recommendations", analysisrecs.New(logger, svc.Analysis).ServeHTTP)
			})

			r.Post("/payment/validate", premiumvalidatepayment.New(logger, svc.Premium).ServeHTTP)
			r.Post("/subscription/activate", subscriptionactivate.New(logger, svc.Premium).ServeHTTP)

			r.Post("/analysis/facial", analysisfacial.New(logger, svc.Analysis).ServeHTTP)

			r.Route("/routine", func(r chi.Router) {
				r.Post("/create", routinecreate.New(logger, svc.Routine).ServeHTTP)
				r.Get("/{id}", routinelist.New(logger, svc.Routine).ServeHTTP)
			})

			r.Route("/daily-entries", func(r chi.Router) {
				r.Post("/create", entrycreate.New(logger, svc.Entry).ServeHTTP)
				r.Get("/{id}", entrylist.New(logger, svc.Entry).ServeHTTP)
				r.Get("/{id}/calendar-status", entrycalendarstatus.New(logger, svc.Calendar).ServeHTTP)
				r.Get("/{id}/date/{date}", entrybydate.New(logger, svc.Entry).ServeHTTP)
				r.Put("/{id}/update", entryupdate.New(logger, svc.Entry).ServeHTTP)
				r.Post("/{id}/analyze-product", entryanalyzeproduct.New(logger, svc.Entry).ServeHTTP)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Post("/generate-premium-code", premiumadmingenerate.New(logger, svc.Premium, adminPasswordHash).ServeHTTP)
				r.Post("/stats", adminstats.New(logger, svc.Repo, adminPasswordHash).ServeHTTP)
			})
		})

		// Gateway callbacks sit outside the rate-limited group; retries
		// from Mercado Pago must never be dropped.
		r.Post("/webhook/mercadopago",
			webhookmercadopago.New(logger, svc.Gateway, svc.Premium, svc.Repo).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
