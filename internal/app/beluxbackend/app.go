package beluxbackend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/beluxlabs/belux-backend/internal/cache"
	"github.com/beluxlabs/belux-backend/internal/config"
	"github.com/beluxlabs/belux-backend/internal/mercadopago"
	"github.com/beluxlabs/belux-backend/internal/migrations"
	analysisservice "github.com/beluxlabs/belux-backend/internal/services/analysis"
	calendarservice "github.com/beluxlabs/belux-backend/internal/services/calendar"
	entryservice "github.com/beluxlabs/belux-backend/internal/services/entry"
	premiumservice "github.com/beluxlabs/belux-backend/internal/services/premium"
	quizservice "github.com/beluxlabs/belux-backend/internal/services/quiz"
	routineservice "github.com/beluxlabs/belux-backend/internal/services/routine"
	"github.com/beluxlabs/belux-backend/internal/skinai"
	"github.com/beluxlabs/belux-backend/internal/storage/repository"
)

// App is the API server with its storage and cache handles.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New builds the API server: opens storage, runs migrations, connects
// the cache and wires every service and route.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	analyzer := skinai.NewClient(cfg.SkinAI)
	gateway := mercadopago.NewClient(cfg.MercadoPago.AccessToken, cfg.MercadoPago.APIURL)

	svc := Services{
		Quiz:     quizservice.New(db, logger),
		Premium:  premiumservice.New(db, cacheRedis, logger),
		Calendar: calendarservice.New(db, logger),
		Entry:    entryservice.New(db, analyzer, logger),
		Analysis: analysisservice.New(db, analyzer, logger),
		Routine:  routineservice.New(db, logger),
		Gateway:  gateway,
		Repo:     db,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, svc, cfg.AdminPasswordHash)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
