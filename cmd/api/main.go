package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pandey-solutions/saves/internal/api/handlers"
	"github.com/pandey-solutions/saves/internal/api/middleware"
	"github.com/pandey-solutions/saves/internal/api/router"
	"github.com/pandey-solutions/saves/internal/config"
	"github.com/pandey-solutions/saves/internal/domain/session"
	"github.com/pandey-solutions/saves/internal/pkg/logger"
	"github.com/pandey-solutions/saves/internal/pkg/validator"
	"github.com/pandey-solutions/saves/internal/repository/local"
	"github.com/pandey-solutions/saves/internal/repository/memory"
	"github.com/pandey-solutions/saves/internal/repository/postgres"
	"github.com/pandey-solutions/saves/internal/repository/supabase"
	"github.com/pandey-solutions/saves/internal/services"
	"github.com/pandey-solutions/saves/internal/setup"
	"github.com/pandey-solutions/saves/internal/worker"
	"github.com/pandey-solutions/saves/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	})

	if err := run(cfg, log); err != nil {
		log.FatalWithErr(err, "Server exited")
	}
}

// sessionStore is the remote session backend selected by configuration
type sessionStore struct {
	repo   session.Repository
	pinger handlers.Pinger
	sqlDB  *sql.DB
}

func openSessionStore(cfg *config.Config, log *logger.Logger) (*sessionStore, error) {
	switch cfg.SessionStore.Backend {
	case config.StoreSQL:
		db, err := postgres.New(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to open session database: %w", err)
		}
		applied, err := postgres.RunMigrations(db, migrations.GetFS())
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		for _, name := range applied {
			log.With("migration", name).Info("Applied migration")
		}
		repo := postgres.NewSessionRepository(db, cfg.Database.Driver)
		return &sessionStore{repo: repo, pinger: repo, sqlDB: db}, nil

	case config.StoreSupabase:
		if !cfg.RemoteStoreConfigured() {
			log.Warn("Supabase selected without URL or anon key, using local session storage")
			return &sessionStore{}, nil
		}
		client := supabase.NewClient(cfg.SessionStore)
		return &sessionStore{repo: supabase.NewSessionRepository(client, cfg.SessionStore)}, nil

	default:
		return &sessionStore{}, nil
	}
}

func (s *sessionStore) Close() error {
	if s.sqlDB != nil {
		return s.sqlDB.Close()
	}
	return nil
}

func run(cfg *config.Config, log *logger.Logger) error {
	store, err := openSessionStore(cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	views, err := memory.NewViewStateStore(cfg.Maintenance.ViewStateSize)
	if err != nil {
		return err
	}

	val := validator.New()
	sessions := services.NewSessionService(store.repo, log)
	connections := services.NewConnectionService(
		sessions,
		services.RandomInjector{Rate: cfg.Connect.FailureRate},
		cfg.Connect.Latency,
		log,
	)
	viewService := services.NewViewService(views, connections, log)
	dashboards := services.NewDashboardService(sessions, log)

	resolver := handlers.NewSessionResolver(sessions, local.CookieOptions{Secure: cfg.Server.SecureCookies})
	h := &router.Handlers{
		Health:    handlers.NewHealthHandler(store.pinger, cfg.SessionStore.Backend, log),
		Session:   handlers.NewSessionHandler(resolver, sessions),
		View:      handlers.NewViewHandler(resolver, viewService, log, val),
		Connect:   handlers.NewConnectHandler(resolver, viewService, connections, log, val),
		Dashboard: handlers.NewDashboardHandler(resolver, dashboards, log),
		Setup:     handlers.NewSetupHandler(resolver, viewService, setup.OptionsFromConfig(cfg.Setup), log),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	maintenance, err := worker.NewMaintenance(cfg.Maintenance.Schedule, log,
		worker.ViewStateEviction(viewService, cfg.Maintenance.ViewStateTTL, log),
		worker.LimiterCleanup(limiter, log),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(cfg, log, limiter, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := maintenance.Start(ctx); err != nil {
		return err
	}
	defer maintenance.Stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(map[string]interface{}{
			"addr":          srv.Addr,
			"session_store": cfg.SessionStore.Backend,
			"environment":   cfg.Server.Environment,
		}).Info("Starting Saves API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
