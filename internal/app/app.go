// Package app wires configuration, infrastructure and the HTTP server.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Ramsey-B/alloy/config"
	"github.com/Ramsey-B/alloy/db"
	"github.com/Ramsey-B/alloy/internal/server"
	"github.com/Ramsey-B/alloy/pkg/cache"
	"github.com/Ramsey-B/alloy/pkg/database"
	"github.com/Ramsey-B/alloy/pkg/dataset"
	"github.com/Ramsey-B/alloy/pkg/health"
	"github.com/Ramsey-B/alloy/pkg/middleware"
	"github.com/Ramsey-B/alloy/pkg/repositories"
	"github.com/Ramsey-B/alloy/pkg/seeder"
	"github.com/Ramsey-B/alloy/pkg/startup"
	"github.com/Ramsey-B/alloy/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

// App owns the process-wide resources. Start must succeed before any
// other method is used.
type App struct {
	cfg     *config.Config
	logger  ectologger.Logger
	version string
	startup *startup.Startup

	db       database.DB
	cache    *cache.RedisCache
	verifier middleware.TokenVerifier
	health   *health.Checker

	stopTracing func(context.Context) error
}

func New(cfg *config.Config, logger ectologger.Logger, version string) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		version: version,
		startup: startup.NewStartup(logger, cfg.StartupMaxAttempts),
	}
}

// Start installs tracing and connects the infrastructure, retrying with
// backoff until it is reachable.
func (a *App) Start(ctx context.Context) error {
	stopTracing, err := tracing.Setup(ctx, a.cfg.TracingConfig())
	if err != nil {
		return err
	}
	a.stopTracing = stopTracing

	a.startup.AddDependency(&startup.Func{
		Name: "database",
		StartFunc: func(ctx context.Context) error {
			store, err := database.Open(ctx, a.cfg.DatabaseConfig(), a.logger)
			if err != nil {
				return err
			}
			a.db = store
			return nil
		},
		StopFunc: func(context.Context) error {
			return a.db.Close()
		},
	})

	if a.cfg.RedisEnabled {
		a.startup.AddDependency(&startup.Func{
			Name: "cache",
			StartFunc: func(ctx context.Context) error {
				rc := cache.NewRedisCache(a.cfg.CacheConfig(), a.logger)
				if err := rc.PingContext(ctx); err != nil {
					_ = rc.Close()
					return errors.Wrap(err, "failed to connect to redis")
				}
				a.cache = rc
				return nil
			},
			StopFunc: func(context.Context) error {
				return a.cache.Close()
			},
		})
	}

	if a.cfg.AuthEnabled {
		a.startup.AddDependency(&startup.Func{
			Name: "auth",
			StartFunc: func(ctx context.Context) error {
				verifier, err := middleware.NewOIDCVerifier(ctx, a.cfg.AuthIssuerURL, a.cfg.AuthClientID)
				if err != nil {
					return err
				}
				a.verifier = verifier
				return nil
			},
		})
	}

	return a.startup.Start(ctx)
}

// Migrate applies the schema migrations. It is not retried.
func (a *App) Migrate(ctx context.Context) error {
	cfg := a.cfg.MigrationConfig()
	cfg.Embedded = db.Migrations

	if err := database.NewMigrationService(a.logger, cfg).Migrate(a.db); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}
	return nil
}

// Seed loads the configured dataset once. It is not retried.
func (a *App) Seed(ctx context.Context) (*seeder.Result, error) {
	source, err := dataset.New(ctx, a.cfg.DatasetOptions())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open dataset")
	}

	materials := repositories.NewMaterialRepository(a.db, a.logger)
	return seeder.NewSeeder(a.db, materials, source, a.logger).Seed(ctx)
}

// Prepare migrates, seeds and returns the echo instance. The readiness
// probe reports ready once seeding succeeded.
func (a *App) Prepare(ctx context.Context) (*echo.Echo, error) {
	var cachePinger health.Pinger
	var responseCache cache.Cache
	if a.cache != nil {
		cachePinger = a.cache
		responseCache = a.cache
	}
	a.health = health.NewChecker(a.db, cachePinger, a.version)

	e := server.New(server.Options{
		Config:   a.cfg,
		Logger:   a.logger,
		DB:       a.db,
		Cache:    responseCache,
		Health:   a.health,
		Verifier: a.verifier,
	})

	if err := a.Migrate(ctx); err != nil {
		return nil, err
	}

	result, err := a.Seed(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.WithContext(ctx).WithFields(map[string]any{
		"skipped":   result.Skipped,
		"materials": result.Materials,
	}).Info("dataset ready")

	a.health.SetReady(true)
	return e, nil
}

// Serve runs the HTTP server until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	e, err := a.Prepare(ctx)
	if err != nil {
		return err
	}

	srv := server.NewHTTPServer(a.cfg, e)
	errCh := make(chan error, 1)
	go func() {
		a.logger.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http server failed")
	case <-ctx.Done():
	}

	a.health.SetReady(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}

// Stop releases the infrastructure in reverse start order and flushes spans.
func (a *App) Stop(ctx context.Context) error {
	err := a.startup.Stop(ctx)
	if a.stopTracing != nil {
		if tErr := a.stopTracing(ctx); tErr != nil && err == nil {
			err = tErr
		}
	}
	return err
}
