// Package server assembles the echo instance and the HTTP server around it.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/Ramsey-B/alloy/config"
	"github.com/Ramsey-B/alloy/internal/handlers"
	"github.com/Ramsey-B/alloy/pkg/cache"
	"github.com/Ramsey-B/alloy/pkg/database"
	"github.com/Ramsey-B/alloy/pkg/health"
	"github.com/Ramsey-B/alloy/pkg/middleware"
	"github.com/Ramsey-B/alloy/pkg/repositories"
)

type Options struct {
	Config *config.Config
	Logger ectologger.Logger
	DB     database.DB
	// Cache is optional; nil serves every read from the store.
	Cache  cache.Cache
	Health *health.Checker
	// Verifier enables bearer authentication on /api when set.
	Verifier middleware.TokenVerifier
}

// New builds the echo instance with operational routes and the /api group.
func New(opts Options) *echo.Echo {
	cfg := opts.Config

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.Error(opts.Logger)

	e.Use(echomiddleware.Recover())
	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(opts.Logger))
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))

	opts.Health.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	if opts.Verifier != nil {
		api.Use(middleware.Authentication(opts.Logger, opts.Verifier))
	}

	var rc *handlers.ResponseCache
	if opts.Cache != nil {
		rc = handlers.NewResponseCache(opts.Cache, cfg.CacheTTL, opts.Logger)
	}

	materials := repositories.NewMaterialRepository(opts.DB, opts.Logger)
	conditions := repositories.NewConditionRepository(opts.DB, opts.Logger)
	properties := repositories.NewConditionPropertyRepository(opts.DB, opts.Logger)
	curves := repositories.NewCurveRepository(opts.DB, opts.Logger)
	points := repositories.NewCurvePointRepository(opts.DB, opts.Logger)

	handlers.NewMaterialHandler(materials, conditions, rc).RegisterRoutes(api)
	handlers.NewConditionHandler(conditions, properties, curves, rc).RegisterRoutes(api)
	handlers.NewCurveHandler(curves, points, rc).RegisterRoutes(api)

	return e
}

// NewHTTPServer applies the configured timeouts to handler.
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}
