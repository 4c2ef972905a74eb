package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pharmconsult/pharmconsult/internal/config"
	"github.com/pharmconsult/pharmconsult/internal/domain/audit"
	"github.com/pharmconsult/pharmconsult/internal/domain/consultation"
	"github.com/pharmconsult/pharmconsult/internal/platform/db"
	"github.com/pharmconsult/pharmconsult/internal/platform/middleware"
	"github.com/pharmconsult/pharmconsult/internal/platform/telemetry"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the consultation API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// serverDeps are the optional database-backed collaborators. Both are nil
// when no DATABASE_URL is configured.
type serverDeps struct {
	auditRepo audit.Repository
	dbPinger  db.Pinger
}

func runServer() error {
	// Config
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Logger
	logger := newLogger(os.Stdout, cfg.IsDev())

	// Database
	var deps serverDeps
	if cfg.AuditEnabled() {
		ctx := context.Background()
		pool, err := db.NewPool(ctx, db.PoolConfig{
			URL:      cfg.DatabaseURL,
			MaxConns: cfg.DBMaxConns,
			MinConns: cfg.DBMinConns,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database, audit trail enabled")
		deps = serverDeps{auditRepo: audit.NewRepoPG(pool), dbPinger: pool}
	} else {
		logger.Info().Msg("DATABASE_URL not set, audit trail disabled")
	}

	e := newServer(cfg, logger, deps)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Bool("tls", cfg.TLSEnabled).Msg("starting server")
		var err error
		if cfg.TLSEnabled {
			err = e.StartTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = e.Start(addr)
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// newServer wires middleware and routes. It performs no I/O.
func newServer(cfg *config.Config, logger zerolog.Logger, deps serverDeps) *echo.Echo {
	metricsProvider := telemetry.NewProvider(telemetry.Config{
		MetricsEnabled: telemetry.BoolPtr(cfg.MetricsEnabled),
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(metricsProvider.MetricsMiddleware())
	e.Use(middleware.SecurityHeaders(middleware.SecurityHeadersConfig{HSTS: cfg.TLSEnabled}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost},
		AllowHeaders:  []string{echo.HeaderContentType, middleware.RequestIDHeader},
		ExposeHeaders: []string{echo.HeaderContentDisposition, middleware.RequestIDHeader},
	}))
	e.Use(echomw.BodyLimit(cfg.BodyLimit))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	if deps.dbPinger != nil {
		e.GET("/health/db", db.HealthHandler(deps.dbPinger))
	}
	if cfg.MetricsEnabled {
		e.GET("/metrics", metricsProvider.PrometheusHandler())
	}

	// API group
	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))
	apiV1.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	var auditor consultation.Auditor
	if deps.auditRepo != nil {
		auditSvc := audit.NewService(deps.auditRepo)
		audit.NewHandler(auditSvc).RegisterRoutes(apiV1)
		auditor = auditSvc
	}

	consultSvc := consultation.NewService(consultationConfig(cfg), auditor, metricsProvider, logger)
	consultation.NewHandler(consultSvc).RegisterRoutes(apiV1)

	return e
}

func consultationConfig(cfg *config.Config) consultation.Config {
	return consultation.Config{
		Eligibility:     cfg.EligibilityPolicy(),
		Triage:          cfg.TriagePolicy(),
		ReferralURL:     cfg.ReferralURL,
		SummaryFileName: cfg.SummaryFileName,
	}
}
