package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ibanq/internal/admin"
	"ibanq/internal/audit"
	"ibanq/internal/auth"
	"ibanq/internal/epcqr"
	"ibanq/internal/iban/codec"
	"ibanq/internal/iban/handler"
	ibanmetrics "ibanq/internal/iban/metrics"
	"ibanq/internal/iban/registry"
	"ibanq/internal/iban/service"
	"ibanq/internal/iban/tracer"
	"ibanq/internal/platform/config"
	"ibanq/internal/platform/health"
	"ibanq/internal/platform/logger"
	"ibanq/internal/platform/middleware"
	"ibanq/pkg/platform/validation"
)

// jwtTokenTTL only matters for tokens the server itself would mint; the
// verification path ignores it.
const jwtTokenTTL = time.Hour

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.Load()
	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	log.Info("initializing ibanq",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"auth_mode", cfg.AuthMode,
		"batch_limit", cfg.BatchLimit,
	)

	reg := registry.New()
	cdc := codec.New(reg)

	auditStore := audit.NewInMemoryStore()
	auditPublisher := audit.NewPublisher(auditStore,
		audit.WithAsyncBuffer(cfg.AuditBuffer),
		audit.WithPublisherLogger(log),
	)
	defer auditPublisher.Close()

	svc := service.New(cdc, reg, log,
		service.WithAuditor(auditPublisher),
		service.WithMetrics(ibanmetrics.New()),
		service.WithTracer(tracer.NewOTel()),
		service.WithQREncoder(epcqr.New()),
		service.WithBatchLimit(cfg.BatchLimit),
	)

	authenticator, err := buildAuthenticator(cfg)
	if err != nil {
		log.Error("invalid auth configuration", "error", err)
		os.Exit(1)
	}

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("registry", func() error {
		if len(reg.Countries()) == 0 {
			return errors.New("no country formats registered")
		}
		return nil
	})

	ibanHandler := handler.New(svc, log)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Latency(middleware.NewMetrics()))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.BodyLimit(validation.MaxBodySize))

	// Probes and metrics stay outside the auth boundary.
	healthHandler.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	// Operational endpoints are mounted only when a token is configured.
	if cfg.AdminToken != "" {
		adminHandler := admin.New(admin.NewService(auditStore, reg), log)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdminToken(cfg.AdminToken, log))
			adminHandler.Register(r)
		})
	}

	r.Route("/v1", func(r chi.Router) {
		if authenticator != nil {
			r.Use(middleware.RequireAuth(authenticator, log))
		}
		ibanHandler.Register(r)
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

// buildAuthenticator maps the configured auth mode to a request
// authenticator, or nil for an open service.
func buildAuthenticator(cfg config.Server) (middleware.Authenticator, error) {
	switch cfg.AuthMode {
	case config.AuthAPIKey:
		if cfg.APIKeyHash == "" {
			return nil, errors.New("IBANQ_API_KEY_HASH must be set when auth mode is apikey")
		}
		return auth.NewAPIKeyService(cfg.APIKeyHash), nil
	case config.AuthJWT:
		if cfg.JWTSigningKey == "" {
			return nil, errors.New("IBANQ_JWT_SIGNING_KEY must be set when auth mode is jwt")
		}
		return auth.NewJWTService(cfg.JWTSigningKey, jwtTokenTTL), nil
	default:
		return nil, nil
	}
}
