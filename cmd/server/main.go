package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	jwttoken "votecast/internal/jwt_token"
	"votecast/internal/platform/config"
	"votecast/internal/platform/httpserver"
	"votecast/internal/platform/logger"
	"votecast/internal/platform/metrics"
	"votecast/internal/platform/otel"
	"votecast/internal/voting/handler"
	votingmetrics "votecast/internal/voting/metrics"
	"votecast/internal/voting/service"
	"votecast/internal/voting/worker"
	"votecast/pkg/platform/audit/publisher"
)

const auditBuffer = 1024

// main wires the stores, delivery transports and voting service behind the
// HTTP router, and runs the background workers until SIGINT or SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("votecast exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	shutdownTracing, err := otel.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Warn("tracing disabled", "error", err)
	}
	if shutdownTracing == nil {
		shutdownTracing = func(context.Context) error { return nil }
	}

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer b.Close()

	notify, err := buildNotifiers(ctx, cfg.Delivery, log)
	if err != nil {
		return fmt.Errorf("delivery: %w", err)
	}
	defer notify.Close()

	auditPublisher := publisher.NewPublisher(b.audit,
		publisher.WithAsyncBuffer(auditBuffer),
		publisher.WithLogger(log),
	)
	defer auditPublisher.Close()

	issueThrottle := b.issueThrottle(cfg.Voting)
	reconcileQueue := worker.NewQueue(cfg.Voting.ReconcileQueue)

	svc, err := service.New(b.stores, notify,
		service.WithLogger(log),
		service.WithMetrics(votingmetrics.New(prometheus.DefaultRegisterer)),
		service.WithAuditPublisher(auditPublisher),
		service.WithThrottle(issueThrottle),
		service.WithReconcileQueue(reconcileQueue),
		service.WithConfig(service.Config{
			CodeTTL:              cfg.Voting.CodeTTL,
			AllowUnverifiedTxRef: cfg.Voting.AllowUnverifiedTxRef,
			ExposeCodes:          cfg.Voting.ExposeCodes,
		}),
	)
	if err != nil {
		return fmt.Errorf("voting service: %w", err)
	}
	if cfg.Voting.ExposeCodes {
		log.Warn("EXPOSE_CODES is enabled; issued codes are returned to clients")
	}

	tokens := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)
	router := newRouter(cfg, handler.New(svc, log), tokens, metrics.New(), log, b.Health, notify.Health)
	srv := httpserver.New(cfg.Addr, router, cfg.RequestTimeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting votecast", "addr", cfg.Addr, "env", cfg.Environment, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return ignoreCancel(worker.NewSweeper(svc, cfg.Voting.CodeSweepInterval, log, issueThrottle).Run(gctx))
	})
	g.Go(func() error {
		return ignoreCancel(worker.NewReconcileWorker(svc, reconcileQueue, cfg.Voting.ReconcileInterval, log).Run(gctx))
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
		return nil
	})
	return g.Wait()
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
