package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	jwttoken "votecast/internal/jwt_token"
	"votecast/internal/platform/config"
	"votecast/internal/platform/metrics"
	"votecast/internal/platform/middleware"
	"votecast/internal/voting/handler"
	"votecast/pkg/platform/httputil"
)

const healthTimeout = 2 * time.Second

type healthSource func(ctx context.Context) map[string]error

func newRouter(cfg config.Server, h *handler.Handler, tokens *jwttoken.JWTService, httpMetrics *metrics.Metrics, logger *slog.Logger, health ...healthSource) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(httpMetrics))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/health", healthHandler(health))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwttoken.NewJWTServiceAdapter(tokens), logger))
		h.Register(r)
	})

	if cfg.Auth.AdminAPIToken != "" {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdminToken(cfg.Auth.AdminAPIToken, logger))
			h.RegisterAdmin(r)
		})
	} else {
		logger.Warn("ADMIN_API_TOKEN not set; admin routes disabled")
	}
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(sources []healthSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: map[string]string{}}
		for _, source := range sources {
			for name, err := range source(ctx) {
				if err != nil {
					resp.Status = "degraded"
					resp.Checks[name] = err.Error()
					continue
				}
				resp.Checks[name] = "ok"
			}
		}
		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, status, resp)
	}
}
