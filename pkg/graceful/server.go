// Package graceful runs the bot's operational HTTP surface, exposing
// Prometheus metrics and dependency health, and drains it cleanly when the
// run context ends.
package graceful

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Proton-105/giftpanel-bot/pkg/logger"
)

// HealthFunc reports per-dependency statuses. Any value other than "OK"
// makes /healthz answer 503.
type HealthFunc func(ctx context.Context) map[string]string

// Server owns the /metrics and /healthz endpoints and their lifecycle.
type Server struct {
	http            *http.Server
	log             *slog.Logger
	shutdownTimeout time.Duration
}

// NewOpsServer builds the operational server listening on addr.
func NewOpsServer(log *slog.Logger, addr string, health HealthFunc, shutdownTimeout time.Duration) *Server {
	if log == nil {
		log = slog.Default()
	}

	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           logger.Middleware(opsHandler(log, health)),
			ReadHeaderTimeout: 5 * time.Second,
		},
		log:             log,
		shutdownTimeout: shutdownTimeout,
	}
}

// Run serves until ctx is canceled, then drains in-flight requests within the
// shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		s.log.Info("ops server listening", slog.String("addr", s.http.Addr))
		serveErr <- s.http.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("draining ops server", slog.Duration("timeout", s.shutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-serveErr; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func opsHandler(log *slog.Logger, health HealthFunc) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		statuses := map[string]string{}
		if health != nil {
			statuses = health(r.Context())
		}

		code := http.StatusOK
		for _, status := range statuses {
			if status != "OK" {
				code = http.StatusServiceUnavailable
				break
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if err := json.NewEncoder(w).Encode(statuses); err != nil {
			log.Error("healthz response encoding failed", slog.Any("error", err))
		}
	})

	return mux
}
