// Package httptransport exposes the monitor's ops surface: liveness,
// readiness, Prometheus metrics and a small status view. There is no business
// API here; the monitor is a background job, not a server.
package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"deskwatch/internal/monitor"
)

// StatusProvider reports the monitor's current state.
type StatusProvider interface {
	Status() monitor.Status
}

// HealthChecker verifies a backing dependency is reachable.
type HealthChecker func(ctx context.Context) error

// Handler is the thin ops HTTP layer.
type Handler struct {
	status   StatusProvider
	checkers []HealthChecker
}

// NewHandler builds the ops handler. Checkers are optional dependency probes
// for readiness (redis, postgres).
func NewHandler(status StatusProvider, checkers ...HealthChecker) *Handler {
	return &Handler{status: status, checkers: checkers}
}

// NewRouter wires the ops endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", h.handleHealthz)
	r.Get("/readyz", h.handleReadyz)
	r.Get("/status", h.handleStatus)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) handleReadyz(w http.ResponseWriter, r *http.Request) {
	for _, check := range h.checkers {
		if err := check(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(err.Error()))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (h *Handler) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.status.Status())
}
