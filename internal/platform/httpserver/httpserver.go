// Package httpserver builds the HTTP server behind the monitor's ops
// surface (health, readiness, metrics, status).
package httpserver

import (
	"net/http"
	"time"
)

// New returns a server for the ops endpoints. The header timeout bounds
// slow-client reads; the ops surface has no long-lived requests.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
