package handlers

import (
	"net/http"
	"time"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	version string
	started time.Time
	ready   func() bool
}

// NewHealthHandler creates a health handler. ready reports whether the
// store finished loading; nil means always ready.
func NewHealthHandler(version string, ready func() bool) *HealthHandler {
	return &HealthHandler{
		version: version,
		started: time.Now(),
		ready:   ready,
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime"`
}

// Liveness handles GET /healthz.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	})
}

// Readiness handles GET /readyz.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil && !h.ready() {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status: "loading",
			Uptime: time.Since(h.started).Round(time.Second).String(),
		})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ready",
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	})
}
