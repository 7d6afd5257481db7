package rest

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const checkTimeout = 3 * time.Second

// pinger is satisfied by the back-office pool and the ERP repository.
type pinger interface {
	Ping(ctx context.Context) error
}

type dependency struct {
	name     string
	pinger   pinger
	critical bool
}

// HealthHandler serves the liveness and readiness endpoints. Only critical dependencies gate
// readiness; a failing optional one reports the service as degraded.
type HealthHandler struct {
	deps    []dependency
	version string
	now     func() time.Time
}

// NewHealthHandler checks db as critical and erp as optional. A nil erp is
// left out of the report.
func NewHealthHandler(db, erp pinger, version string) *HealthHandler {
	h := &HealthHandler{
		deps:    []dependency{{name: "database", pinger: db, critical: true}},
		version: version,
		now:     time.Now,
	}
	if erp != nil {
		h.deps = append(h.deps, dependency{name: "erp", pinger: erp})
	}
	return h
}

type HealthResponse struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentStatus `json:"components,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

type ComponentStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live answers 200 while the process is serving.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready answers 503 when a critical dependency is unreachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, overall := h.evaluate(h.check(r.Context(), true))
	writeJSON(w, status, HealthResponse{Status: overall, Timestamp: h.now()})
}

// Health reports every dependency with its latency.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := h.check(r.Context(), false)
	status, overall := h.evaluate(components)
	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  h.now(),
	})
}

func (h *HealthHandler) check(ctx context.Context, criticalOnly bool) map[string]ComponentStatus {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	var (
		mu  sync.Mutex
		g   errgroup.Group
		out = make(map[string]ComponentStatus, len(h.deps))
	)
	for _, d := range h.deps {
		if criticalOnly && !d.critical {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			cs := ComponentStatus{Status: "ok"}
			if err := d.pinger.Ping(ctx); err != nil {
				cs = ComponentStatus{Status: "down", Error: err.Error()}
			} else {
				cs.Latency = time.Since(start).String()
			}
			mu.Lock()
			out[d.name] = cs
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (h *HealthHandler) evaluate(components map[string]ComponentStatus) (int, string) {
	overall := "ok"
	for _, d := range h.deps {
		cs, checked := components[d.name]
		if !checked || cs.Status == "ok" {
			continue
		}
		if d.critical {
			return http.StatusServiceUnavailable, "down"
		}
		overall = "degraded"
	}
	return http.StatusOK, overall
}
