// Package http serves the meta surface of the API service, the probes
// orchestration and dashboards poll between syncs.
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"posbridge/internal/core/version"
	"posbridge/internal/modkit/httpkit"
)

// readyTimeout caps how long a single readiness probe may hold a
// dependency ping.
const readyTimeout = 2 * time.Second

// Pinger is satisfied by store adapters that expose Ping.
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies.
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
}

type handlers struct {
	serviceName string
	startedAt   time.Time
	pg          any
}

// Register mounts the meta routes.
func Register(r httpkit.Router, d Deps) {
	h := &handlers{serviceName: d.ServiceName, startedAt: d.StartedAt, pg: d.PG}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the liveness payload.
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"posbridge-api"`
	Started string `json:"started"  example:"2026-08-03T13:00:00Z"`
	Now     string `json:"now"      example:"2026-08-03T13:05:00Z"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse ok
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.serviceName,
		Started: h.startedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// ReadyCheck is one dependency probe result.
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness across dependencies.
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-08-03T13:05:00Z"`
}

// pingCheck probes one dependency. A nil dependency is configured off
// and reports skipped, a dependency without Ping reports unknown.
func pingCheck(ctx stdctx.Context, name string, dep any) ReadyCheck {
	if dep == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	p, ok := dep.(Pinger)
	if !ok {
		return ReadyCheck{Name: name, Status: "unknown"}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: "ok"}
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	pg := pingCheck(ctx, "pg", h.pg)

	overall := "ok"
	switch pg.Status {
	case "fail":
		overall = "fail"
	case "unknown", "skipped":
		overall = "degraded"
	}

	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{pg},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// ServiceResponse reports the service name and uptime in seconds.
type ServiceResponse struct {
	Name    string `json:"name"    example:"posbridge-api"`
	Started string `json:"started" example:"2026-08-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.serviceName,
		Started: h.startedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.startedAt) / time.Second),
	}, nil
}
