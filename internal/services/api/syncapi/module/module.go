// Package module wires sync triggers into the API using modkit
package module

import (
	"net/http"

	modkit "posbridge/internal/modkit"
	"posbridge/internal/modkit/httpkit"
	str "posbridge/internal/platform/strings"
	synchttp "posbridge/internal/services/api/syncapi/http"
	syncsvc "posbridge/internal/services/api/syncapi/service"
	syncdomain "posbridge/internal/services/sync/domain"
)

// Module implements the syncapi module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc syncsvc.Service
}

// New constructs the syncapi module around an already wired runner
func New(deps modkit.Deps, runner syncdomain.RunnerPort, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("sync"), modkit.WithPrefix("/sync")}, opts...)...)

	svc := syncsvc.New(runner)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptTriggerPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		synchttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
