// Package module wires reports into the API using modkit
package module

import (
	"net/http"

	modkit "posbridge/internal/modkit"
	"posbridge/internal/modkit/httpkit"
	"posbridge/internal/platform/cache"
	str "posbridge/internal/platform/strings"
	reportshttp "posbridge/internal/services/api/reports/http"
	reportsrepo "posbridge/internal/services/api/reports/repo"
	reportssvc "posbridge/internal/services/api/reports/service"
)

// Module implements the reports module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc reportssvc.Service
}

// New constructs the reports module. The cache is shared with the sync
// module so finished runs invalidate stale report reads.
func New(deps modkit.Deps, tags *cache.Tags, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("reports"), modkit.WithPrefix("/reports")}, opts...)...)

	repo := reportsrepo.NewPG()
	svc := reportssvc.New(deps.PG, repo, tags)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptReportsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		reportshttp.Register(r, m.svc)
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
