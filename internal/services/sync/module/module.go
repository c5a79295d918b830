// Package module wires the sync service from shared deps
package module

import (
	"posbridge/internal/adapters/pos"
	"posbridge/internal/modkit"
	"posbridge/internal/modkit/repokit"
	"posbridge/internal/platform/cache"
	"posbridge/internal/services/sync/domain"
	"posbridge/internal/services/sync/repo"
	"posbridge/internal/services/sync/service"
)

// Ports defines the sync module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the sync module. It mounts no routes; the API slice
// calls through Ports.Runner.
type Module struct {
	deps   modkit.Deps
	ports  Ports
	client *pos.Client
}

// New wires the vendor client, repo binder and orchestrator using config
// from deps.Cfg. A missing vendor credential surfaces as an error: sync
// cannot run without one, callers treat it as fatal.
func New(deps modkit.Deps, tags *cache.Tags) (*Module, error) {
	opts := FromConfig(deps.Cfg)

	client, err := pos.New(pos.Options{
		BaseURL:  opts.BaseURL,
		Login:    opts.Login,
		Password: opts.Password,
		Timeout:  opts.HTTPTimeout,
	})
	if err != nil {
		return nil, err
	}

	db := deps.PG
	if opts.DBTimeout > 0 {
		db = repokit.WithBeginHooks(db, repo.StatementTimeout(opts.DBTimeout))
	}

	svc := service.New(
		db,
		repo.NewPG(),
		client,
		repo.NewOptimizer(deps.PG),
		tags,
		service.Config{
			WindowTimeout: opts.WindowTimeout,
			FetchTimeout:  opts.FetchTimeout,
			DBTimeout:     opts.DBTimeout,
			MaxRangeDays:  opts.MaxRangeDays,
		},
	)

	m := &Module{deps: deps, client: client}
	m.ports = Ports{Runner: svc}
	return m, nil
}

// Name returns the module name. The http slice registers under "sync",
// the worker keeps its own slot.
func (m *Module) Name() string { return "sync-worker" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Client exposes the vendor session for lifecycle management (logout on
// shutdown)
func (m *Module) Client() *pos.Client { return m.client }
