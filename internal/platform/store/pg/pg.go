// Package pg wraps pgxpool with optional query tracing for the sync
// and report repos.
package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config carries the pool settings openers pass down.
type Config struct {
	URL      string
	MaxConns int32
	SlowMs   int
}

// PG bundles the pool with its tracing settings.
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int
}

// seam so tests can fail pool construction without a database
var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL, applies the optional pool mutator and builds
// the pool. The tracer may be nil when SQL logging is off.
func Open(ctx context.Context, cfg Config, tracer QueryTracer, poolCfgMut func(*pgxpool.Config)) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if poolCfgMut != nil {
		poolCfgMut(pcfg)
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	return &PG{
		Pool:   pool,
		Tracer: tracer,
		SlowMs: cfg.SlowMs,
	}, nil
}

// Close releases the pool. Safe on a nil receiver.
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
