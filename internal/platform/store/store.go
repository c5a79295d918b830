// Package store fronts the storage backends behind small interfaces so
// repos never touch a driver type directly. Today the only backend is
// postgres, reached through the TxRunner seam.
package store

import (
	"context"
	"errors"
	"fmt"

	"posbridge/internal/platform/logger"
)

// Store holds whichever backends Open was asked to bring up. The zero
// value is usable, every seam is simply nil.
type Store struct {
	// Log is handed down to backend clients for query tracing.
	Log logger.Logger

	// PG is the postgres seam. Nil when postgres is disabled.
	PG TxRunner
}

// Row is the single-row scan contract.
type Row interface {
	Scan(dest ...any) error
}

// Rows is the result-set contract repos iterate over.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports the outcome of a write statement.
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the full read and write surface a repo needs. Both the
// pool and an open transaction satisfy it, so repo methods work the
// same inside and outside a Tx.
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn inside a transaction, committing on nil and rolling
// back otherwise.
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger marks a seam that can report readiness.
type Pinger interface{ Ping(context.Context) error }

// Open brings up the backends enabled in cfg. Seams for disabled
// backends stay nil.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// normalize a zero logger so backends never nil-check it
	s.Log = s.Log.With().Logger()

	if cfg.PG.Enabled {
		pgClient, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = pgClient
	}

	return s, nil
}

// Guard pings every seam that can be pinged and joins the failures.
// Seams that do not implement Pinger are skipped.
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	if s.PG != nil {
		if p, ok := any(s.PG).(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("pg: %w", err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close shuts down every initialized backend. Nil seams are skipped.
func (s *Store) Close(ctx context.Context) error {
	var errs []error

	if c, ok := s.PG.(interface{ Close() error }); ok {
		if e := c.Close(); e != nil {
			errs = append(errs, e)
		}
	}

	return errors.Join(errs...)
}
