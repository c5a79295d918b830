package store

import (
	"context"
	"errors"
	"time"

	"posbridge/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// poolAdapter bridges pg.PG to the RowQuerier and TxRunner seams.
// Every statement it runs is reported to the configured tracer,
// including statements issued inside transactions.
type poolAdapter struct {
	p *pg.PG
}

func newPGAdapter(p *pg.PG) *poolAdapter { return &poolAdapter{p: p} }

func (a *poolAdapter) Ping(ctx context.Context) error {
	if a == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *poolAdapter) Close() error { a.p.Close(); return nil }

func (a *poolAdapter) slowUS() int64 {
	if a == nil || a.p == nil {
		return -1
	}
	return int64(a.p.SlowMs) * 1000
}

func (a *poolAdapter) tracer() pg.QueryTracer {
	if a == nil || a.p == nil {
		return nil
	}
	return a.p.Tracer
}

func (a *poolAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := a.p.Pool.Exec(ctx, sql, args...)
	traceQuery(ctx, a.tracer(), a.slowUS(), sql, args, start, err)
	return cmdTag{ct}, err
}

func (a *poolAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := a.p.Pool.Query(ctx, sql, args...)
	// traced at open; scan time is not included
	traceQuery(ctx, a.tracer(), a.slowUS(), sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgxRows{r: rs}, nil
}

func (a *poolAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := a.p.Pool.QueryRow(ctx, sql, args...)
	// pgx surfaces errors at Scan, so tracing waits for it
	return tracedRow{
		r: r,
		after: func(scanErr error) {
			traceQuery(ctx, a.tracer(), a.slowUS(), sql, args, start, scanErr)
		},
	}
}

func (a *poolAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	q := txAdapter{
		tx:     tx,
		tracer: a.tracer(),
		slowUS: a.slowUS(),
	}
	if err := fn(q); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// traceQuery reports one finished statement to the tracer, if any
func traceQuery(ctx context.Context, tr pg.QueryTracer, slowUS int64, sql string, args []any, start time.Time, err error) {
	if tr == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	tr.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      slowUS >= 0 && elapsedUS >= slowUS,
	})
}

// txAdapter satisfies RowQuerier on top of an open pgx transaction
type txAdapter struct {
	tx     pgx.Tx
	tracer pg.QueryTracer
	slowUS int64
}

func (t txAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := t.tx.Exec(ctx, sql, args...)
	traceQuery(ctx, t.tracer, t.slowUS, sql, args, start, err)
	return cmdTag{ct}, err
}

func (t txAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := t.tx.Query(ctx, sql, args...)
	traceQuery(ctx, t.tracer, t.slowUS, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgxRows{r: rs}, nil
}

func (t txAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := t.tx.QueryRow(ctx, sql, args...)
	return tracedRow{
		r: r,
		after: func(scanErr error) {
			traceQuery(ctx, t.tracer, t.slowUS, sql, args, start, scanErr)
		},
	}
}

// tracedRow defers tracing until Scan resolves the statement
type tracedRow struct {
	r     pgx.Row
	after func(error)
}

func (x tracedRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type pgxRows struct{ r pgx.Rows }

func (x pgxRows) Next() bool            { return x.r.Next() }
func (x pgxRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x pgxRows) Err() error            { return x.r.Err() }
func (x pgxRows) Close()                { x.r.Close() }
func (x pgxRows) Columns() []string {
	f := x.r.FieldDescriptions()
	out := make([]string, len(f))
	for i := range f {
		out[i] = string(f[i].Name)
	}
	return out
}

type cmdTag struct{ t pgconn.CommandTag }

func (t cmdTag) String() string      { return t.t.String() }
func (t cmdTag) RowsAffected() int64 { return t.t.RowsAffected() }
