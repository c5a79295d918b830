package repokit

import (
	"context"

	"posbridge/internal/platform/store"
)

// BeginHook runs right after BEGIN with the tx-bound Queryer. The sync
// writer uses it to set per-transaction timeouts.
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks decorates inner so every Tx runs hooks before fn. A
// failing hook aborts the transaction and fn never runs. Statements
// outside Tx bypass the hooks entirely.
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return txWithHooks{inner: inner, hooks: hooks}
}

type txWithHooks struct {
	inner TxRunner
	hooks []BeginHook
}

func (t txWithHooks) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return t.inner.Tx(ctx, func(q Queryer) error {
		for _, hook := range t.hooks {
			if err := hook(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

func (t txWithHooks) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	return t.inner.Exec(ctx, sql, args...)
}

func (t txWithHooks) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	return t.inner.Query(ctx, sql, args...)
}

func (t txWithHooks) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	return t.inner.QueryRow(ctx, sql, args...)
}
