// Package repokit carries the shared plumbing of the sync and report
// repos, re-exporting the store seams so repo packages never import the
// store directly.
package repokit

import (
	"context"

	"posbridge/internal/platform/store"
)

// Queryer is the SQL surface a repo method runs against. It is the
// pool outside a transaction and the tx handle inside one.
type Queryer = store.RowQuerier

// TxRunner runs a function inside one transaction.
type TxRunner = store.TxRunner

// WithTx is sugar over tx.Tx for call sites that read better with the
// runner first.
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
