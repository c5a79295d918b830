// Package repo provides postgres access for sync writes
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"posbridge/internal/core/normalize"
	"posbridge/internal/modkit/repokit"
	perr "posbridge/internal/platform/errors"
	"posbridge/internal/services/sync/domain"
)

type (
	// PG is a Postgres binder for domain.StorageRepo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for domain.StorageRepo
func NewPG() repokit.Binder[domain.StorageRepo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.StorageRepo { return &queries{q: q} }

// upsertSQL builds the write for one entity table. The change predicate
// keeps re-syncs idempotent: an identical row neither inserts nor updates,
// and xmax = 0 discriminates fresh inserts from updates.
func upsertSQL(tbl normalize.Table) string {
	cols := tbl.Columns()

	insertCols := make([]string, 0, len(cols)+2)
	insertCols = append(insertCols, "external_id")
	insertCols = append(insertCols, cols...)
	insertCols = append(insertCols, "synced_at")

	params := make([]string, 0, len(insertCols))
	for i := 1; i <= len(cols)+1; i++ {
		params = append(params, fmt.Sprintf("$%d", i))
	}
	params = append(params, "now()")

	sets := make([]string, 0, len(cols)+2)
	current := make([]string, 0, len(cols))
	incoming := make([]string, 0, len(cols))
	for _, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
		current = append(current, "t."+c)
		incoming = append(incoming, "EXCLUDED."+c)
	}
	sets = append(sets, "deleted = false", "synced_at = now()")

	return fmt.Sprintf(`
		INSERT INTO %s AS t (%s)
		VALUES (%s)
		ON CONFLICT (external_id) DO UPDATE SET %s
		WHERE t.deleted OR (%s) IS DISTINCT FROM (%s)
		RETURNING (xmax = 0) AS inserted
	`,
		tbl.Name,
		strings.Join(insertCols, ", "),
		strings.Join(params, ", "),
		strings.Join(sets, ", "),
		strings.Join(current, ", "),
		strings.Join(incoming, ", "),
	)
}

// Upsert implements domain.StorageRepo
func (r *queries) Upsert(ctx context.Context, tbl normalize.Table, recs []normalize.Record) (int, int, error) {
	if len(recs) == 0 {
		return 0, 0, nil
	}

	sql := upsertSQL(tbl)
	cols := tbl.Columns()

	var created, updated int
	for _, rec := range recs {
		args := make([]any, 0, len(cols)+1)
		args = append(args, rec.ExternalID)
		for _, c := range cols {
			args = append(args, rec.Fields[c])
		}

		rows, err := r.q.Query(ctx, sql, args...)
		if err != nil {
			return created, updated, perr.FromPostgresf(err, "%s upsert failed", tbl.Name)
		}
		if rows.Next() {
			var inserted bool
			if err := rows.Scan(&inserted); err != nil {
				rows.Close()
				return created, updated, perr.FromPostgresf(err, "%s upsert scan failed", tbl.Name)
			}
			if inserted {
				created++
			} else {
				updated++
			}
		}
		// no row: identical record, neither created nor updated
		rows.Close()
		if err := rows.Err(); err != nil {
			return created, updated, perr.FromPostgresf(err, "%s upsert failed", tbl.Name)
		}

		if tbl.Modifiers {
			if err := r.replaceModifiers(ctx, tbl, rec); err != nil {
				return created, updated, err
			}
		}
	}
	return created, updated, nil
}

// replaceModifiers swaps a product's flattened modifier tree wholesale
func (r *queries) replaceModifiers(ctx context.Context, tbl normalize.Table, rec normalize.Record) error {
	if _, err := r.q.Exec(ctx, `
		DELETE FROM product_modifiers WHERE product_external_id = $1
	`, rec.ExternalID); err != nil {
		return perr.FromPostgresf(err, "%s modifiers clear failed", tbl.Name)
	}

	for i, m := range rec.Modifiers {
		var parent any
		if m.ParentID != "" {
			parent = m.ParentID
		}
		if _, err := r.q.Exec(ctx, `
			INSERT INTO product_modifiers (
				product_external_id, external_id, parent_external_id, name, amount, position
			) VALUES ($1, $2, $3, $4, $5, $6)
		`, rec.ExternalID, m.ID, parent, m.Name, m.Amount, i); err != nil {
			return perr.FromPostgresf(err, "%s modifiers insert failed", tbl.Name)
		}
	}
	return nil
}

// DeleteAbsent implements domain.StorageRepo. Rows positioned inside the
// window that the vendor no longer returns are gone upstream; they soft
// delete so reports can still see them flagged.
func (r *queries) DeleteAbsent(ctx context.Context, tbl normalize.Table, from, to time.Time, keep []string) (int, error) {
	if tbl.TimeField == "" {
		return 0, nil
	}
	if keep == nil {
		keep = []string{}
	}
	tag, err := r.q.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET deleted = true, synced_at = now()
		WHERE %s >= $1 AND %s < $2
		  AND NOT deleted
		  AND NOT (external_id = ANY($3))
	`, tbl.Name, tbl.TimeField, tbl.TimeField), from, to, keep)
	if err != nil {
		return 0, perr.FromPostgresf(err, "%s delete-absent failed", tbl.Name)
	}
	return int(tag.RowsAffected()), nil
}

// StatementTimeout returns a begin hook capping every statement in a
// sync transaction at d. Applies SET LOCAL so the cap dies with the tx.
func StatementTimeout(d time.Duration) repokit.BeginHook {
	ms := d.Milliseconds()
	return func(ctx context.Context, q repokit.Queryer) error {
		if _, err := q.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", ms)); err != nil {
			return perr.FromPostgresf(err, "statement_timeout setup failed")
		}
		return nil
	}
}

// Optimizer refreshes planner statistics after sync churn
type Optimizer struct{ DB repokit.TxRunner }

// NewOptimizer wires the post-run ANALYZE step
func NewOptimizer(db repokit.TxRunner) *Optimizer { return &Optimizer{DB: db} }

// Optimize implements domain.Optimizer
func (o *Optimizer) Optimize(ctx context.Context, tbl normalize.Table) error {
	if o == nil || o.DB == nil {
		return nil
	}
	if _, err := o.DB.Exec(ctx, "ANALYZE "+tbl.Name); err != nil {
		return perr.FromPostgresf(err, "%s analyze failed", tbl.Name)
	}
	if tbl.Modifiers {
		if _, err := o.DB.Exec(ctx, "ANALYZE product_modifiers"); err != nil {
			return perr.FromPostgresf(err, "modifiers analyze failed")
		}
	}
	return nil
}
