package domain

import (
	"context"
	"time"

	"posbridge/internal/core/normalize"
)

// RunnerPort is the public port exposed by the sync module
type RunnerPort interface {
	// Run syncs one entity over [from, to). The error return is reserved
	// for fatal failures; window-level trouble lands in Result.Errors.
	Run(ctx context.Context, entity Entity, from, to time.Time) (Result, error)

	// RunAll syncs every entity sequentially in declared order and sums
	// the results
	RunAll(ctx context.Context, from, to time.Time) (Result, error)
}

// StorageRepo is the storage surface one sync transaction sees
type StorageRepo interface {
	// Upsert writes normalized records, returning how many rows were
	// newly created and how many materially changed. Re-upserting
	// identical records counts neither.
	Upsert(ctx context.Context, tbl normalize.Table, recs []normalize.Record) (created, updated int, err error)

	// DeleteAbsent soft-deletes live rows positioned inside [from, to)
	// whose external ids are missing from keep, returning the count
	DeleteAbsent(ctx context.Context, tbl normalize.Table, from, to time.Time, keep []string) (int, error)
}

// Optimizer refreshes storage statistics after a run, best effort
type Optimizer interface {
	Optimize(ctx context.Context, tbl normalize.Table) error
}

// Fetcher pulls raw vendor rows for one entity window
type Fetcher interface {
	Fetch(ctx context.Context, entity string, from, to time.Time) ([]normalize.RawRecord, error)
}

// Invalidator drops cached report reads by tag
type Invalidator interface {
	Invalidate(tags ...string)
}
