// Package service implements the sync orchestrator
package service

import (
	"context"
	"time"

	"posbridge/internal/core/normalize"
	"posbridge/internal/core/windowplan"
	"posbridge/internal/modkit/repokit"
	perr "posbridge/internal/platform/errors"
	"posbridge/internal/platform/logger"
	"posbridge/internal/services/sync/domain"
	"posbridge/internal/services/sync/guardrails"
)

// Config holds orchestrator tuning
type Config struct {
	// Timeouts applied via guardrails per window
	WindowTimeout time.Duration
	FetchTimeout  time.Duration
	DBTimeout     time.Duration

	// MaxRangeDays guards against accidentally huge backfills, 0 = unlimited
	MaxRangeDays int
}

// Service implements domain.RunnerPort. Windows run strictly sequentially:
// the vendor session cannot overlap requests and counters must accumulate
// in window order.
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[domain.StorageRepo]
	Fetch  domain.Fetcher
	Opt    domain.Optimizer   // optional
	Inval  domain.Invalidator // optional
	Cfg    Config
}

// New constructs the sync service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[domain.StorageRepo],
	fetch domain.Fetcher,
	opt domain.Optimizer,
	inval domain.Invalidator,
	cfg Config,
) *Service {
	if db == nil {
		panic("sync.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("sync.Service requires a non nil Repo binder")
	}
	if fetch == nil {
		panic("sync.Service requires a non nil Fetcher")
	}
	return &Service{DB: db, Binder: binder, Fetch: fetch, Opt: opt, Inval: inval, Cfg: cfg}
}

func (s *Service) timeouts() guardrails.Timeouts {
	return guardrails.Timeouts{
		Window: s.Cfg.WindowTimeout,
		Fetch:  s.Cfg.FetchTimeout,
		DB:     s.Cfg.DBTimeout,
	}
}

// Run implements domain.RunnerPort
func (s *Service) Run(ctx context.Context, entity domain.Entity, from, to time.Time) (domain.Result, error) {
	if _, ok := domain.Parse(string(entity)); !ok {
		return domain.Result{}, perr.InvalidArgf("sync: unknown entity %q", entity)
	}
	if s.Cfg.MaxRangeDays > 0 && windowplan.Count(from, to) > s.Cfg.MaxRangeDays {
		return domain.Result{}, perr.InvalidArgf("sync: range exceeds %d days", s.Cfg.MaxRangeDays)
	}

	windows := s.planFor(entity, from, to)
	log := logger.C(ctx)

	var res domain.Result
	for _, w := range windows {
		// cancellation is honored between windows, never inside one
		if err := ctx.Err(); err != nil {
			return res, err
		}
		wres := s.runWindow(ctx, entity, w)
		res = res.Add(wres)
		log.Info().
			Str("entity", entity.String()).
			Time("window_start", w.Start).
			Int("created", wres.Created).
			Int("updated", wres.Updated).
			Int("deleted", wres.Deleted).
			Int("errors", wres.Errors).
			Msg("sync window done")
	}

	s.finalize(ctx, entity)
	return res, nil
}

// RunAll implements domain.RunnerPort
func (s *Service) RunAll(ctx context.Context, from, to time.Time) (domain.Result, error) {
	var total domain.Result
	for _, e := range domain.All() {
		res, err := s.Run(ctx, e, from, to)
		total = total.Add(res)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// planFor resolves the window set: snapshots get one whole-range window,
// time-positioned feeds get one window per day
func (s *Service) planFor(entity domain.Entity, from, to time.Time) []windowplan.Window {
	if entity.Snapshot() {
		if w, ok := windowplan.Whole(from, to); ok {
			return []windowplan.Window{w}
		}
		return nil
	}
	return windowplan.Span(from, to)
}

// runWindow processes one window in isolation. Any failure inside the
// window becomes an error count, never an error return: one broken day
// must not sink the rest of the range.
func (s *Service) runWindow(ctx context.Context, entity domain.Entity, w windowplan.Window) domain.Result {
	log := logger.C(ctx)
	tbl := entity.Table()

	wctx, cancelW := guardrails.ForWindow(ctx, s.timeouts())
	defer cancelW()

	fctx, cancelF := guardrails.ForFetch(wctx, s.timeouts())
	raws, err := s.Fetch.Fetch(fctx, entity.String(), w.Start, w.End)
	cancelF()
	if err != nil {
		log.Warn().Err(err).Str("entity", entity.String()).Time("window_start", w.Start).
			Msg("sync fetch failed, window skipped")
		return domain.Result{Errors: 1}
	}

	recs, rejected := normalize.NormalizeBatch(tbl, raws)

	var created, updated, deleted int
	dbctx, cancelDB := guardrails.ForDB(wctx, s.timeouts())
	err = repokit.WithTx(dbctx, s.DB, func(q repokit.Queryer) error {
		repo := repokit.MustBind(s.Binder, q)

		c, u, err := repo.Upsert(dbctx, tbl, recs)
		if err != nil {
			return err
		}
		created, updated = c, u

		// snapshots have no time axis to scope deletion by
		if tbl.TimeField != "" {
			keep := make([]string, len(recs))
			for i, r := range recs {
				keep[i] = r.ExternalID
			}
			d, err := repo.DeleteAbsent(dbctx, tbl, w.Start, w.End, keep)
			if err != nil {
				return err
			}
			deleted = d
		}
		return nil
	})
	cancelDB()
	if err != nil {
		log.Warn().Err(err).Str("entity", entity.String()).Time("window_start", w.Start).
			Msg("sync upsert failed, window rolled back")
		return domain.Result{Errors: rejected + 1}
	}

	return domain.Result{Created: created, Updated: updated, Deleted: deleted, Errors: rejected}
}

// finalize runs the best-effort post steps: report caches covering the
// entity go stale and storage statistics refresh. Neither failure affects
// the run's result.
func (s *Service) finalize(ctx context.Context, entity domain.Entity) {
	log := logger.C(ctx)

	if s.Inval != nil {
		s.Inval.Invalidate(entity.CacheTags()...)
	}

	if s.Opt != nil {
		if err := s.Opt.Optimize(ctx, entity.Table()); err != nil {
			log.Warn().Err(err).Str("entity", entity.String()).Msg("sync optimize failed")
		}
	}
}
