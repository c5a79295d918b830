// Package service contains report workflows
package service

import (
	"context"
	"fmt"

	"posbridge/internal/modkit/repokit"
	"posbridge/internal/platform/cache"
	"posbridge/internal/services/api/reports/domain"
	"posbridge/internal/services/api/reports/repo"
)

const defaultTopLimit = 20

// Service defines the reports service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the reports service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	tags   *cache.Tags
}

// New constructs a reports service. tags may be nil, reads then skip the
// cache entirely.
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], tags *cache.Tags) *Svc {
	if db == nil {
		panic("reports.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("reports.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: repokit.MustBind(binder, db), binder: binder, db: db, tags: tags}
}

// cached runs fill under key and tags with a read-through lookup
func cached[T any](s *Svc, key string, tags []string, fill func() ([]T, error)) ([]T, error) {
	if s.tags == nil {
		return fill()
	}
	if v, ok := s.tags.Get(key, tags); ok {
		if rows, ok := v.([]T); ok {
			return rows, nil
		}
	}
	rows, err := fill()
	if err != nil {
		return nil, err
	}
	s.tags.Put(key, tags, rows)
	return rows, nil
}

// Revenue returns per-day revenue over sales in range
func (s *Svc) Revenue(ctx context.Context, in domain.RevenueInput) ([]domain.RevenueRow, error) {
	key := fmt.Sprintf("reports/revenue|%s|%s|%s", in.Range.Start, in.Range.End, in.Department)
	return cached(s, key, []string{"reports"}, func() ([]domain.RevenueRow, error) {
		rows, err := s.Repo.Revenue(ctx, in.Range.Start, in.Range.End, in.Department)
		if err != nil {
			return nil, err
		}
		out := make([]domain.RevenueRow, 0, len(rows))
		for _, r := range rows {
			avg := 0.0
			if r.Orders > 0 {
				avg = r.Revenue / float64(r.Orders)
			}
			out = append(out, domain.RevenueRow{
				Day:      r.Day,
				Revenue:  r.Revenue,
				FullSum:  r.FullSum,
				Orders:   r.Orders,
				AvgCheck: avg,
			})
		}
		return out, nil
	})
}

// TopItems returns top dishes by amount and revenue
func (s *Svc) TopItems(ctx context.Context, in domain.TopItemsInput) ([]domain.TopItemRow, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultTopLimit
	}
	key := fmt.Sprintf("reports/top-items|%s|%s|%d", in.Range.Start, in.Range.End, limit)
	return cached(s, key, []string{"reports", "menu"}, func() ([]domain.TopItemRow, error) {
		rows, err := s.Repo.TopItems(ctx, in.Range.Start, in.Range.End, limit)
		if err != nil {
			return nil, err
		}
		out := make([]domain.TopItemRow, 0, len(rows))
		for _, r := range rows {
			out = append(out, domain.TopItemRow{
				ProductExternalID: r.ProductExternalID,
				DishName:          r.DishName,
				Amount:            r.Amount,
				Revenue:           r.Revenue,
			})
		}
		return out, nil
	})
}

// Hourly returns revenue bucketed by opening hour
func (s *Svc) Hourly(ctx context.Context, in domain.HourlyInput) ([]domain.HourlyRow, error) {
	key := fmt.Sprintf("reports/hourly|%s|%s", in.Range.Start, in.Range.End)
	return cached(s, key, []string{"reports"}, func() ([]domain.HourlyRow, error) {
		rows, err := s.Repo.Hourly(ctx, in.Range.Start, in.Range.End)
		if err != nil {
			return nil, err
		}
		out := make([]domain.HourlyRow, 0, len(rows))
		for _, r := range rows {
			out = append(out, domain.HourlyRow{Hour: r.Hour, Revenue: r.Revenue, Orders: r.Orders})
		}
		return out, nil
	})
}

// Cashflow returns incoming and outgoing sums by account
func (s *Svc) Cashflow(ctx context.Context, in domain.CashflowInput) ([]domain.CashflowRow, error) {
	key := fmt.Sprintf("reports/cashflow|%s|%s|%s", in.Range.Start, in.Range.End, in.AccountGroup)
	return cached(s, key, []string{"reports"}, func() ([]domain.CashflowRow, error) {
		rows, err := s.Repo.Cashflow(ctx, in.Range.Start, in.Range.End, in.AccountGroup)
		if err != nil {
			return nil, err
		}
		out := make([]domain.CashflowRow, 0, len(rows))
		for _, r := range rows {
			out = append(out, domain.CashflowRow{Account: r.Account, Incoming: r.Incoming, Outgoing: r.Outgoing})
		}
		return out, nil
	})
}
