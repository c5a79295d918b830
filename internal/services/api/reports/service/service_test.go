package service

import (
	"context"
	"testing"
	"time"

	"posbridge/internal/modkit/repokit"
	"posbridge/internal/platform/cache"
	"posbridge/internal/platform/store"
	"posbridge/internal/services/api/reports/domain"
	"posbridge/internal/services/api/reports/repo"
)

type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	var z store.CommandTag
	return z, nil
}
func (fakeTx) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (fakeTx) QueryRow(context.Context, string, ...any) store.Row       { return nil }
func (f fakeTx) Tx(_ context.Context, fn func(q repokit.Queryer) error) error {
	return fn(f)
}

// fakeRepo counts calls so cache hits are observable
type fakeRepo struct {
	revenueCalls  int
	topCalls      int
	topLimit      int
	hourlyCalls   int
	cashflowCalls int
}

func (f *fakeRepo) Revenue(_ context.Context, start, end, department string) ([]repo.RowRevenue, error) {
	f.revenueCalls++
	return []repo.RowRevenue{{Day: start, Revenue: 100, FullSum: 120, Orders: 4}}, nil
}

func (f *fakeRepo) TopItems(_ context.Context, _, _ string, limit int) ([]repo.RowTopItem, error) {
	f.topCalls++
	f.topLimit = limit
	return []repo.RowTopItem{{ProductExternalID: "4087", DishName: "Carbonara", Amount: 12, Revenue: 3600}}, nil
}

func (f *fakeRepo) Hourly(context.Context, string, string) ([]repo.RowHourly, error) {
	f.hourlyCalls++
	return []repo.RowHourly{{Hour: 13, Revenue: 900, Orders: 3}}, nil
}

func (f *fakeRepo) Cashflow(context.Context, string, string, string) ([]repo.RowCashflow, error) {
	f.cashflowCalls++
	return []repo.RowCashflow{{Account: "Cash", Incoming: 80, Outgoing: 12}}, nil
}

func bindTo(r repo.Repo) repokit.Binder[repo.Repo] {
	return repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return r })
}

func aug() domain.DateRange { return domain.DateRange{Start: "2026-08-01", End: "2026-08-08"} }

func TestRevenue_ComputesAverageCheck(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{}
	s := New(fakeTx{}, bindTo(fr), nil)

	rows, err := s.Revenue(context.Background(), domain.RevenueInput{Range: aug()})
	if err != nil {
		t.Fatalf("Revenue: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].AvgCheck != 25 {
		t.Fatalf("avg check = %v, want 25", rows[0].AvgCheck)
	}
}

func TestRevenue_SecondReadServedFromCache(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{}
	s := New(fakeTx{}, bindTo(fr), cache.NewTags(time.Minute))
	in := domain.RevenueInput{Range: aug()}

	for range 2 {
		if _, err := s.Revenue(context.Background(), in); err != nil {
			t.Fatalf("Revenue: %v", err)
		}
	}
	if fr.revenueCalls != 1 {
		t.Fatalf("repo calls = %d, want 1", fr.revenueCalls)
	}
}

func TestRevenue_InvalidateForcesRefill(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{}
	tags := cache.NewTags(time.Minute)
	s := New(fakeTx{}, bindTo(fr), tags)
	in := domain.RevenueInput{Range: aug()}

	if _, err := s.Revenue(context.Background(), in); err != nil {
		t.Fatalf("Revenue: %v", err)
	}
	tags.Invalidate("reports")
	if _, err := s.Revenue(context.Background(), in); err != nil {
		t.Fatalf("Revenue: %v", err)
	}
	if fr.revenueCalls != 2 {
		t.Fatalf("repo calls = %d, want 2 after invalidation", fr.revenueCalls)
	}
}

func TestRevenue_DifferentFiltersMissEachOther(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{}
	s := New(fakeTx{}, bindTo(fr), cache.NewTags(time.Minute))

	if _, err := s.Revenue(context.Background(), domain.RevenueInput{Range: aug()}); err != nil {
		t.Fatalf("Revenue: %v", err)
	}
	if _, err := s.Revenue(context.Background(), domain.RevenueInput{Range: aug(), Department: "Main Hall"}); err != nil {
		t.Fatalf("Revenue: %v", err)
	}
	if fr.revenueCalls != 2 {
		t.Fatalf("repo calls = %d, want 2 for distinct keys", fr.revenueCalls)
	}
}

func TestTopItems_DefaultLimit(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{}
	s := New(fakeTx{}, bindTo(fr), nil)

	if _, err := s.TopItems(context.Background(), domain.TopItemsInput{Range: aug()}); err != nil {
		t.Fatalf("TopItems: %v", err)
	}
	if fr.topLimit != defaultTopLimit {
		t.Fatalf("limit = %d, want %d", fr.topLimit, defaultTopLimit)
	}
}

func TestTopItems_MenuTagInvalidates(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{}
	tags := cache.NewTags(time.Minute)
	s := New(fakeTx{}, bindTo(fr), tags)
	in := domain.TopItemsInput{Range: aug(), Limit: 5}

	if _, err := s.TopItems(context.Background(), in); err != nil {
		t.Fatalf("TopItems: %v", err)
	}
	tags.Invalidate("menu")
	if _, err := s.TopItems(context.Background(), in); err != nil {
		t.Fatalf("TopItems: %v", err)
	}
	if fr.topCalls != 2 {
		t.Fatalf("repo calls = %d, want 2 after menu invalidation", fr.topCalls)
	}
}

func TestHourlyAndCashflow_PassThrough(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{}
	s := New(fakeTx{}, bindTo(fr), nil)

	hrows, err := s.Hourly(context.Background(), domain.HourlyInput{Range: aug()})
	if err != nil {
		t.Fatalf("Hourly: %v", err)
	}
	if len(hrows) != 1 || hrows[0].Hour != 13 {
		t.Fatalf("unexpected hourly rows %+v", hrows)
	}

	crows, err := s.Cashflow(context.Background(), domain.CashflowInput{Range: aug()})
	if err != nil {
		t.Fatalf("Cashflow: %v", err)
	}
	if len(crows) != 1 || crows[0].Account != "Cash" {
		t.Fatalf("unexpected cashflow rows %+v", crows)
	}
}
