package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"posbridge/internal/services/api/syncapi/domain"
	syncdomain "posbridge/internal/services/sync/domain"
)

type fakeRunner struct {
	entity syncdomain.Entity
	from   time.Time
	to     time.Time
	all    bool

	res syncdomain.Result
	err error
}

func (f *fakeRunner) Run(_ context.Context, entity syncdomain.Entity, from, to time.Time) (syncdomain.Result, error) {
	f.entity, f.from, f.to = entity, from, to
	return f.res, f.err
}

func (f *fakeRunner) RunAll(_ context.Context, from, to time.Time) (syncdomain.Result, error) {
	f.all, f.from, f.to = true, from, to
	return f.res, f.err
}

func TestTrigger_ExplicitRange(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{res: syncdomain.Result{Created: 3, Updated: 1}}
	s := New(fr)

	out, err := s.Trigger(context.Background(), syncdomain.EntitySales, domain.TriggerInput{
		FromDate: "2026-08-01",
		ToDate:   "2026-08-05",
	})
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected success, got %+v", out)
	}
	if out.Data == nil || out.Data.Created != 3 || out.Data.Updated != 1 {
		t.Fatalf("unexpected data %+v", out.Data)
	}
	if fr.entity != syncdomain.EntitySales {
		t.Fatalf("entity = %q", fr.entity)
	}
	wantFrom := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)
	if !fr.from.Equal(wantFrom) || !fr.to.Equal(wantTo) {
		t.Fatalf("range = [%v, %v)", fr.from, fr.to)
	}
}

func TestTrigger_EmptyRangeDefaultsToLookback(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{}
	s := New(fr)
	now := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return now }

	if _, err := s.Trigger(context.Background(), syncdomain.EntityProducts, domain.TriggerInput{}); err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if !fr.to.Equal(now) {
		t.Fatalf("to = %v, want now", fr.to)
	}
	if got := fr.to.Sub(fr.from); got != 7*24*time.Hour {
		t.Fatalf("lookback = %v", got)
	}
}

func TestTrigger_BadDateIsInvalidArgument(t *testing.T) {
	t.Parallel()

	s := New(&fakeRunner{})
	_, err := s.Trigger(context.Background(), syncdomain.EntitySales, domain.TriggerInput{FromDate: "01.08.2026"})
	if err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestTrigger_FatalRunReportsFailure(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{err: errors.New("vendor credentials missing")}
	s := New(fr)

	out, err := s.Trigger(context.Background(), syncdomain.EntitySales, domain.TriggerInput{})
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if out.Success || out.Data != nil {
		t.Fatalf("expected failure envelope, got %+v", out)
	}
	if out.Message == "" {
		t.Fatalf("expected a message")
	}
}

func TestTrigger_WindowErrorsKeepSuccess(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{res: syncdomain.Result{Created: 2, Errors: 1}}
	s := New(fr)

	out, err := s.Trigger(context.Background(), syncdomain.EntitySales, domain.TriggerInput{})
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if !out.Success {
		t.Fatalf("window errors must not flip success: %+v", out)
	}
	if out.Message != "sync completed with errors" {
		t.Fatalf("message = %q", out.Message)
	}
	if out.Data == nil || out.Data.Errors != 1 {
		t.Fatalf("unexpected data %+v", out.Data)
	}
}

func TestTriggerAll_UsesRunAll(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{res: syncdomain.Result{Created: 10}}
	s := New(fr)

	out, err := s.TriggerAll(context.Background(), domain.TriggerInput{FromDate: "2026-08-01", ToDate: "2026-08-02"})
	if err != nil {
		t.Fatalf("TriggerAll: %v", err)
	}
	if !fr.all {
		t.Fatalf("RunAll was not called")
	}
	if out.Data == nil || out.Data.Created != 10 {
		t.Fatalf("unexpected data %+v", out.Data)
	}
}

func TestNew_PanicsOnNilRunner(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	New(nil)
}
