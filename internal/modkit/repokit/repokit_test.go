package repokit

import (
	"context"
	"errors"
	"testing"

	"posbridge/internal/platform/store"
)

// recordingTx logs every statement executed through it, in and out of tx
type recordingTx struct {
	stmts []string
	fail  error
}

func (r *recordingTx) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	r.stmts = append(r.stmts, sql)
	return nil, r.fail
}

func (r *recordingTx) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (r *recordingTx) QueryRow(context.Context, string, ...any) store.Row       { return nil }

func (r *recordingTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	r.stmts = append(r.stmts, "BEGIN")
	if err := fn(r); err != nil {
		r.stmts = append(r.stmts, "ROLLBACK")
		return err
	}
	r.stmts = append(r.stmts, "COMMIT")
	return nil
}

type salesRepo struct{ q Queryer }

func TestMustBind(t *testing.T) {
	t.Parallel()

	binder := BindFunc[*salesRepo](func(q Queryer) *salesRepo { return &salesRepo{q: q} })
	tx := &recordingTx{}

	repo := MustBind[*salesRepo](binder, tx)
	if repo.q != Queryer(tx) {
		t.Fatalf("bound repo must hold the given queryer")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("binding a nil queryer must panic")
		}
	}()
	MustBind[*salesRepo](binder, nil)
}

func TestWithTx_CommitsAndRollsBack(t *testing.T) {
	t.Parallel()

	tx := &recordingTx{}
	err := WithTx(context.Background(), tx, func(q Queryer) error {
		_, e := q.Exec(context.Background(), "update sales")
		return e
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	want := []string{"BEGIN", "update sales", "COMMIT"}
	if len(tx.stmts) != 3 || tx.stmts[0] != want[0] || tx.stmts[1] != want[1] || tx.stmts[2] != want[2] {
		t.Fatalf("stmts = %v", tx.stmts)
	}

	boom := errors.New("constraint violated")
	tx = &recordingTx{}
	if err := WithTx(context.Background(), tx, func(Queryer) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if tx.stmts[len(tx.stmts)-1] != "ROLLBACK" {
		t.Fatalf("stmts = %v, want rollback last", tx.stmts)
	}
}

func TestWithBeginHooks_RunInsideTxBeforeFn(t *testing.T) {
	t.Parallel()

	tx := &recordingTx{}
	hooked := WithBeginHooks(tx,
		func(ctx context.Context, q Queryer) error {
			_, err := q.Exec(ctx, "SET LOCAL statement_timeout = 5000")
			return err
		},
	)

	err := hooked.Tx(context.Background(), func(q Queryer) error {
		_, e := q.Exec(context.Background(), "insert into sales")
		return e
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
	want := []string{"BEGIN", "SET LOCAL statement_timeout = 5000", "insert into sales", "COMMIT"}
	for i := range want {
		if tx.stmts[i] != want[i] {
			t.Fatalf("stmts = %v, want %v", tx.stmts, want)
		}
	}
}

func TestWithBeginHooks_HookFailureAbortsTx(t *testing.T) {
	t.Parallel()

	boom := errors.New("timeout setup failed")
	tx := &recordingTx{}
	hooked := WithBeginHooks(tx, func(context.Context, Queryer) error { return boom })

	ran := false
	err := hooked.Tx(context.Background(), func(Queryer) error {
		ran = true
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if ran {
		t.Fatalf("fn must not run after a failed begin hook")
	}
	if tx.stmts[len(tx.stmts)-1] != "ROLLBACK" {
		t.Fatalf("stmts = %v, want rollback last", tx.stmts)
	}
}

func TestWithBeginHooks_DelegatesOutsideTx(t *testing.T) {
	t.Parallel()

	tx := &recordingTx{}
	hooked := WithBeginHooks(tx, func(ctx context.Context, q Queryer) error {
		_, err := q.Exec(ctx, "SET LOCAL statement_timeout = 5000")
		return err
	})

	// plain Exec bypasses the tx and therefore the hooks
	if _, err := hooked.Exec(context.Background(), "analyze sales"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if len(tx.stmts) != 1 || tx.stmts[0] != "analyze sales" {
		t.Fatalf("stmts = %v", tx.stmts)
	}
}

type fakeGuard struct{ err error }

func (f fakeGuard) Guard(context.Context) error { return f.err }

func TestMustGuard(t *testing.T) {
	t.Parallel()

	MustGuard(context.Background(), fakeGuard{})

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on guard failure")
		}
	}()
	MustGuard(context.Background(), fakeGuard{err: errors.New("pg down")})
}
