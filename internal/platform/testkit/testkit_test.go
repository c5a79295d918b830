package testkit

import "testing"

func TestMustPanic(t *testing.T) {
	t.Parallel()

	MustPanic(t, func() {
		panic("missing SERVICE_PGSQL_DBURL")
	})
}

func TestMustContain(t *testing.T) {
	t.Parallel()

	MustContain(t, `{"level":"info","component":"syncapi","message":"sync finished"}`, "sync finished")
}
