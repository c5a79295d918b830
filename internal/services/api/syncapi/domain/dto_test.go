package domain

import (
	"testing"
	"time"

	"posbridge/internal/core/windowplan"
	perr "posbridge/internal/platform/errors"
)

func TestTriggerInput_Range(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)
	defFrom, defTo := windowplan.DefaultRange(now)

	cases := []struct {
		name string
		in   TriggerInput
		from time.Time
		to   time.Time
	}{
		{"empty takes the default window", TriggerInput{}, defFrom, defTo},
		{
			"explicit bounds",
			TriggerInput{FromDate: "2026-08-01", ToDate: "2026-08-08"},
			time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			"only from_date keeps the default end",
			TriggerInput{FromDate: "2026-08-01"},
			time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			defTo,
		},
	}
	for _, tc := range cases {
		from, to, err := tc.in.Range(now)
		if err != nil {
			t.Fatalf("%s: Range: %v", tc.name, err)
		}
		if !from.Equal(tc.from) || !to.Equal(tc.to) {
			t.Fatalf("%s: Range = (%v, %v), want (%v, %v)", tc.name, from, to, tc.from, tc.to)
		}
	}
}

func TestTriggerInput_RangeBadBound(t *testing.T) {
	t.Parallel()

	for _, in := range []TriggerInput{
		{FromDate: "08/01/2026"},
		{ToDate: "not-a-day"},
	} {
		_, _, err := in.Range(time.Now().UTC())
		if err == nil {
			t.Fatalf("Range(%+v) should reject the bound", in)
		}
		if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("Range(%+v) error code = %v, want invalid argument", in, perr.CodeOf(err))
		}
	}
}
