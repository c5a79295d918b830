// Package domain holds DTOs for sync trigger endpoints
package domain

import (
	"time"

	"posbridge/internal/core/windowplan"
	perr "posbridge/internal/platform/errors"
	syncdomain "posbridge/internal/services/sync/domain"
)

// DateLayout is the wire format for range bounds
const DateLayout = "2006-01-02"

// TriggerInput selects the sync range. Both bounds are optional; a
// missing bound falls back to the trailing default window.
type TriggerInput struct {
	FromDate string `json:"from_date,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2026-08-01"`
	ToDate   string `json:"to_date,omitempty"   validate:"omitempty,datetime=2006-01-02" example:"2026-08-08"`
}

// Range resolves the input bounds against now. Absent sides take the
// default lookback window ending at now.
func (in TriggerInput) Range(now time.Time) (from, to time.Time, err error) {
	from, to = windowplan.DefaultRange(now)
	if in.FromDate != "" {
		from, err = time.ParseInLocation(DateLayout, in.FromDate, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, perr.InvalidArgf("from_date %q: %v", in.FromDate, err)
		}
	}
	if in.ToDate != "" {
		to, err = time.ParseInLocation(DateLayout, in.ToDate, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, perr.InvalidArgf("to_date %q: %v", in.ToDate, err)
		}
	}
	return from, to, nil
}

// TriggerResponse is the trigger payload. Data is null only when the
// run failed before any window could be attempted.
type TriggerResponse struct {
	Success bool               `json:"success" example:"true"`
	Message string             `json:"message" example:"sync completed"`
	Data    *syncdomain.Result `json:"data"`
}
