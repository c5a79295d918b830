// Package windowplan splits a date range into half-open daily fetch windows.
//
// Vendor report endpoints degrade badly on wide ranges, so a sync run walks
// one calendar day at a time. All windows are [Start, End) in UTC.
package windowplan

import (
	"iter"
	"time"
)

// DefaultLookback is the trailing range used when a caller gives no bounds.
const DefaultLookback = 7 * 24 * time.Hour

// Window is a half-open [Start, End) slice of the sync range
type Window struct {
	Start time.Time
	End   time.Time
}

// Day returns the calendar date the window covers
func (w Window) Day() time.Time { return w.Start }

// Contains reports whether t falls inside the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// truncate drops the time-of-day component in UTC
func truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Plan yields one window per calendar day in [from, to), oldest first.
// Both bounds are truncated to dates before planning; a range that
// truncates to zero days yields nothing. The sequence is restartable.
func Plan(from, to time.Time) iter.Seq[Window] {
	start := truncate(from)
	end := truncate(to)
	return func(yield func(Window) bool) {
		for cur := start; cur.Before(end); cur = cur.AddDate(0, 0, 1) {
			if !yield(Window{Start: cur, End: cur.AddDate(0, 0, 1)}) {
				return
			}
		}
	}
}

// Span materializes Plan into a slice
func Span(from, to time.Time) []Window {
	var out []Window
	for w := range Plan(from, to) {
		out = append(out, w)
	}
	return out
}

// Count returns the number of windows Plan would yield
func Count(from, to time.Time) int {
	start, end := truncate(from), truncate(to)
	if !start.Before(end) {
		return 0
	}
	return int(end.Sub(start) / (24 * time.Hour))
}

// Whole returns a single window covering the full truncated range and true,
// or a zero window and false when the range is empty. Snapshot feeds that
// ignore time bounds sync through one whole-range window.
func Whole(from, to time.Time) (Window, bool) {
	start, end := truncate(from), truncate(to)
	if !start.Before(end) {
		return Window{}, false
	}
	return Window{Start: start, End: end}, true
}

// DefaultRange returns the trailing lookback range ending at now
func DefaultRange(now time.Time) (from, to time.Time) {
	return now.Add(-DefaultLookback), now
}
