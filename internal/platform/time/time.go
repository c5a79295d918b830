// Package time holds small time helpers shared by the normalizers.
package time

import "time"

// Ptr maps the zero time to nil so optional timestamps store as NULL.
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
