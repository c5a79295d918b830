package module

import (
	"time"

	"posbridge/internal/platform/config"
)

// Options holds configuration for the sync service
type Options struct {
	WindowTimeout time.Duration
	FetchTimeout  time.Duration
	DBTimeout     time.Duration
	MaxRangeDays  int

	// Vendor API connection
	BaseURL     string
	Login       string
	Password    string
	HTTPTimeout time.Duration
}

// FromConfig reads sync options with CORE_SYNC_ prefix and vendor
// credentials with POS_ prefix
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SYNC_")
	pc := cfg.Prefix("POS_")
	return Options{
		WindowTimeout: sc.MayDuration("WINDOW_TIMEOUT", 10*time.Minute),
		FetchTimeout:  sc.MayDuration("FETCH_TIMEOUT", 3*time.Minute),
		DBTimeout:     sc.MayDuration("DB_TIMEOUT", 2*time.Minute),
		MaxRangeDays:  sc.MayInt("MAX_RANGE_DAYS", 0),

		BaseURL:     pc.MayString("BASE_URL", ""),
		Login:       pc.MayString("LOGIN", ""),
		Password:    pc.MayString("PASSWORD", ""),
		HTTPTimeout: pc.MayDuration("TIMEOUT", 3*time.Minute),
	}
}
