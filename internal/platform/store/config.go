package store

import "time"

// Config collects the per-backend settings Open understands.
type Config struct {
	AppName string

	PG PGConfig
}

// PGConfig drives postgres connectivity and query tracing.
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Boot-time readiness knobs. Zero values take the openPG defaults.
	ConnectRetries int
	PingTimeout    time.Duration
}
