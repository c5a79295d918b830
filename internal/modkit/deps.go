// Package modkit provides module wiring and the shared deps bundle.
package modkit

import (
	"posbridge/internal/modkit/repokit"
	"posbridge/internal/platform/config"
	"posbridge/internal/platform/logger"
)

// Deps is the bundle every module constructor receives. Pure wiring,
// no behavior of its own.
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}
