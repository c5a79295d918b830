// Package module holds the contract api modules satisfy plus the
// bootstrap registry that cross-wires their ports.
package module

import (
	phttp "posbridge/internal/platform/net/http"
)

// Module is what the api composition mounts. It lives in its own
// package so a module exporting a ports type never imports modkit back.
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
