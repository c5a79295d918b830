package modkit

import (
	"net/http"

	phttp "posbridge/internal/platform/net/http"
)

// Option adjusts how a module builds.
type Option func(*buildCfg)

// buildCfg accumulates option state before Build flattens it.
type buildCfg struct {
	name      string
	prefix    string
	mw        []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool
	subrouter func(phttp.Router) phttp.Router
	register  func(phttp.Router)
}

// WithName names the module for logs and the port registry.
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithPrefix sets the path the module mounts under.
func WithPrefix(prefix string) Option {
	return func(c *buildCfg) { c.prefix = prefix }
}

// WithMiddlewares appends per-module middleware, preserving order
// across repeated calls.
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithPorts hands the module a port bundle published by another
// module. The concrete type belongs to the consumer.
func WithPorts[T any](p T) Option {
	return func(c *buildCfg) { c.ports = p }
}

// WithSwagger toggles the swagger UI for this module.
func WithSwagger(enabled bool) Option {
	return func(c *buildCfg) { c.swaggerOn = enabled }
}

// WithSubrouter supplies a factory that rewraps the module router
// before routes register.
func WithSubrouter(fn func(phttp.Router) phttp.Router) Option {
	return func(c *buildCfg) { c.subrouter = fn }
}

// WithRegister adds an extra route registration hook that runs after
// the module's own routes.
func WithRegister(fn func(phttp.Router)) Option {
	return func(c *buildCfg) { c.register = fn }
}
