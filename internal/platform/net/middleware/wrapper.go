package middleware

import (
	"net/http"
	"time"

	pstrings "posbridge/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Thin pass-throughs over chi middleware. Modules import these instead
// of chi so the router library stays swappable in one place.

// RequestID propagates or mints X-Request-ID onto the context.
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP rewrites RemoteAddr from X-Forwarded-For.
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// Timeout cancels the request context after d.
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// NoCache stamps anti-caching headers on every response.
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// Compress negotiates response compression at the given flate level.
func Compress(level int) func(http.Handler) http.Handler {
	c := chimw.NewCompressor(level)
	return func(next http.Handler) http.Handler { return c.Handler(next) }
}

// RedirectSlashes sends /reports/ to /reports.
func RedirectSlashes() func(http.Handler) http.Handler { return chimw.RedirectSlashes }

// StripSlashes drops a trailing slash before routing.
func StripSlashes() func(http.Handler) http.Handler { return chimw.StripSlashes }

// Heartbeat short-circuits GET path with a bare 200 for load balancers.
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// CORSOptions is the slice of go-chi/cors the bridge actually tunes.
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS builds the cors handler, filling unset method and header lists
// with the defaults the dashboard needs.
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		AllowedHeaders: pstrings.IfEmpty(
			o.AllowedHeaders,
			[]string{
				"Accept",
				"Authorization",
				"Content-Type",
				"X-Request-ID",
			},
		),
		ExposedHeaders:   o.ExposedHeaders,
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
