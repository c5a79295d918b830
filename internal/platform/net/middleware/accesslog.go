// Package middleware holds the chi wrappers and in-house middlewares
// the HTTP stacks share.
package middleware

import (
	"net/http"
	"time"

	"posbridge/internal/platform/logger"
)

// AccessLogOptions tunes the access log middleware.
type AccessLogOptions struct {
	// Requests taking at least Slow log at warn level. Zero disables
	// the slow marking.
	Slow time.Duration
}

// statusWriter records the status code and body size as they pass
// through to the underlying ResponseWriter.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += n
	return n, err
}

// AccessLogZerolog emits one structured line per finished request. It
// logs through the context logger, so request and run ids attached
// upstream land on the line automatically.
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(sw, r)

			elapsed := time.Since(start)
			log := logger.C(r.Context())
			evt := log.Info()
			if opt.Slow > 0 && elapsed >= opt.Slow {
				evt = log.Warn()
			}
			evt.Int("status", sw.status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("bytes", sw.bytes).
				Msg("request done")
		})
	}
}
