package http

import (
	stdhttp "net/http"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler exposes pprof under prefix, typically "/debug". Off by
// default, the flag comes from CORE_API_PROFILER.
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	// the profiler mux expects to sit at /, strip our prefix first
	h := stdhttp.StripPrefix(prefix, mw.Profiler())

	serve := func(w stdhttp.ResponseWriter, req *stdhttp.Request) { h.ServeHTTP(w, req) }
	r.Get(prefix, serve)
	r.Get(prefix+"/*", serve)
}
