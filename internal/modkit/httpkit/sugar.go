package httpkit

import (
	"net/http"

	phttp "posbridge/internal/platform/net/http"
)

// PostJSON mounts a JSON handler under POST. The payload binds and
// validates through the platform bind layer before fn runs.
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// Get mounts a body-less handler through the envelope adapter.
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}
