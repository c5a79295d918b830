// Package httpkit re-exports the platform http seam for modules, so a
// module package depends on modkit alone.
package httpkit

import (
	"net/http"

	phttp "posbridge/internal/platform/net/http"
)

type (
	// Envelope is the JSON envelope every handler answer travels in.
	Envelope = phttp.Envelope

	// Response pairs a status code with an envelope payload.
	Response = phttp.Response

	// Handler is the platform handler shape.
	Handler = phttp.Handler

	// Router is the platform router seam.
	Router = phttp.Router
)

// OK wraps data in a 200 response.
func OK(data any) Response { return phttp.OK(data) }

// Error maps err onto a status and envelope through the platform layer.
func Error(err error) Response { return phttp.Error(err) }

// Call adapts a body-less handler. A returned Response passes through
// untouched, anything else wraps as 200.
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}
