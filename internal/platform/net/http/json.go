package http

import (
	"net/http"

	"posbridge/internal/platform/net/http/bind"
)

// JSONHandler binds and validates the request body into T before fn
// runs. Bind failures answer through the envelope without reaching fn.
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}
