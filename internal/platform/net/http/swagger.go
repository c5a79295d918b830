package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// MountSwagger serves the swagger UI under /docs when enabled.
func MountSwagger(r Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/docs/*", func(w http.ResponseWriter, req *http.Request) {
		httpSwagger.WrapHandler(w, req)
	})
}
