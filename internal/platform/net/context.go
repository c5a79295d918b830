// Package net holds the request-scoped context helpers and the wire
// envelope shared by middlewares.
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest stores reqID under the chi key, keeping chimw.GetReqID
// and our code in agreement about where the id lives.
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID reads the request id off ctx, empty when absent.
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
