package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"posbridge/internal/platform/config"
	phttp "posbridge/internal/platform/net/http"
)

func TestNewServer_DefaultsAndMux(t *testing.T) {
	srv := phttp.NewServer(config.New()) // no env, should default to :4000
	if srv.Addr() == "" {
		t.Fatalf("expected non-empty addr")
	}
	r := srv.Router()
	if r == nil || r.Mux() == nil {
		t.Fatalf("router or mux is nil")
	}

	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ready")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ready", nil)
	r.Mux().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "ready" {
		t.Fatalf("bad response: %d %q", rec.Code, rec.Body.String())
	}
}
