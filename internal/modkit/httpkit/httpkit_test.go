package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "posbridge/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func newRouter() Router { return phttp.AdaptChi(chi.NewRouter()) }

type trigger struct {
	FromDate string `json:"from_date" validate:"omitempty,datetime=2006-01-02"`
	ToDate   string `json:"to_date" validate:"omitempty,datetime=2006-01-02"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestPostJSON_BindsAndValidates(t *testing.T) {
	t.Parallel()

	r := newRouter()
	var got trigger
	PostJSON(r, "/sync/sales", func(_ *http.Request, in trigger) (any, error) {
		got = in
		return map[string]any{"success": true}, nil
	})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("POST", "/sync/sales",
		strings.NewReader(`{"from_date":"2024-03-01","to_date":"2024-03-08"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got.FromDate != "2024-03-01" || got.ToDate != "2024-03-08" {
		t.Fatalf("bound payload = %+v", got)
	}

	// an invalid day never reaches the handler
	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("POST", "/sync/sales",
		strings.NewReader(`{"from_date":"yesterday"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == "" || env.StatusCode != http.StatusBadRequest {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestGet_WrapsResultInEnvelope(t *testing.T) {
	t.Parallel()

	r := newRouter()
	Get(r, "/health", func(*http.Request) (any, error) {
		return map[string]string{"status": "ok"}, nil
	})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "OK" || env.Data == nil {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestCall_PassesThroughResponses(t *testing.T) {
	t.Parallel()

	r := newRouter()
	Get(r, "/custom", func(*http.Request) (any, error) {
		return phttp.Response{Status: http.StatusAccepted, Body: "queued"}, nil
	})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/custom", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
}

func TestMountUnder_PrefixesAndAppliesMiddleware(t *testing.T) {
	t.Parallel()

	r := newRouter()
	seen := false
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			seen = true
			next.ServeHTTP(w, req)
		})
	}

	MountUnder(r, "/reports", []func(http.Handler) http.Handler{mw}, func(sub Router) {
		Get(sub, "/revenue", func(*http.Request) (any, error) { return "rows", nil })
	})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/reports/revenue", nil))
	if rec.Code != http.StatusOK || !seen {
		t.Fatalf("status = %d, middleware seen = %v", rec.Code, seen)
	}

	// the bare path must not exist outside the prefix
	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/revenue", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unprefixed status = %d, want 404", rec.Code)
	}
}

func TestMountAPIV1(t *testing.T) {
	t.Parallel()

	r := newRouter()
	MountAPIV1(r, nil, func(api Router) {
		Get(api, "/sync/status", func(*http.Request) (any, error) { return "idle", nil })
	})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/sync/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCommonStack_HeartbeatAndRequestID(t *testing.T) {
	t.Parallel()

	r := newRouter()
	r.Use(CommonStack()...)
	Get(r, "/reports/revenue", func(*http.Request) (any, error) { return "rows", nil })

	// heartbeat answers before any handler
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("heartbeat status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/reports/revenue", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.RequestID == "" {
		t.Fatalf("request id missing from envelope: %+v", env)
	}
}
