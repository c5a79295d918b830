package http

import (
	stdctx "context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "posbridge/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(stdctx.Context) error { return f.err }

func serve(t *testing.T, d Deps, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, d)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", path, nil))

	var env struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return rec, env.Data
}

func TestHealth(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC)
	rec, data := serve(t, Deps{ServiceName: "posbridge-api", StartedAt: started}, "/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if data["ok"] != true || data["service"] != "posbridge-api" {
		t.Fatalf("health payload = %v", data)
	}
	if data["started"] != "2026-08-01T06:00:00Z" {
		t.Fatalf("started = %v", data["started"])
	}
}

func TestReady(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		pg         any
		wantStatus string
		wantCheck  string
	}{
		"pg answers":      {pg: fakePinger{}, wantStatus: "ok", wantCheck: "ok"},
		"pg down":         {pg: fakePinger{err: errors.New("connection refused")}, wantStatus: "fail", wantCheck: "fail"},
		"pg disabled":     {pg: nil, wantStatus: "degraded", wantCheck: "skipped"},
		"pg not pingable": {pg: struct{}{}, wantStatus: "degraded", wantCheck: "unknown"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, data := serve(t, Deps{ServiceName: "posbridge-api", StartedAt: time.Now(), PG: tc.pg}, "/ready")
			if data["status"] != tc.wantStatus {
				t.Fatalf("status = %v, want %s", data["status"], tc.wantStatus)
			}
			checks := data["checks"].([]any)
			pg := checks[0].(map[string]any)
			if pg["name"] != "pg" || pg["status"] != tc.wantCheck {
				t.Fatalf("pg check = %v", pg)
			}
		})
	}
}

func TestService_UptimeCountsFromStart(t *testing.T) {
	t.Parallel()

	started := time.Now().Add(-3 * time.Minute)
	_, data := serve(t, Deps{ServiceName: "posbridge-api", StartedAt: started}, "/service")

	up, ok := data["uptime"].(float64)
	if !ok || up < 179 || up > 200 {
		t.Fatalf("uptime = %v, want about 180s", data["uptime"])
	}
	if data["name"] != "posbridge-api" {
		t.Fatalf("name = %v", data["name"])
	}
}

func TestVersion_ReturnsBuildInfo(t *testing.T) {
	t.Parallel()

	rec, data := serve(t, Deps{ServiceName: "posbridge-api", StartedAt: time.Now()}, "/version")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, ok := data["version"]; !ok {
		t.Fatalf("version payload = %v", data)
	}
}
