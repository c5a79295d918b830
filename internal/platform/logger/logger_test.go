package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "posbridge/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"panic", "panic"},
		{"", "debug"},
		{"   loud   ", "debug"},
	}
	for _, c := range cases {
		lvl := parseLevel(c.in)
		if strings.ToLower(lvl.String()) != c.want {
			t.Fatalf("parseLevel(%q) = %q, want %q", c.in, lvl, c.want)
		}
	}
}

func TestInit_ChildLoggersCarryContext(t *testing.T) {
	var buf bytes.Buffer

	// sampling enabled to exercise that branch
	Init(Options{
		Level:       "info",
		Format:      "console",
		Service:     "posbridge-api",
		Component:   "root",
		Writer:      &buf,
		WithCaller:  true,
		SampleEvery: 2,
		StaticFields: map[string]string{
			"vendor": "resto",
		},
	})

	// re-sample each child to N=1 so every line emits
	unsampled := func(l *Logger) *Logger {
		v := l.Sample(&zerolog.BasicSampler{N: 1})
		return &v
	}

	unsampled(Get()).Info().Str("table", "sales").Msg("root-msg")
	unsampled(Named("syncapi")).Info().Msg("named-msg")

	ctx := WithRun(WithRequest(context.Background(), "req-7f0a"), "run-2026-08-01")
	unsampled(C(ctx)).Info().Msg("ctx-msg")

	// a context without ids still yields a usable child
	unsampled(C(context.Background())).Info().Msg("ctx-empty")

	out := buf.String()

	// tolerate console writer spacing around key=value
	kit.MustContain(t, out, "root-msg")
	kit.MustContain(t, out, "named-msg")
	kit.MustContain(t, out, "ctx-msg")
	kit.MustContain(t, out, "component=")
	kit.MustContain(t, out, "syncapi")
	kit.MustContain(t, out, "request_id=")
	kit.MustContain(t, out, "req-7f0a")
	kit.MustContain(t, out, "run_id=")
	kit.MustContain(t, out, "run-2026-08-01")
	kit.MustContain(t, out, "vendor=")
	kit.MustContain(t, out, "resto")
	kit.MustContain(t, out, "service=")
	kit.MustContain(t, out, "posbridge-api")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "posbridge-sync")
	t.Setenv("LOG_COMPONENT", "runner")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if strings.ToLower(opt.Level) != "warn" {
		t.Fatalf("FromEnv Level = %q, want warn", opt.Level)
	}
	if opt.Format != "json" || opt.Service != "posbridge-sync" || opt.Component != "runner" {
		t.Fatalf("FromEnv fields mismatch: %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv caller/sample mismatch: %+v", opt)
	}
}

func TestC_EmptyContext(t *testing.T) {
	v := C(context.Background()).Sample(&zerolog.BasicSampler{N: 1})
	p := &v
	p.Debug().Msg("no-fields")
}
