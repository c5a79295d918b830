package config

import (
	"testing"
	"time"

	kit "posbridge/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	api := root.Prefix("CORE_API_")
	if got := api.key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("key() = %q, want %q", got, "CORE_API_PORT")
	}
	// prefixes nest
	docs := api.Prefix("DOCS_")
	if got := docs.key("ENABLED"); got != "CORE_API_DOCS_ENABLED" {
		t.Fatalf("nested key() = %q, want %q", got, "CORE_API_DOCS_ENABLED")
	}
}

// Must* panics

func TestMustString(t *testing.T) {
	c := New().Prefix("VENDOR_")
	t.Setenv("VENDOR_LOGIN", "  shop-7 ")
	if got := c.MustString("LOGIN"); got != "shop-7" {
		t.Fatalf("MustString = %q, want %q", got, "shop-7")
	}

	kit.MustPanic(t, func() { _ = c.MustString("PASSWORD") })
}

func TestMustInt(t *testing.T) {
	c := New().Prefix("SYNC_")
	t.Setenv("SYNC_DEPTH_DAYS", "  14 ")
	if got := c.MustInt("DEPTH_DAYS"); got != 14 {
		t.Fatalf("MustInt = %d, want %d", got, 14)
	}
	kit.MustPanic(t, func() { _ = c.MustInt("MISSING") })
	t.Setenv("SYNC_BAD", "fortnight")
	kit.MustPanic(t, func() { _ = c.MustInt("BAD") })
}

func TestMustBool(t *testing.T) {
	c := New().Prefix("SYNC_")
	t.Setenv("SYNC_OPTIMIZE", " true ")
	if !c.MustBool("OPTIMIZE") {
		t.Fatalf("MustBool true expected")
	}
	kit.MustPanic(t, func() { _ = c.MustBool("MISSING") })
	t.Setenv("SYNC_BAD", "yep")
	kit.MustPanic(t, func() { _ = c.MustBool("BAD") })
}

func TestMustDuration(t *testing.T) {
	c := New().Prefix("VENDOR_")
	t.Setenv("VENDOR_TIMEOUT", " 30s ")
	if got := c.MustDuration("TIMEOUT"); got != 30*time.Second {
		t.Fatalf("MustDuration = %v, want %v", got, 30*time.Second)
	}
	t.Setenv("VENDOR_BAD", "half an hour")
	kit.MustPanic(t, func() { _ = c.MustDuration("BAD") })
}

func TestMustURL(t *testing.T) {
	c := New().Prefix("VENDOR_")
	t.Setenv("VENDOR_BASE_URL", "https://pos.example.com/resto/api")
	u := c.MustURL("BASE_URL")
	if !u.IsAbs() || u.Host != "pos.example.com" {
		t.Fatalf("MustURL parsed wrong: %v", u)
	}
	t.Setenv("VENDOR_BAD1", "://bad")
	kit.MustPanic(t, func() { _ = c.MustURL("BAD1") })
	t.Setenv("VENDOR_BAD2", "/resto/api")
	kit.MustPanic(t, func() { _ = c.MustURL("BAD2") })
}

func TestMustPort(t *testing.T) {
	c := New().Prefix("CORE_API_")
	t.Setenv("CORE_API_PORT", "4000")
	if got := c.MustPort("PORT"); got != ":4000" {
		t.Fatalf("MustPort = %q, want %q", got, ":4000")
	}
	t.Setenv("CORE_API_BAD", "http")
	kit.MustPanic(t, func() { _ = c.MustPort("BAD") })
	t.Setenv("CORE_API_OOB", "70000")
	kit.MustPanic(t, func() { _ = c.MustPort("OOB") })
}

func TestRequire(t *testing.T) {
	c := New().Prefix("SERVICE_PGSQL_")
	t.Setenv("SERVICE_PGSQL_HOST", "db")
	t.Setenv("SERVICE_PGSQL_NAME", "posbridge")
	// should not panic
	c.Require("HOST", "NAME")

	kit.MustPanic(t, func() { c.Require("HOST", "PASSWORD") })
}

func TestRequireWhitespaceIsMissing(t *testing.T) {
	c := New().Prefix("SERVICE_PGSQL_")
	t.Setenv("SERVICE_PGSQL_USER", "   ")
	kit.MustPanic(t, func() { c.Require("USER") })
}

// May* fallbacks

func TestMayString(t *testing.T) {
	c := New().Prefix("CORE_API_")
	if got := c.MayString("HOST", "0.0.0.0"); got != "0.0.0.0" {
		t.Fatalf("MayString default = %q, want %q", got, "0.0.0.0")
	}
	t.Setenv("CORE_API_HOST", " 127.0.0.1 ")
	if got := c.MayString("HOST", "0.0.0.0"); got != "127.0.0.1" {
		t.Fatalf("MayString value = %q, want %q", got, "127.0.0.1")
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("SYNC_")
	if got := c.MayInt("BATCH", 500); got != 500 {
		t.Fatalf("MayInt default = %d, want %d", got, 500)
	}
	t.Setenv("SYNC_BATCH", " 250 ")
	if got := c.MayInt("BATCH", 500); got != 250 {
		t.Fatalf("MayInt ok = %d, want %d", got, 250)
	}
	t.Setenv("SYNC_BAD", "many")
	if got := c.MayInt("BAD", 3); got != 3 {
		t.Fatalf("MayInt bad -> default = %d, want %d", got, 3)
	}
}

func TestMayFloat64(t *testing.T) {
	c := New().Prefix("SYNC_")
	if got := c.MayFloat64("JITTER", 0.1); got != 0.1 {
		t.Fatalf("MayFloat64 default = %v, want %v", got, 0.1)
	}
	t.Setenv("SYNC_JITTER", "0.25")
	if got := c.MayFloat64("JITTER", 0.1); got != 0.25 {
		t.Fatalf("MayFloat64 ok = %v, want %v", got, 0.25)
	}
	t.Setenv("SYNC_BAD", "a quarter")
	if got := c.MayFloat64("BAD", 0.5); got != 0.5 {
		t.Fatalf("MayFloat64 bad -> default = %v, want %v", got, 0.5)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("CORE_API_")
	if got := c.MayBool("PROFILER", true); got != true {
		t.Fatalf("MayBool default true expected")
	}
	t.Setenv("CORE_API_PROFILER", "false")
	if got := c.MayBool("PROFILER", true); got != false {
		t.Fatalf("MayBool false expected")
	}
	t.Setenv("CORE_API_BAD", "nah")
	if got := c.MayBool("BAD", false); got != false {
		t.Fatalf("MayBool bad -> default false expected")
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("SYNC_")
	if got := c.MayDuration("INTERVAL", 15*time.Minute); got != 15*time.Minute {
		t.Fatalf("MayDuration default expected")
	}
	t.Setenv("SYNC_INTERVAL", "5m")
	if got := c.MayDuration("INTERVAL", 15*time.Minute); got != 5*time.Minute {
		t.Fatalf("MayDuration ok = %v, want %v", got, 5*time.Minute)
	}
	t.Setenv("SYNC_BAD", "soonish")
	if got := c.MayDuration("BAD", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration bad -> default expected")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CORE_API_")
	def := []string{"http://localhost:3000"}
	if got := c.MayCSV("CORS_ORIGINS", def); len(got) != 1 || got[0] != def[0] {
		t.Fatalf("MayCSV default mismatch: %#v", got)
	}
	t.Setenv("CORE_API_CORS_ORIGINS", " https://a.example , https://b.example , ,https://c.example ,, ")
	got := c.MayCSV("CORS_ORIGINS", nil)
	want := []string{"https://a.example", "https://b.example", "https://c.example"}
	if len(got) != len(want) {
		t.Fatalf("MayCSV len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MayCSV[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMayCSVAllEmptyFallsBackToDefault(t *testing.T) {
	c := New().Prefix("CORE_API_")
	def := []string{"*"}
	t.Setenv("CORE_API_CORS_ORIGINS", " , ,  ,")
	got := c.MayCSV("CORS_ORIGINS", def)
	if len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV all-empty -> default mismatch: %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("LOG_")

	// empty uses default and does not panic
	if got := c.MayEnum("FORMAT", "json", "json", "console"); got != "json" {
		t.Fatalf("MayEnum default = %q, want %q", got, "json")
	}

	// matching is case-insensitive but the value is returned as set
	t.Setenv("LOG_FORMAT", "Console")
	if got := c.MayEnum("FORMAT", "json", "json", "console"); got != "Console" {
		t.Fatalf("MayEnum allowed value = %q, want %q", got, "Console")
	}

	t.Setenv("LOG_BAD", "xml")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "json", "json", "console") })
}

func TestMayEnumEmptyDefaultAndMissingEnv(t *testing.T) {
	c := New().Prefix("LOG_")
	if got := c.MayEnum("MISSING", "", "json", "console"); got != "" {
		t.Fatalf("MayEnum with empty def and missing env = %q, want empty string", got)
	}
}
