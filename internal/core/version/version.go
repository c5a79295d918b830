// Package version reports what build of the bridge is running.
package version

// Stamped through -ldflags, for example
// -X 'posbridge/internal/core/version.version=v0.3.0'.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo is the payload /meta/version answers with.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info assembles the build stamp.
func Info() BuildInfo {
	return BuildInfo{
		Service: "posbridge-api",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}
