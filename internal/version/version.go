// Package version carries the onimo build stamp. The values are overwritten
// with -ldflags "-X github.com/kailas-cloud/onimo/internal/version.Version=..."
// by the release build.
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the stamp as "v1.2.3 (abc123, 2026-01-01)".
func String() string {
	return fmt.Sprintf("%s (%s, %s)", Version, Commit, Date)
}
