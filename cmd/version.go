// Package cmd holds build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/thoreinstein/changelint/cmd.Version=v1.2.0" ./cmd/changelint
package cmd

import "fmt"

// Build-time variables set via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

// Info returns the multi-line version block printed by `changelint version`.
func Info() string {
	return fmt.Sprintf("changelint version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
