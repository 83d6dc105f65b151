// Package buildinfo holds the version stamped into timeline binaries.
//
// main passes its ldflags values through cli.SetVersion; the variables can
// also be set directly:
//
//	go build -ldflags "-X github.com/matzehuels/timeline/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/timeline/pkg/buildinfo.Commit=$(git rev-parse HEAD)" ./cmd/timeline
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Info is the build information as reported by the HTTP health check.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
