package cli

import (
	"context"
	"os"

	"github.com/matzehuels/timeline/pkg/buildinfo"
)

// SetVersion overrides the build information shown by --version. main
// calls it with the values injected via ldflags; empty values keep the
// buildinfo defaults.
func SetVersion(v, c, d string) {
	if v != "" {
		buildinfo.Version = v
	}
	if c != "" {
		buildinfo.Commit = c
	}
	if d != "" {
		buildinfo.Date = d
	}
}

// Execute runs the timeline CLI and returns an error if any command fails.
//
// Logging goes to stderr at info level; --verbose (-v) switches to debug
// and also traces pipeline and cache events. The logger is attached to
// the command context and available through loggerFromContext.
//
// Errors are returned rather than printed so main can pick the exit code.
//
//	func main() {
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context) error {
	c := New(os.Stderr, LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}
