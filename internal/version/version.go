package version

import (
	"fmt"
	"runtime"
)

// Set at build time with -ldflags "-X github.com/MrSnakeDoc/askgrace/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
	GoVersion = runtime.Version()
)

// String renders the build identity for startup logs.
func String() string {
	return fmt.Sprintf("askgrace %s (commit=%s, built=%s, go=%s)", Version, Commit, BuildDate, GoVersion)
}
