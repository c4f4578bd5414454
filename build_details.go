package apiary

import (
	"fmt"
	"runtime"
)

// Set via -ldflags "-X github.com/induct/apiary.version=..." in release
// builds.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the compiled version or "dev" if run from source.
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from.
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp.
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go runtime version.
func GoVersion() string {
	return runtime.Version()
}

// BuildInfo returns the build metadata, one field per line.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s",
		Version(), Commit(), BuildTime(), GoVersion())
}

// UserAgent returns the User-Agent generated clients send.
func UserAgent() string {
	return fmt.Sprintf("apiary/%s", version)
}
