// Package version exposes build information injected at link time.
package version

import "runtime"

// Set via -ldflags "-X github.com/rshade/schoolconsole/pkg/version.version=...".
//
//nolint:gochecknoglobals // Link-time injected build metadata.
var (
	version   = "0.0.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// GetGoVersion returns the Go toolchain version used for the build.
func GetGoVersion() string {
	return runtime.Version()
}
