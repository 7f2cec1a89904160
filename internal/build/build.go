// Package build holds build-time metadata injected via ldflags.
package build

// Set at build time via -ldflags.
var (
	// Version is the release version.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
