// Package version holds the build version reported by --version.
package version

// Version is overridden at link time with -ldflags "-X kmerbloom/internal/version.Version=...".
var Version = "0.3.0"
