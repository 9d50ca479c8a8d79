// Package writers holds the small pieces shared by every command that
// writes to stdout: broken-pipe detection and exit-code aware flushing.
package writers
