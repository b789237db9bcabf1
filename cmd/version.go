// Package cmd holds build metadata shared by the sheaf binaries.
package cmd

// Set with -ldflags "-X github.com/thoreinstein/sheaf/cmd.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
