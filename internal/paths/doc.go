// Package paths provides cross-platform path resolution for the sheaf CLI.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. On Linux and macOS, paths follow XDG conventions
// (~/.config, ~/.local/share).
//
// # Files
//
//	| Purpose            | Location                              |
//	|--------------------|---------------------------------------|
//	| User config        | <ConfigHome>/sheaf/config.toml        |
//	| Project config     | ./.sheaf.toml                         |
//	| Completion scripts | <DataHome>/sheaf/completion/{zsh,bash} |
//
// [ConfigFiles] lists config files from most global to most local, the order
// in which they are applied.
package paths
