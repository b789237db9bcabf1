// Package completion generates zsh and bash completion scripts for a command
// line managed by cli.Manager.
package completion
