// Package editor provides utilities for launching the user's preferred text editor.
package editor

import (
	"os"
	"os/exec"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-shellwords"
)

// ErrNoEditor indicates the editor command line is empty.
var ErrNoEditor = errors.New("no editor command")

// Run launches editorCmd on path, attached to the terminal. editorCmd is a
// shell-like command line such as "code --wait"; when it is empty, $EDITOR,
// then $VISUAL, then nano, then vi are tried.
func Run(editorCmd, path string) error {
	if editorCmd == "" {
		editorCmd = detectEditor()
	}
	name, args, err := Command(editorCmd, path)
	if err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", name)
	}
	return nil
}

// Command splits editorCmd into a program and its arguments, appending path.
func Command(editorCmd, path string) (string, []string, error) {
	words, err := shellwords.Parse(editorCmd)
	if err != nil {
		return "", nil, errors.Wrapf(err, "parsing editor command %q", editorCmd)
	}
	if len(words) == 0 {
		return "", nil, ErrNoEditor
	}
	return words[0], append(words[1:], path), nil
}

// detectEditor returns the editor command to use based on environment variables
// and available binaries. Fallback chain: $EDITOR → $VISUAL → nano → vi
func detectEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	// POSIX standard fallback (vi is available on all Unix systems)
	return "vi"
}
