package completion

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"time"
)

// VersionFunc reports a shell version; ok is false when it is unknown.
type VersionFunc func() (major, minor int, ok bool)

var versionRe = regexp.MustCompile(`([0-9]+)\.([0-9]+)`)

// ZshVersion runs zsh --version. Any failure reports an unknown version.
func ZshVersion() (major, minor int, ok bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, "zsh", "--version").Output()
	if err != nil {
		return 0, 0, false
	}
	return parseVersion(string(out))
}

func parseVersion(s string) (major, minor int, ok bool) {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}
