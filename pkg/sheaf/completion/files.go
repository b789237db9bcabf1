package completion

import (
	"path/filepath"

	"github.com/thoreinstein/sheaf/pkg/sheaf/cli"
)

// WriteAll writes dir/zsh/_cmd.sh and dir/bash/cmd.sh and returns their
// paths.
func WriteAll(dir string, z Zsh, m *cli.Manager, cmd string, extra ...string) ([]string, error) {
	zshPath := filepath.Join(dir, "zsh", "_"+cmd+".sh")
	if err := z.WriteFile(zshPath, m, cmd, extra...); err != nil {
		return nil, err
	}
	bashPath := filepath.Join(dir, "bash", cmd+".sh")
	if err := (Bash{}).WriteFile(bashPath, m, cmd, extra...); err != nil {
		return []string{zshPath}, err
	}
	return []string{zshPath, bashPath}, nil
}
