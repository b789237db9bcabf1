package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the tool's directories under the XDG base directories.
const AppName = "sheaf"

// LocalConfigName is the per-directory config file name.
const LocalConfigName = ".sheaf.toml"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or "" when it cannot be determined.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ExpandHome replaces a leading "~" or "~/" with the home directory. Other
// paths, including "~user", are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// GlobalConfigFile returns <ConfigHome>/sheaf/config.toml.
func GlobalConfigFile() string {
	return filepath.Join(ConfigHome(), AppName, "config.toml")
}

// LocalConfigFile returns the config file of a project directory.
func LocalConfigFile(dir string) string {
	return filepath.Join(dir, LocalConfigName)
}

// ConfigFiles lists config files from most global to most local: the user
// file, then the file of dir.
func ConfigFiles(dir string) []string {
	return []string{GlobalConfigFile(), LocalConfigFile(dir)}
}

// CompletionDir returns <DataHome>/sheaf/completion, the default output
// directory of generated shell completion scripts.
func CompletionDir() string {
	return filepath.Join(DataHome(), AppName, "completion")
}
