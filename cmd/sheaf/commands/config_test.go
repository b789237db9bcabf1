package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/sheaf/internal/errors"
	"github.com/thoreinstein/sheaf/internal/paths"
)

func TestConfig_Create(t *testing.T) {
	app, _, _ := newTestApp(t)
	if err := run(t, app, "config", "--create"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	data, err := os.ReadFile(paths.GlobalConfigFile())
	if err != nil {
		t.Fatalf("global config not written: %v", err)
	}
	if !strings.Contains(string(data), "[log]") {
		t.Errorf("global config missing [log]:\n%s", data)
	}
	if _, err := os.Stat(paths.LocalConfigFile(app.Dir)); !os.IsNotExist(err) {
		t.Errorf("local config should not exist, stat error = %v", err)
	}
}

func TestConfig_CreateLocalWithUpdate(t *testing.T) {
	app, _, _ := newTestApp(t)
	// --level is given before the sub-command and ends up in the file.
	if err := run(t, app, "--level", "info", "config", "--create_local", "--update"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	data, err := os.ReadFile(paths.LocalConfigFile(app.Dir))
	if err != nil {
		t.Fatalf("local config not written: %v", err)
	}
	if !strings.Contains(string(data), `level = 'info'`) {
		t.Errorf("updated config should hold the current level:\n%s", data)
	}
}

func TestConfig_Edit(t *testing.T) {
	app, _, _ := newTestApp(t)
	var gotEditor, gotPath string
	app.Open = func(editorCmd, path string) error {
		gotEditor, gotPath = editorCmd, path
		return nil
	}
	if err := run(t, app, "config", "--edit", "--editor", "nano -w"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if gotPath != paths.GlobalConfigFile() {
		t.Errorf("edited %q, want %q", gotPath, paths.GlobalConfigFile())
	}
	if gotEditor != "nano -w" {
		t.Errorf("editor = %q, want %q", gotEditor, "nano -w")
	}
	if _, err := os.Stat(gotPath); err != nil {
		t.Errorf("edit should create the missing file: %v", err)
	}
}

func writeGlobalConfig(t *testing.T, content string) string {
	t.Helper()
	path := paths.GlobalConfigFile()
	if err := paths.EnsureDir(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// The suggested fix for a broken config file is `sheaf config --edit`, so it
// has to run with that file in place.
func TestConfig_EditBrokenConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		warning string
	}{
		{"malformed file", "[log\n", "ignoring broken config source"},
		{"wrong type", "[log]\ncolor = \"maybe\"\n", "ignoring broken config source"},
		{"invalid level", "[log]\nlevel = \"loud\"\n", "ignoring logging options"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, errOut := newTestApp(t)
			path := writeGlobalConfig(t, tt.content)
			var opened string
			app.Open = func(_, p string) error {
				opened = p
				return nil
			}

			if err := run(t, app, "config", "--edit"); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if opened != path {
				t.Errorf("editor opened %q, want %q", opened, path)
			}
			if !strings.Contains(errOut.String(), tt.warning) {
				t.Errorf("stderr missing %q:\n%s", tt.warning, errOut.String())
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.content {
				t.Errorf("edit must not rewrite the broken file, got:\n%s", data)
			}

			// Other commands still refuse the broken configuration.
			if err := run(t, app, "show"); !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("show error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
