package sheaf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwitchAndFlag(t *testing.T) {
	sw := Switch(true, "c", "colors")
	assert.Equal(t, ActionSwitch, sw.CLI().Action)
	assert.Equal(t, "c", sw.ShortName())
	assert.True(t, sw.InFile())
	_, ok := sw.CompletionRule()
	assert.False(t, ok)

	fl := Flag("", "dry run")
	assert.Equal(t, ActionStoreTrue, fl.CLI().Action)
	assert.False(t, fl.InFile())
	v, err := fl.ResolveDefault()
	require.NoError(t, err)
	assert.Equal(t, false, v)

	assert.Panics(t, func() { Switch(false, "xy", "") })
}

func TestPathEntry(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	e := PathEntry("~/data/../cache", "cache dir")
	rule, ok := e.CompletionRule()
	assert.True(t, ok)
	assert.Equal(t, "_files", rule)

	v, err := e.ResolveDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cache"), v)

	v, err = e.Cast("/tmp//x/")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", v)

	_, err = e.Cast(3)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func configCommandSchema() *Schema {
	return MustSchema(
		Sect("app", MustSectionSchema(F("level", MustEntry(Val("warn"), "")))),
		Sect("config", ConfigFileSection()),
	)
}

func readTOML(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, toml.Unmarshal(data, &out))
	return out
}

func TestHandleConfigCommand(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "global", "config.toml")
	local := filepath.Join(dir, "local.toml")
	files := []string{global, local}
	noEdit := func(string, string) error {
		t.Error("editor must not be opened")
		return nil
	}

	cfg, err := configCommandSchema().Default()
	require.NoError(t, err)
	require.NoError(t, cfg.MustSection("app").Set("level", "debug"))

	// create writes defaults to the global file only.
	require.NoError(t, cfg.MustSection("config").Set("create", true))
	require.NoError(t, HandleConfigCommand(cfg, "config", files, noEdit))
	assert.Equal(t, "warn", readTOML(t, global)["app"].(map[string]any)["level"])
	assert.NoFileExists(t, local)

	// create_local with update writes current values to the local file.
	require.NoError(t, cfg.Reset("config"))
	require.NoError(t, cfg.MustSection("config").Update(map[string]any{"create_local": true, "update": true}, false))
	require.NoError(t, HandleConfigCommand(cfg, "config", files, noEdit))
	assert.Equal(t, "debug", readTOML(t, local)["app"].(map[string]any)["level"])
	assert.Equal(t, "debug", readTOML(t, global)["app"].(map[string]any)["level"], "update rewrites the global file")

	// Flags never reach files.
	assert.NotContains(t, readTOML(t, local)["config"], "create")
	assert.Contains(t, readTOML(t, local)["config"], "editor")
}

func TestHandleConfigCommand_Edit(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "config.toml")

	cfg, err := configCommandSchema().Default()
	require.NoError(t, err)
	require.NoError(t, cfg.MustSection("config").Update(map[string]any{"edit": true, "editor": "ed -s"}, false))

	var opened []string
	open := func(editorCmd, path string) error {
		opened = append(opened, editorCmd, path)
		return nil
	}
	require.NoError(t, HandleConfigCommand(cfg, "config", []string{global}, open))
	assert.Equal(t, []string{"ed -s", global}, opened)
	assert.FileExists(t, global, "edit creates the missing file")
}

func TestHandleConfigCommand_Errors(t *testing.T) {
	cfg, err := configCommandSchema().Default()
	require.NoError(t, err)

	assert.ErrorIs(t, HandleConfigCommand(cfg, "nope", []string{"x"}, nil), ErrUnknownSection)
	assert.Error(t, HandleConfigCommand(cfg, "config", nil, nil))
	assert.ErrorIs(t, HandleConfigCommand(cfg, "app", []string{"x"}, nil), ErrUnknownOption)
}
