package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/sheaf/internal/paths"
	"github.com/thoreinstein/sheaf/pkg/sheaf"
	"github.com/thoreinstein/sheaf/pkg/sheaf/cli"
)

// isolate points the XDG and HOME lookups at a temp dir and returns it.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	// Registered first so it runs after the environment is restored.
	t.Cleanup(xdg.Reload)
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	xdg.Reload()
	return home
}

func TestKeysMatchSchema(t *testing.T) {
	if err := Schema.Check(Keys()...); err != nil {
		t.Fatalf("Schema.Check() error = %v", err)
	}
}

func TestLayoutResolves(t *testing.T) {
	surfaces, warnings, err := cli.Resolve(Schema, Layout)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Resolve() warnings = %v, want none", warnings)
	}
	show, ok := surfaces.Command("show")
	if !ok {
		t.Fatal("show surface missing")
	}
	// log.format stays off the command line, so --format is unambiguous.
	if got := show.Owner("format"); got != "show" {
		t.Errorf("show --format owned by %q, want show", got)
	}
	if got := show.Owner("verbose"); got != "log" {
		t.Errorf("show --verbose owned by %q, want log", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	loaded, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := LogLevel.Get(loaded.Config); got != "warn" {
		t.Errorf("log.level = %q, want warn", got)
	}
	if got := LogFile.Get(loaded.Config); got != nil {
		t.Errorf("log.file = %q, want nil", *got)
	}
	for _, r := range loaded.Reports {
		if r.Found {
			t.Errorf("report for %s: Found = true, want false", r.Path)
		}
	}
	if errs := Validate(loaded.Config); len(errs) != 0 {
		t.Errorf("Validate(defaults) = %v, want none", errs)
	}
}

func TestLoad_LocalOverridesGlobal(t *testing.T) {
	isolate(t)
	global := paths.GlobalConfigFile()
	if err := os.MkdirAll(filepath.Dir(global), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(global, []byte("[log]\nlevel = \"info\"\nformat = \"json\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".sheaf.toml"), []byte("[log]\nlevel = \"debug\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := LogLevel.Get(loaded.Config); got != "debug" {
		t.Errorf("log.level = %q, want debug", got)
	}
	if got := LogFormat.Get(loaded.Config); got != "json" {
		t.Errorf("log.format = %q, want json", got)
	}
	if len(loaded.Reports) != 2 {
		t.Fatalf("len(Reports) = %d, want 2", len(loaded.Reports))
	}
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("SHEAF_SHOW_FORMAT", "json")

	loaded, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := ShowFormat.Get(loaded.Config); got != "json" {
		t.Errorf("show.format = %q, want json", got)
	}
	if len(loaded.Env) != 1 || loaded.Env[0] != "show.format" {
		t.Errorf("Env = %v, want [show.format]", loaded.Env)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".sheaf.toml"), []byte("[log\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if !errors.Is(err, sheaf.ErrMalformedFile) {
		t.Errorf("Load() error = %v, want ErrMalformedFile", err)
	}
}

func TestLoadLenient_SkipsBrokenFile(t *testing.T) {
	isolate(t)
	global := paths.GlobalConfigFile()
	if err := os.MkdirAll(filepath.Dir(global), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(global, []byte("[log]\nlevel = \"info\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	local := filepath.Join(dir, ".sheaf.toml")
	if err := os.WriteFile(local, []byte("[log]\nlevel = \"debug\"\ncolor = \"maybe\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); !errors.Is(err, sheaf.ErrTypeMismatch) {
		t.Fatalf("Load() error = %v, want ErrTypeMismatch", err)
	}

	loaded, err := LoadLenient(dir)
	if err != nil {
		t.Fatalf("LoadLenient() error = %v", err)
	}
	// Nothing from the broken file is applied, not even its valid options.
	if got := LogLevel.Get(loaded.Config); got != "info" {
		t.Errorf("log.level = %q, want info", got)
	}
	if len(loaded.Skipped) != 1 || loaded.Skipped[0].Source != local {
		t.Fatalf("Skipped = %v, want [%s]", loaded.Skipped, local)
	}
	if !errors.Is(loaded.Skipped[0].Err, sheaf.ErrTypeMismatch) {
		t.Errorf("Skipped error = %v, want ErrTypeMismatch", loaded.Skipped[0].Err)
	}
	if len(loaded.Reports) != 1 || loaded.Reports[0].Path != global {
		t.Errorf("Reports = %v, want only the global file", loaded.Reports)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Schema.Default()
	if err != nil {
		t.Fatal(err)
	}
	if err := LogLevel.Set(cfg, "loud"); err != nil {
		t.Fatal(err)
	}
	if err := ShowFormat.Set(cfg, "xml"); err != nil {
		t.Fatal(err)
	}
	if err := CompletePrint.Set(cfg, "fish"); err != nil {
		t.Fatal(err)
	}

	errs := Validate(cfg)
	if len(errs) != 3 {
		t.Fatalf("Validate() = %v, want 3 errors", errs)
	}
	for _, want := range []error{ErrInvalidLevel, ErrInvalidFormat, ErrInvalidShell} {
		found := false
		for _, e := range errs {
			if errors.Is(e, want) {
				found = true
			}
		}
		if !found {
			t.Errorf("Validate() missing %v in %v", want, errs)
		}
	}

	var fe *FieldError
	if !errors.As(errs[0], &fe) || fe.Field != "log.level" {
		t.Errorf("first error = %v, want FieldError for log.level", errs[0])
	}
}

func TestValidate_Nil(t *testing.T) {
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("Validate(nil) = %v, want one error", errs)
	}
}
