package sheaf

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/sheaf/internal/editor"
	"github.com/thoreinstein/sheaf/internal/paths"
)

// Switch declares a boolean toggled on the command line with +name / -name
// (and +s / -s when short is set). It panics if short is not a single
// character.
func Switch(def bool, short, doc string) *Entry {
	opts := []EntryOption{WithCLI(CLIOptions{Action: ActionSwitch}), NoCompletion()}
	if short != "" {
		opts = append(opts, Short(short))
	}
	return MustEntry(Val(def), doc, opts...)
}

// Flag declares a command line only boolean, set to true when present.
func Flag(short, doc string) *Entry {
	opts := []EntryOption{WithCLI(CLIOptions{Action: ActionStoreTrue}), NotInFile(), NoCompletion()}
	if short != "" {
		opts = append(opts, Short(short))
	}
	return MustEntry(Val(false), doc, opts...)
}

// PathEntry declares a filesystem path option. A leading "~" is expanded to
// the home directory and the path is cleaned.
func PathEntry(def, doc string, opts ...EntryOption) *Entry {
	base := []EntryOption{ParseAs(parsePath), CompRule("_files")}
	return MustEntry(Text[string](def), doc, append(base, opts...)...)
}

func parsePath(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", errors.Wrapf(ErrTypeMismatch, "path must be a string, got %T", raw)
	}
	s, err := paths.ExpandHome(s)
	if err != nil {
		return "", err
	}
	return filepath.Clean(s), nil
}

// ConfigFileSection declares the options handled by HandleConfigCommand:
// create, create_local, update, edit and editor.
func ConfigFileSection() *SectionSchema {
	return MustSectionSchema(
		F("create", Flag("", "create most global config file")),
		F("create_local", Flag("", "create most local config file")),
		F("update", Flag("", "add missing entries to config file")),
		F("edit", Flag("", "open config file in a text editor")),
		F("editor", MustEntry(Val("vim"), "text editor", NoCompletion())),
	)
}

// OpenFunc launches an editor on a file.
type OpenFunc func(editorCmd, path string) error

// HandleConfigCommand acts on a section declared with ConfigFileSection.
// files lists config files from most global to most local. Created files
// hold default values, or current values when update is set. Editing
// creates the global file first if it does not exist.
func HandleConfigCommand(cfg *Config, section string, files []string, open OpenFunc) error {
	sec, err := cfg.Section(section)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no config file path configured")
	}
	if open == nil {
		open = editor.Run
	}

	flag := func(name string) (bool, error) { return Value[bool](sec, name) }
	create, err := flag("create")
	if err != nil {
		return err
	}
	createLocal, err := flag("create_local")
	if err != nil {
		return err
	}
	update, err := flag("update")
	if err != nil {
		return err
	}
	edit, err := flag("edit")
	if err != nil {
		return err
	}
	editorCmd, err := Value[string](sec, "editor")
	if err != nil {
		return err
	}

	global, local := files[0], files[len(files)-1]
	if create || update {
		if err := writeConfigFile(cfg, global, update); err != nil {
			return err
		}
	}
	if createLocal {
		if err := writeConfigFile(cfg, local, update); err != nil {
			return err
		}
	}
	if edit {
		if _, err := os.Stat(global); errors.Is(err, os.ErrNotExist) {
			if err := writeConfigFile(cfg, global, update); err != nil {
				return err
			}
		}
		if err := open(editorCmd, global); err != nil {
			return errors.Wrapf(err, "editing %s", global)
		}
	}
	return nil
}

func writeConfigFile(cfg *Config, path string, current bool) error {
	if current {
		return cfg.SaveFile(path, true)
	}
	def, err := cfg.Schema().Default()
	if err != nil {
		return err
	}
	return def.SaveFile(path, true)
}
