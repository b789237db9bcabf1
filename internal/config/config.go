// Package config declares the configuration of the sheaf tool itself, using
// the sheaf library.
package config

import (
	"log/slog"

	"github.com/thoreinstein/sheaf/internal/paths"
	"github.com/thoreinstein/sheaf/pkg/sheaf"
	"github.com/thoreinstein/sheaf/pkg/sheaf/cli"
)

// EnvPrefix prefixes environment overrides, as in SHEAF_LOG_LEVEL.
const EnvPrefix = "SHEAF"

var (
	stringList = sheaf.NewListEntry(sheaf.CastTo[string]())
	optPath    = sheaf.NewOptionalEntry(func(raw any) (string, error) {
		s, err := sheaf.CastTo[string]()(raw)
		if err != nil {
			return "", err
		}
		return paths.ExpandHome(s)
	})
)

func must(e *sheaf.Entry, err error) *sheaf.Entry {
	if err != nil {
		panic(err)
	}
	return e
}

// Log holds logging options, shared by every command.
var Log = sheaf.MustSectionSchema(
	sheaf.F("level", sheaf.MustEntry(sheaf.Val("warn"),
		"minimum log level (trace, debug, info, warn, error)",
		sheaf.CompRule("(trace debug info warn error)"))),
	sheaf.F("verbose", sheaf.MustEntry(sheaf.Val(0),
		"raise the log level, repeat for more",
		sheaf.Short("v"), sheaf.NotInFile(), sheaf.NoCompletion(),
		sheaf.WithCLI(sheaf.CLIOptions{Action: sheaf.ActionCount}))),
	sheaf.F("format", sheaf.MustEntry(sheaf.Val("text"),
		"log format (text or json)", sheaf.NotInCLI())),
	sheaf.F("file", must(optPath.Entry(nil,
		"also write JSON logs to this file", sheaf.OptionalCLIMandatory, sheaf.CompRule("_files")))),
	sheaf.F("color", sheaf.Switch(true, "", "colored output on terminals")),
)

// Complete holds the options of the complete command.
var Complete = sheaf.MustSectionSchema(
	sheaf.F("dir", must(optPath.Entry(nil,
		"output directory, defaults to the XDG data directory",
		sheaf.OptionalCLIMandatory, sheaf.CompRule("_files -/")))),
	sheaf.F("zsh_grouping", sheaf.Switch(false, "", "assume zsh 5.4 or later instead of probing")),
	sheaf.F("sourceable", sheaf.Switch(false, "", "end the zsh script with a compdef call")),
	sheaf.F("aliases", must(stringList.Entry(nil,
		"extra command names to complete", sheaf.ListCLIMany))),
	sheaf.F("print", sheaf.MustEntry(sheaf.Val(""),
		"print the zsh or bash script to stdout instead of writing files",
		sheaf.NotInFile(), sheaf.CompRule("(zsh bash)"))),
)

// Show holds the options of the show command.
var Show = sheaf.MustSectionSchema(
	sheaf.F("format", sheaf.MustEntry(sheaf.Val("toml"),
		"output format (toml, yaml or json)", sheaf.Short("f"), sheaf.CompRule("(toml yaml json)"))),
	sheaf.F("sections", must(stringList.Entry(nil,
		"sections to show, all when empty", sheaf.ListCLIMany, sheaf.NotInFile()))),
	sheaf.F("pick", sheaf.Flag("p", "pick sections interactively")),
	sheaf.F("defaults", sheaf.Flag("d", "show default values instead of the current ones")),
	sheaf.F("reveal", sheaf.Flag("", "do not mask values of secret-looking options")),
	sheaf.F("output", must(optPath.Entry(nil,
		"write to this file instead of stdout", sheaf.OptionalCLIMandatory,
		sheaf.NotInFile(), sheaf.CompRule("_files")))),
)

// Schema is the configuration of the sheaf tool.
var Schema = sheaf.MustSchema(
	sheaf.Sect("log", Log),
	sheaf.Sect("config", sheaf.ConfigFileSection()),
	sheaf.Sect("complete", Complete),
	sheaf.Sect("show", Show),
)

// Typed accessors, checked against Schema in tests.
var (
	LogLevel   = sheaf.Key[string]{Section: "log", Option: "level"}
	LogVerbose = sheaf.Key[int]{Section: "log", Option: "verbose"}
	LogFormat  = sheaf.Key[string]{Section: "log", Option: "format"}
	LogFile    = sheaf.Key[*string]{Section: "log", Option: "file"}
	LogColor   = sheaf.Key[bool]{Section: "log", Option: "color"}

	CompleteDir        = sheaf.Key[*string]{Section: "complete", Option: "dir"}
	CompleteGrouping   = sheaf.Key[bool]{Section: "complete", Option: "zsh_grouping"}
	CompleteSourceable = sheaf.Key[bool]{Section: "complete", Option: "sourceable"}
	CompleteAliases    = sheaf.Key[[]string]{Section: "complete", Option: "aliases"}
	CompletePrint      = sheaf.Key[string]{Section: "complete", Option: "print"}
	ShowFormat         = sheaf.Key[string]{Section: "show", Option: "format"}
	ShowSections       = sheaf.Key[[]string]{Section: "show", Option: "sections"}
	ShowPick           = sheaf.Key[bool]{Section: "show", Option: "pick"}
	ShowDefaults       = sheaf.Key[bool]{Section: "show", Option: "defaults"}
	ShowReveal         = sheaf.Key[bool]{Section: "show", Option: "reveal"}
	ShowOutput         = sheaf.Key[*string]{Section: "show", Option: "output"}
)

// Keys lists every typed accessor.
func Keys() []sheaf.CheckableKey {
	return []sheaf.CheckableKey{
		LogLevel, LogVerbose, LogFormat, LogFile, LogColor,
		CompleteDir, CompleteGrouping, CompleteSourceable, CompleteAliases, CompletePrint,
		ShowFormat, ShowSections, ShowPick, ShowDefaults, ShowReveal, ShowOutput,
	}
}

// Layout is the command line of the sheaf tool. Each sub-command implicitly
// uses the section of the same name, if there is one.
var Layout = cli.Layout{
	Common: cli.Command{
		Help:     "Inspect and manage sheaf configuration files.",
		Sections: []string{"log"},
	},
	Bare: &cli.Command{Help: "print help"},
	Commands: []cli.Command{
		{Name: "config", Help: "create, update or edit config files"},
		{Name: "complete", Help: "generate shell completion scripts"},
		{Name: "show", Help: "print the configuration"},
		{Name: "version", Help: "print version information"},
	},
}

// Loaded is a configuration together with what each source supplied.
type Loaded struct {
	Config  *sheaf.Config
	Files   []string
	Reports []*sheaf.LoadReport
	// Env lists "section.option" keys set from the environment.
	Env []string
	// Skipped lists the sources LoadLenient could not apply.
	Skipped []Skipped
}

// Skipped is a source left out by LoadLenient.
type Skipped struct {
	// Source is a file path or "environment".
	Source string
	Err    error
}

// Load builds the configuration from defaults, then the config files of
// paths.ConfigFiles(dir) from most global to most local, then SHEAF_*
// environment variables.
func Load(dir string) (*Loaded, error) {
	return load(dir, false)
}

// LoadLenient is Load for repairing a broken configuration: a file or the
// environment overlay that cannot be applied is recorded in Skipped and left
// out instead of failing the load.
func LoadLenient(dir string) (*Loaded, error) {
	return load(dir, true)
}

func load(dir string, lenient bool) (*Loaded, error) {
	cfg, err := Schema.Default()
	if err != nil {
		return nil, err
	}
	l := &Loaded{Config: cfg, Files: paths.ConfigFiles(dir)}
	for _, f := range l.Files {
		if lenient {
			// A file failing halfway would leave part of it applied, so it
			// is tried on a scratch copy first.
			if err := tryFile(f); err != nil {
				l.Skipped = append(l.Skipped, Skipped{Source: f, Err: err})
				continue
			}
		}
		report, err := cfg.UpdateFromFile(f)
		if err != nil {
			return nil, err
		}
		l.Reports = append(l.Reports, report)
	}
	if l.Env, err = cfg.UpdateFromEnv(EnvPrefix); err != nil {
		if !lenient {
			return nil, err
		}
		l.Skipped = append(l.Skipped, Skipped{Source: "environment", Err: err})
	}
	return l, nil
}

func tryFile(path string) error {
	scratch, err := Schema.Default()
	if err != nil {
		return err
	}
	_, err = scratch.UpdateFromFile(path)
	return err
}

// LogSources reports where the configuration came from.
func (l *Loaded) LogSources(logger *slog.Logger) {
	for _, r := range l.Reports {
		if !r.Found {
			logger.Debug("config file not found", "path", r.Path)
			continue
		}
		logger.Info("loaded config file", "path", r.Path, "empty", r.Empty, "complete", r.Complete())
		for _, sec := range r.MissingSections {
			logger.Debug("section not in file", "path", r.Path, "section", sec)
		}
	}
	for _, key := range l.Env {
		logger.Info("environment override", "option", key)
	}
	for _, sk := range l.Skipped {
		logger.Warn("ignoring broken config source", "source", sk.Source, "error", sk.Err)
	}
}
