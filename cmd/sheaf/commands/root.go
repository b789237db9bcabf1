// Package commands implements the sheaf command line on top of the sheaf
// library: config.Layout drives parsing and each sub-command reads its
// options back from the configuration.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/thoreinstein/sheaf/internal/config"
	"github.com/thoreinstein/sheaf/internal/errors"
	"github.com/thoreinstein/sheaf/internal/logging"
	"github.com/thoreinstein/sheaf/pkg/sheaf"
	"github.com/thoreinstein/sheaf/pkg/sheaf/cli"
)

// name is the program name shown in help and completion scripts.
const name = "sheaf"

// App runs one invocation of the tool.
type App struct {
	// Out receives command output and help.
	Out io.Writer
	// Err receives logs and error messages.
	Err io.Writer
	// Dir is the directory holding the local config file.
	Dir string
	// Open launches the editor of `sheaf config --edit`.
	Open sheaf.OpenFunc
	// Pick selects sections for `sheaf show --pick`.
	Pick func(sections []string) ([]string, error)
}

// Execute runs the tool with the process arguments and prints any error.
func Execute() error {
	dir, err := os.Getwd()
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	app := &App{Out: os.Stdout, Err: os.Stderr, Dir: dir}
	err = app.Run(context.Background(), os.Args[1:])
	app.report(err)
	return err
}

// Run parses args and dispatches to the sub-command. Requesting help is not
// an error.
//
// A broken configuration fails every command but config, which runs with the
// broken sources left out and reports them as warnings so that
// `sheaf config --edit` can repair them.
func (a *App) Run(ctx context.Context, args []string) error {
	loaded, loadErr := config.Load(a.Dir)
	if loadErr != nil {
		var err error
		if loaded, err = config.LoadLenient(a.Dir); err != nil {
			return errors.NewConfigError(loadErr)
		}
	}

	// Until the command line is parsed, only warnings are shown.
	early := logging.New(logging.Config{
		Level:  slog.LevelWarn,
		Output: a.Err,
		Color:  logging.ColorModeFor(config.LogColor.Get(loaded.Config)),
	})
	m, err := cli.NewManager(loaded.Config, config.Layout,
		cli.WithLogger(early), cli.WithOutput(a.Out), cli.WithName(name))
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	if err := m.Build(); err != nil {
		return errors.NewSystemError(err, "")
	}

	res, err := m.Parse(args)
	switch {
	case errors.Is(err, cli.ErrHelp):
		return nil
	case err != nil:
		return errors.NewUserError(err, "Run 'sheaf --help' for usage")
	}

	repair := res.Command == "config"
	if loadErr != nil && !repair {
		return errors.NewConfigError(loadErr)
	}

	logger, closeLog, err := setupLogging(loaded.Config, a.Err)
	if err != nil {
		if !repair {
			return err
		}
		logger, closeLog = early, func() {}
		logger.Warn("ignoring logging options", "error", err)
	}
	defer closeLog()
	ctx = logging.NewContext(ctx, logger)

	loaded.LogSources(logger)
	logger.Debug("parsed command line", "command", res.Command, "given", res.Given)

	errs := config.Validate(loaded.Config)
	if repair {
		for _, e := range errs {
			logger.Warn("invalid config value", "error", e)
		}
		errs = nil
	}
	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return errors.NewConfigError(errors.Newf("%s", strings.Join(msgs, "; ")))
	}

	switch res.Command {
	case "":
		return errors.Wrap(m.Command().Help(), "printing help")
	case "config":
		return a.runConfig(ctx, loaded)
	case "complete":
		return a.runComplete(ctx, m)
	case "show":
		return a.runShow(ctx, loaded.Config)
	case "version":
		return a.runVersion()
	}
	return errors.Newf("command %q has no handler", res.Command)
}

// report prints err and its suggestion, if any.
func (a *App) report(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(a.Err, "Error: %v\n", err)
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintln(a.Err, exitErr.Suggestion)
	}
}
