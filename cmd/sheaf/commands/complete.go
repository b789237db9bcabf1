package commands

import (
	"context"
	"fmt"

	"github.com/thoreinstein/sheaf/internal/config"
	"github.com/thoreinstein/sheaf/internal/errors"
	"github.com/thoreinstein/sheaf/internal/logging"
	"github.com/thoreinstein/sheaf/internal/paths"
	"github.com/thoreinstein/sheaf/pkg/sheaf/cli"
	"github.com/thoreinstein/sheaf/pkg/sheaf/completion"
)

// runComplete writes the zsh and bash scripts, or prints one of them.
func (a *App) runComplete(ctx context.Context, m *cli.Manager) error {
	logger := logging.FromContext(ctx)
	cfg := m.Config()
	aliases := config.CompleteAliases.Get(cfg)
	z := completion.Zsh{
		ForceGrouping: config.CompleteGrouping.Get(cfg),
		Sourceable:    config.CompleteSourceable.Get(cfg),
	}

	switch shell := config.CompletePrint.Get(cfg); shell {
	case "zsh":
		return errors.Wrap(z.Write(a.Out, m, name, aliases...), "writing zsh completion")
	case "bash":
		return errors.Wrap(completion.Bash{}.Write(a.Out, m, name, aliases...), "writing bash completion")
	case "":
	default:
		return errors.NewUserError(errors.Newf("unknown shell %q", shell), "Use --print zsh or --print bash")
	}

	dir := paths.CompletionDir()
	if d := config.CompleteDir.Get(cfg); d != nil {
		dir = *d
	}
	written, err := completion.WriteAll(dir, z, m, name, aliases...)
	if err != nil {
		return errors.NewSystemError(err, "Check that the output directory is writable")
	}
	for _, p := range written {
		logger.Info("wrote completion script", "path", p)
		fmt.Fprintln(a.Out, p)
	}
	return nil
}
