package commands

import (
	"context"

	"github.com/thoreinstein/sheaf/internal/config"
	"github.com/thoreinstein/sheaf/internal/errors"
	"github.com/thoreinstein/sheaf/internal/logging"
	"github.com/thoreinstein/sheaf/pkg/sheaf"
)

// runConfig creates, updates or edits the config files. The update flag
// writes the current values, including those given on this command line.
func (a *App) runConfig(ctx context.Context, loaded *config.Loaded) error {
	logger := logging.FromContext(ctx)
	err := sheaf.HandleConfigCommand(loaded.Config, "config", loaded.Files, a.Open)
	switch {
	case errors.Is(err, sheaf.ErrFileAlreadyExists):
		return errors.NewUserError(err, "")
	case err != nil:
		return errors.NewSystemError(err, "Check the editor option or $EDITOR")
	}
	logger.Debug("config command done", "files", loaded.Files)
	return nil
}
