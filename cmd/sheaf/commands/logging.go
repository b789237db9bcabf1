package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/thoreinstein/sheaf/internal/config"
	"github.com/thoreinstein/sheaf/internal/errors"
	"github.com/thoreinstein/sheaf/internal/logging"
	"github.com/thoreinstein/sheaf/pkg/sheaf"
)

// setupLogging builds the logger described by the log section. The level is
// the more verbose of log.level and the -v count. The returned func closes
// the log file, if any.
func setupLogging(cfg *sheaf.Config, w io.Writer) (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(config.LogLevel.Get(cfg))
	if err != nil {
		return nil, nil, errors.NewConfigError(err)
	}
	if v := config.LogVerbose.Get(cfg); v > 0 {
		level = min(level, logging.LevelFromVerbosity(v))
	}
	primary := logging.NewFormatHandler(logging.Config{
		Level:  level,
		Format: logging.Format(config.LogFormat.Get(cfg)),
		Output: w,
		Color:  logging.ColorModeFor(config.LogColor.Get(cfg)),
	})

	closeFn := func() {}
	var file slog.Handler
	if path := config.LogFile.Get(cfg); path != nil {
		f, err := os.OpenFile(*path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, errors.NewUserError(err, "failed to open log file")
		}
		closeFn = func() { _ = f.Close() }
		file = logging.NewFormatHandler(logging.Config{Level: level, Format: logging.FormatJSON, Output: f})
	}

	logger := slog.New(logging.Tee(primary, file))
	slog.SetDefault(logger)
	return logger, closeFn, nil
}
