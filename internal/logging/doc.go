// Package logging provides structured logging for the sheaf CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. All loggers are based on the standard
// library's [log/slog] package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("starting", "version", "1.0.0")
//
// # Verbosity
//
// [LevelFromVerbosity] maps the number of -v flags to a level and
// [ParseLevel] reads level names from configuration, including "trace".
//
// # Colors and secrets
//
// The text format is colored according to a [ColorMode]. Both formats mask
// attributes whose key or value looks like a credential. [Tee] writes each
// record to several handlers, such as the terminal and a JSON log file.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Quiet Mode
//
// Use [NewDiscard] when log output should be suppressed entirely:
//
//	logger := logging.NewDiscard()
package logging
