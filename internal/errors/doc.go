// Package errors provides error handling conventions for the sheaf CLI.
//
// It re-exports the constructors of github.com/cockroachdb/errors, defines
// sentinel errors for the tool's own failure conditions, an ExitError type
// for CLI exit code handling, and exit code constants following standard
// Unix conventions.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid arguments, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion:
//
//	err := errors.NewUserError(cause, "Run: sheaf --help")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    if exitErr.Suggestion != "" {
//	        fmt.Println("Suggestion:", exitErr.Suggestion)
//	    }
//	    os.Exit(exitErr.Code)
//	}
package errors
