package config

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/sheaf/internal/logging"
	"github.com/thoreinstein/sheaf/internal/translate"
	"github.com/thoreinstein/sheaf/pkg/sheaf"
)

// Validation errors for configuration fields.
var (
	// ErrInvalidLevel indicates an unknown log level name.
	ErrInvalidLevel = errors.New("invalid log level")

	// ErrInvalidFormat indicates an unknown log or output format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidShell indicates an unknown shell for complete --print.
	ErrInvalidShell = errors.New("invalid shell")
)

// Validate checks the values of a loaded configuration that the option types
// alone cannot constrain. Returns nil if valid.
func Validate(cfg *sheaf.Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error
	field := func(key interface{ String() string }, value string, err error) {
		errs = append(errs, &FieldError{Field: key.String(), Value: value, Err: err})
	}

	if lvl := LogLevel.Get(cfg); lvl != "" {
		if _, err := logging.ParseLevel(lvl); err != nil {
			field(LogLevel, lvl, ErrInvalidLevel)
		}
	}

	switch f := LogFormat.Get(cfg); logging.Format(f) {
	case logging.FormatText, logging.FormatJSON:
	default:
		field(LogFormat, f, ErrInvalidFormat)
	}

	if f := ShowFormat.Get(cfg); f != "" {
		if _, err := translate.ParseFormat(f); err != nil {
			field(ShowFormat, f, ErrInvalidFormat)
		}
	}

	switch s := CompletePrint.Get(cfg); s {
	case "", "zsh", "bash":
	default:
		field(CompletePrint, s, ErrInvalidShell)
	}

	for _, key := range []sheaf.Key[*string]{LogFile, CompleteDir, ShowOutput} {
		if p := key.Get(cfg); p != nil {
			if err := validatePath(*p); err != nil {
				field(key, *p, err)
			}
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}
	return nil
}

// FieldError reports an invalid value for one option.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
