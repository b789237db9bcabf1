package sheaf

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error kinds returned by the package. Use [errors.Is] to test for them;
// concrete errors carry the offending names in their message and, for
// sections and options, in [SectionError] and [OptionError].
var (
	// ErrUnknownSection indicates a referenced section is not declared.
	ErrUnknownSection = errors.New("unknown section")

	// ErrUnknownOption indicates a referenced option is not declared in its section.
	ErrUnknownOption = errors.New("unknown option")

	// ErrTypeMismatch indicates a value could not be cast to an option's type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidIdentifier indicates a section, option or sub-command name is
	// not a valid identifier.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrSchema indicates a malformed schema declaration.
	ErrSchema = errors.New("schema error")

	// ErrParserNotReady indicates the command line parser was used before being built.
	ErrParserNotReady = errors.New("parser not built")

	// ErrFileAlreadyExists indicates a disallowed overwrite of a config file.
	ErrFileAlreadyExists = errors.New("file already exists")

	// ErrMalformedFile indicates the config file could not be decoded.
	ErrMalformedFile = errors.New("malformed config file")
)

// SectionError reports an unknown section name.
type SectionError struct {
	Section string
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("unknown section %q", e.Section)
}

// Is makes SectionError match ErrUnknownSection.
func (e *SectionError) Is(target error) bool {
	return target == ErrUnknownSection
}

// OptionError reports an unknown option name within a section.
type OptionError struct {
	Section string
	Option  string
}

func (e *OptionError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("unknown option %q", e.Option)
	}
	return fmt.Sprintf("unknown option %q in section %q", e.Option, e.Section)
}

// Is makes OptionError match ErrUnknownOption.
func (e *OptionError) Is(target error) bool {
	return target == ErrUnknownOption
}

// kindError gives a cause one of the error kinds above. Is matches the kind
// and Unwrap returns the cause, so both stay visible to errors.Is.
type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string {
	return e.msg + ": " + e.cause.Error()
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

func (e *kindError) Unwrap() error {
	return e.cause
}

func withKind(kind, cause error, format string, args ...any) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...), cause: cause}
}

func typeMismatch(raw any, target fmt.Stringer, cause error) error {
	msg := fmt.Sprintf("cannot cast %T to %s", raw, target)
	if cause != nil {
		return withKind(ErrTypeMismatch, cause, "%s", msg)
	}
	return errors.Wrap(ErrTypeMismatch, msg)
}

func schemaErrorf(format string, args ...any) error {
	return errors.Wrapf(ErrSchema, format, args...)
}

func invalidIdentifier(kind, name string) error {
	return errors.Wrapf(ErrInvalidIdentifier, "%s name %q", kind, name)
}
