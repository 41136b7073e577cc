package metakit

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	res, err := merge.Merge(inputs, merge.DefaultOptions(), logger)
//	if errors.Is(err, metakit.ErrMixedDialects) {
//	    // Ask the user to pick files of one kind
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoInputs indicates a merge was requested without any input document.
	ErrNoInputs = errors.New("no files selected for merge")

	// ErrNoDialect indicates an input document is not a supported meta dialect.
	ErrNoDialect = errors.New("no supported meta dialect detected")

	// ErrMixedDialects indicates merge inputs belong to different dialects.
	ErrMixedDialects = errors.New("mixed meta dialects are not supported")

	// ErrUnknownDialect indicates a dialect name that metakit does not know.
	ErrUnknownDialect = errors.New("unknown dialect")

	// ErrMalformedDocument indicates a document could not be read as XML at all.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrValidationFailed indicates structural validation reported errors.
	ErrValidationFailed = errors.New("validation failed")
)

// DocumentError describes a problem with a specific input document.
type DocumentError struct {
	Path    string
	Line    int
	Message string
	Hint    string
	Err     error
}

func (e *DocumentError) Error() string {
	msg := e.Message
	if e.Path != "" {
		if e.Line > 0 {
			msg = fmt.Sprintf("%s:%d: %s", e.Path, e.Line, msg)
		} else {
			msg = fmt.Sprintf("%s: %s", e.Path, msg)
		}
	}
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrValidationFailed):
		return ExitValidationFailed
	case errors.Is(err, ErrNoInputs), errors.Is(err, ErrNoDialect), errors.Is(err, ErrMixedDialects):
		return ExitMergeRefused
	case errors.Is(err, ErrUnknownDialect), errors.Is(err, ErrMalformedDocument):
		return ExitUnsupportedInput
	}

	// cobra reports argument and flag misuse as plain errors
	errStr := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
}
