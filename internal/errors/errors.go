package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, registry, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrIOFailure indicates a filesystem, registry, or path operation failed.
	ErrIOFailure = crdb.New("i/o failure")

	// ErrSubprocessFailure indicates a helper utility could not be spawned.
	// Probes absorb it; it never reaches a CLI exit path.
	ErrSubprocessFailure = crdb.New("subprocess failure")

	// ErrNotSupported indicates the running OS lacks the requested mechanism.
	ErrNotSupported = crdb.New("not supported on this platform")

	// ErrInvalidPath indicates a path could not be represented as text.
	ErrInvalidPath = crdb.New("invalid path")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = crdb.New("resource not found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")
)

// New returns an error with a stack trace.
func New(msg string) error { return crdb.New(msg) }

// Newf returns a formatted error with a stack trace.
func Newf(format string, args ...any) error { return crdb.Newf(format, args...) }

// Wrap annotates err with msg. It returns nil if err is nil.
func Wrap(err error, msg string) error { return crdb.Wrap(err, msg) }

// Wrapf annotates err with a formatted message. It returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error { return crdb.Wrapf(err, format, args...) }

// Is reports whether any error in err's chain matches reference.
func Is(err, reference error) bool { return crdb.Is(err, reference) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return crdb.As(err, target) }

// Mark tags err so that errors.Is(err, sentinel) holds without changing its message.
func Mark(err error, sentinel error) error { return crdb.Mark(err, sentinel) }

// WithHint attaches user-facing guidance to err.
func WithHint(err error, hint string) error { return crdb.WithHint(err, hint) }

// Hints returns every hint attached anywhere in err's chain.
func Hints(err error) []string { return crdb.GetAllHints(err) }

// IOf builds an ErrIOFailure-marked error wrapping cause.
func IOf(cause error, format string, args ...any) error {
	return crdb.Mark(crdb.Wrapf(cause, format, args...), ErrIOFailure)
}

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: fpnm doctor",
	}
}

// Classify converts an arbitrary error into an ExitError, picking the exit
// code from the sentinel it is marked with. Hints become the suggestion.
func Classify(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr
	}

	code := ExitSystem
	if Is(err, ErrNotSupported) || Is(err, ErrInvalidConfig) || Is(err, ErrNotFound) {
		code = ExitUser
	}

	suggestion := ""
	if hints := Hints(err); len(hints) > 0 {
		suggestion = hints[0]
	}
	return &ExitError{Err: err, Code: code, Suggestion: suggestion}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
