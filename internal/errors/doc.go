// Package errors provides error handling conventions for the fpnm CLI.
//
// It re-exports the [github.com/cockroachdb/errors] helpers used across the
// module (Wrap, Newf, Mark, WithHint) and defines the sentinel taxonomy of
// the environment-capability subsystem:
//
//   - [ErrIOFailure]: path, registry, or file operations failed
//   - [ErrSubprocessFailure]: a probe utility could not be spawned
//   - [ErrNotSupported]: the platform lacks the integration mechanism
//   - [ErrInvalidPath]: the executable path is not representable as text
//
// Errors are marked with their sentinel, so callers test with [Is]:
//
//	if errors.Is(err, errors.ErrNotSupported) {
//	    // show the hint instead of failing loudly
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (unsupported platform, bad config)
//   - ExitSystem (2): System-related error (I/O, registry, permissions)
//
// [Classify] maps any error onto an [ExitError], using its first hint as the
// suggestion printed by the CLI.
package errors
