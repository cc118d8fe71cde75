// Package logging provides structured logging for the fpnm CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels (including [LevelTrace] for per-probe subprocess output), and
// helpers for testing.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("context menu installed", "path", desktopFile)
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	prober := terminal.NewProber(resolver, terminal.WithLogger(logging.ForTest(t)))
//
// # Library Use
//
// Components default to [NewDiscard] when no logger is injected, so importing
// them never writes to stderr on its own.
package logging
