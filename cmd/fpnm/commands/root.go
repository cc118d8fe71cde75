// Package commands implements the CLI commands for fpnm.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fp-node-manager/fpnm/cmd"
	"github.com/fp-node-manager/fpnm/internal/config"
	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// cfg is the loaded configuration; configLoadErr holds any load failure.
var (
	cfg           *config.Config
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: search . and the fpnm config directory)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("fpnm version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(configFile)
}

// currentConfig returns the loaded config, or defaults when loading failed.
func currentConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "fpnm",
	Short: "Environment capabilities for Project & Node Manager",
	Long: `fpnm inspects and integrates the desktop environment for
Project & Node Manager.

It reports the running platform, detects installed terminal emulators and
shells, and registers an "Open in Project & Node Manager" entry in the file
manager's folder context menu (Windows registry or a Linux desktop entry).`,
	Example: `  # Show which terminals are installed
  fpnm terminals --available

  # Add the folder context menu entry in Chinese
  fpnm context-menu enable --locale zh-CN

  # Check the environment
  fpnm doctor

  See Also: fpnm doctor, fpnm config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// The context menu entry launches "fpnm <folder>".
		if len(args) == 1 {
			return runProject(cmd, args)
		}
		return cmd.Help()
	},
}

// checkConfig fails commands that depend on a valid config. doctor and
// config stay usable so a broken file can be diagnosed and repaired.
func checkConfig(cmd *cobra.Command) error {
	if configLoadErr == nil {
		return nil
	}
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "doctor", "config":
			return nil
		}
	}
	return errors.NewConfigError(configLoadErr)
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("--quiet and --verbose are mutually exclusive"),
			"use either -q or -v")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("FPNM_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case logging.FormatText:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	default:
		return errors.NewUserError(errors.Newf("unknown log format %q", logFormat), "use --log-format text or json")
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.IOf(err, "opening log file"), "check the --log-file path")
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// silentError marks errors whose output has already been written, such as
// doctor's exit status.
type silentError struct {
	*errors.ExitError
}

func (e silentError) Unwrap() error { return e.ExitError }

// IsSilent reports whether main should skip printing err.
func IsSilent(err error) bool {
	var s silentError
	return errors.As(err, &s)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
