package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fp-node-manager/fpnm/internal/backup"
	"github.com/fp-node-manager/fpnm/internal/config"
	"github.com/fp-node-manager/fpnm/internal/editor"
	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/validator"
	"github.com/fp-node-manager/fpnm/pkg/fileutil"
)

var (
	configOutput       string
	configValidateJSON bool
)

func init() {
	addOutputFlag(configListCmd, &configOutput)
	configValidateCmd.Flags().BoolVar(&configValidateJSON, "json", false,
		"output issues as JSON")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage fpnm configuration",
	Long: `Manage fpnm configuration stored in config.yaml inside the fpnm config
directory (override with FPNM_CONFIG_DIR or --config).

Environment variables prefixed with FPNM_ override file values, e.g.
FPNM_LOCALE=zh-CN. Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  fpnm config

  # Get a specific value
  fpnm config get locale

  # Set a value
  fpnm config set locale zh-CN

See Also: fpnm doctor`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  `Get a single configuration value by key. Unset values print "not set".`,
	Example: `  # Get the default terminal
  fpnm config get default_terminal

See Also: fpnm config set, fpnm config list`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeConfigKeys,
	RunE:              runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. The whole file is validated before it is
written; an invalid value leaves the file untouched.`,
	Example: `  # Use the Chinese menu label
  fpnm config set locale zh-CN

  # Allow slow probes
  fpnm config set probe_timeout 10s

See Also: fpnm config get, fpnm config list`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeConfigKeys,
	RunE:              runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all effective configuration values, defaults included.`,
	Example: `  # List all configuration
  fpnm config list

  # As TOML
  fpnm config list -o toml

See Also: fpnm config get, fpnm config set`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.FilePath())
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for problems",
	Long: `Report every problem with the configuration, including advice that does
not prevent fpnm from running, such as a default terminal that does not exist
on this platform.

Exits with status 1 when errors are found.`,
	Example: `  # Check the config in use
  fpnm config validate

  # For editors and CI
  fpnm config validate --json

See Also: fpnm doctor, fpnm config list`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your editor.

Uses $EDITOR, then $VISUAL, then the editor config value, then nano or vi. The file is created with
defaults when it does not exist yet.`,
	Example: `  # Open config in default editor
  fpnm config edit

  # Open with specific editor
  EDITOR=nano fpnm config edit

See Also: fpnm config list`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func completeConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.Keys(), cobra.ShellCompDirectiveNoFileComp
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !config.ValidKey(key) {
		return errors.NewUserError(errors.Newf("unknown config key %q", key), "Run: fpnm config list")
	}

	w := cmd.OutOrStdout()
	if !viper.IsSet(key) || viper.GetString(key) == "" {
		fmt.Fprintln(w, "not set")
		return nil
	}
	fmt.Fprintln(w, viper.GetString(key))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	path := config.FilePath()
	if err := backup.EnsureBackedUp(backupScopeConfig, path); err != nil {
		return err
	}
	if err := config.Set(path, key, value); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if err := validateOutput(configOutput); err != nil {
		return err
	}

	values := make(map[string]any, len(config.Keys()))
	for _, key := range config.Keys() {
		v := viper.Get(key)
		if v == nil {
			v = ""
		}
		values[key] = v
	}

	format := configOutput
	if format == outputText {
		format = outputYAML
	}
	return encode(cmd.OutOrStdout(), format, "config", values)
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	c, err := config.Read(configFile)
	if err != nil {
		return err
	}

	result := config.Lint(c, newResolver().Info().Family())
	format := validator.FormatText
	if configValidateJSON {
		format = validator.FormatJSON
	}
	if err := validator.NewReporter(cmd.OutOrStdout(), format).Report(result); err != nil {
		return err
	}

	if result.HasErrors() {
		return silentError{errors.NewExitError(errors.Mark(errors.New("configuration has errors"), errors.ErrInvalidConfig), errors.ExitUser)}
	}
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := config.FilePath()

	if !fileutil.Exists(path) {
		if err := config.Set(path, config.KeyVersion, fmt.Sprint(config.Default().Version)); err != nil {
			return errors.Wrap(err, "creating config file")
		}
	}

	if err := backup.EnsureBackedUp(backupScopeConfig, path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Location: %s\n", path)
	return editor.Open(cmd.Context(), editor.Detect(currentConfig().Editor), path)
}
