package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fp-node-manager/fpnm/internal/config"
	"github.com/fp-node-manager/fpnm/internal/logging"
	"github.com/fp-node-manager/fpnm/internal/shellint"
)

var (
	contextMenuLocale string
	contextMenuOutput string
)

func init() {
	for _, c := range []*cobra.Command{contextMenuEnableCmd, contextMenuDisableCmd} {
		c.Flags().StringVar(&contextMenuLocale, "locale", "",
			"menu label language, e.g. en-US or zh-CN (default: config locale)")
	}
	addOutputFlag(contextMenuStatusCmd, &contextMenuOutput)

	contextMenuCmd.AddCommand(contextMenuSupportedCmd)
	contextMenuCmd.AddCommand(contextMenuStatusCmd)
	contextMenuCmd.AddCommand(contextMenuEnableCmd)
	contextMenuCmd.AddCommand(contextMenuDisableCmd)
	rootCmd.AddCommand(contextMenuCmd)
}

var contextMenuCmd = &cobra.Command{
	Use:     "context-menu",
	Aliases: []string{"cm"},
	Short:   "Manage the folder context menu entry",
	Long: `Manage the "Open in Project & Node Manager" entry in the file manager.

On Windows the entry is written to the current user's registry for folders
and folder backgrounds. On Linux a desktop entry is written to
~/.local/share/applications. Other platforms are not supported yet.

Without a subcommand, shows the current status.`,
	Example: `  # Is it installed?
  fpnm context-menu

  # Install with a Chinese label
  fpnm context-menu enable --locale zh-CN

  # Remove it
  fpnm context-menu disable

See Also: fpnm doctor`,
	Args: cobra.NoArgs,
	RunE: runContextMenuStatus,
}

var contextMenuSupportedCmd = &cobra.Command{
	Use:   "supported",
	Short: "Report whether this platform supports the entry",
	Long: `Print true or false. The exit status is 0 either way; an unsupported
platform is not an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), newRegistrar(cmd.Context()).Supported())
		return nil
	},
}

var contextMenuStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the entry is installed",
	Args:  cobra.NoArgs,
	RunE:  runContextMenuStatus,
}

var contextMenuEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Install the context menu entry",
	Long: `Install the context menu entry pointing at the running fpnm executable.

Running it again is safe; the entry is rewritten in place.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return setContextMenu(cmd, true)
	},
}

var contextMenuDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Remove the context menu entry",
	Long:  `Remove the context menu entry. Removing an entry that is absent succeeds.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return setContextMenu(cmd, false)
	},
}

func setContextMenu(cmd *cobra.Command, enable bool) error {
	locale := contextMenuLocale
	if locale == "" {
		locale = currentConfig().Locale
	}
	if enable {
		if err := config.ValidateLocale(locale); err != nil {
			logging.FromContext(cmd.Context()).Debug("unrecognized locale, using English label",
				"locale", locale, "error", err)
		}
	}

	registrar := newRegistrar(cmd.Context())
	if err := registrar.SetInstalled(enable, locale); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	p := newPalette(w)
	if enable {
		fmt.Fprintf(w, "%s Context menu entry installed (%q)\n", p.ok.Sprint("✓"), shellint.Label(locale))
	} else {
		fmt.Fprintf(w, "%s Context menu entry removed\n", p.ok.Sprint("✓"))
	}
	return nil
}

func runContextMenuStatus(cmd *cobra.Command, _ []string) error {
	if err := validateOutput(contextMenuOutput); err != nil {
		return err
	}

	status := newRegistrar(cmd.Context()).Status()

	w := cmd.OutOrStdout()
	if contextMenuOutput != outputText {
		return encode(w, contextMenuOutput, "context_menu", status)
	}

	p := newPalette(w)
	if !status.Supported {
		fmt.Fprintf(w, "%s %s\n", p.warn.Sprint("⚠"), shellint.UnsupportedHint)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", p.bold.Sprint("Platform:"), status.Family)
	fmt.Fprintf(tw, "%s\t%s\n", p.bold.Sprint("Installed:"), p.yesNo(status.Installed))
	if len(status.Locations) > 0 {
		fmt.Fprintf(tw, "%s\t%s\n", p.bold.Sprint("Locations:"), strings.Join(status.Locations, ", "))
	}
	if status.Command != "" {
		fmt.Fprintf(tw, "%s\t%s\n", p.bold.Sprint("Command:"), status.Command)
	}
	return tw.Flush()
}
