package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var platformOutput string

func init() {
	addOutputFlag(platformCmd, &platformOutput)
	rootCmd.AddCommand(platformCmd)
}

var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Show the detected platform",
	Long: `Show the operating system family, architecture, and the path of the
running fpnm executable.

The executable path is what the context menu entry launches.`,
	Example: `  # Human-readable summary
  fpnm platform

  # For scripts
  fpnm platform -o json

See Also: fpnm doctor`,
	Args: cobra.NoArgs,
	RunE: runPlatform,
}

// platformReport is the serialized form of the platform command.
type platformReport struct {
	Family     string `json:"family" yaml:"family" toml:"family"`
	OS         string `json:"os" yaml:"os" toml:"os"`
	Arch       string `json:"arch" yaml:"arch" toml:"arch"`
	Executable string `json:"executable" yaml:"executable" toml:"executable"`
}

func runPlatform(cmd *cobra.Command, _ []string) error {
	if err := validateOutput(platformOutput); err != nil {
		return err
	}

	resolver := newResolver()
	info := resolver.Info()
	exe, err := resolver.Executable()
	if err != nil {
		return err
	}

	report := platformReport{
		Family:     string(info.Family()),
		OS:         info.OS,
		Arch:       info.Arch,
		Executable: exe,
	}

	w := cmd.OutOrStdout()
	if platformOutput != outputText {
		return encode(w, platformOutput, "platform", report)
	}

	p := newPalette(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", p.bold.Sprint("Family:"), report.Family)
	fmt.Fprintf(tw, "%s\t%s/%s\n", p.bold.Sprint("Target:"), report.OS, report.Arch)
	fmt.Fprintf(tw, "%s\t%s\n", p.bold.Sprint("Executable:"), report.Executable)
	return tw.Flush()
}
