package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fp-node-manager/fpnm/cmd"
	"github.com/fp-node-manager/fpnm/internal/platform"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit, build date, and platform of this fpnm binary.`,
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, _ []string) {
		info := platform.Current()
		fmt.Fprintf(c.OutOrStdout(), "fpnm version %s\n", cmd.Version)
		fmt.Fprintf(c.OutOrStdout(), "  commit: %s\n", cmd.Commit)
		fmt.Fprintf(c.OutOrStdout(), "  built:  %s\n", cmd.Date)
		fmt.Fprintf(c.OutOrStdout(), "  os:     %s/%s\n", info.OS, info.Arch)
	},
}
