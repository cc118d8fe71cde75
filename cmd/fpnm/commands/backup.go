package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fp-node-manager/fpnm/internal/backup"
	"github.com/fp-node-manager/fpnm/internal/errors"
)

// backupScopeConfig groups backups of the config file.
const backupScopeConfig = "config"

var backupOutput string

func init() {
	addOutputFlag(backupListCmd, &backupOutput)

	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "List and restore config backups",
	Long: `fpnm snapshots config.yaml before "config set" or "config edit" changes
it. The newest five snapshots are kept.`,
	Example: `  # What can be restored?
  fpnm backup list

  # Undo the last config change
  fpnm backup restore

See Also: fpnm config`,
	Args: cobra.NoArgs,
	RunE: runBackupList,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List config backups, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBackupList,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Restore a config backup",
	Long: `Restore the config file from a backup. Without an id the newest backup is
restored. The backup's checksum is verified before anything is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackupRestore,
}

func runBackupList(cmd *cobra.Command, _ []string) error {
	if err := validateOutput(backupOutput); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	manifests, err := backup.NewManager().List(backupScopeConfig)
	if errors.Is(err, backup.ErrNoBackupsFound) {
		manifests, err = nil, nil
	}
	if err != nil {
		return err
	}

	if backupOutput != outputText {
		if manifests == nil {
			manifests = []backup.Manifest{}
		}
		return encode(w, backupOutput, "backups", manifests)
	}

	p := newPalette(w)
	if len(manifests) == 0 {
		fmt.Fprintln(w, p.dim.Sprint("No backups yet."))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", p.bold.Sprint("ID"), p.bold.Sprint("CREATED"), p.bold.Sprint("FILES"))
	for _, m := range manifests {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", p.info.Sprint(m.ID), m.CreatedAt.Local().Format(time.DateTime), len(m.Files))
	}
	return tw.Flush()
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	id := ""
	if len(args) == 1 {
		id = args[0]
	}

	manifest, err := backup.NewManager().Restore(backupScopeConfig, id)
	if err != nil {
		if errors.Is(err, backup.ErrNoBackupsFound) {
			return errors.NewUserError(err, "Run: fpnm backup list")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Restored backup %s\n", manifest.ID)
	return nil
}
