package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fp-node-manager/fpnm/internal/editor"
	"github.com/fp-node-manager/fpnm/internal/logging"
	"github.com/fp-node-manager/fpnm/internal/project"
)

var (
	projectList   bool
	projectEdit   bool
	projectOutput string
)

func init() {
	projectCmd.Flags().BoolVarP(&projectList, "list", "l", false,
		"list the directory entries instead of scanning package.json")
	projectCmd.Flags().BoolVarP(&projectEdit, "edit", "e", false,
		"open the directory in the configured editor")
	addOutputFlag(projectCmd, &projectOutput)
	rootCmd.AddCommand(projectCmd)
}

var projectCmd = &cobra.Command{
	Use:   "project [dir]",
	Short: "Show a Node.js project's scripts and package manager",
	Long: `Read package.json in dir (default: the current directory) and show the
project name, its npm scripts in name order, and the package manager inferred
from the lockfile (pnpm-lock.yaml, yarn.lock, package-lock.json).

This is what the folder context menu entry opens.`,
	Example: `  # Current directory
  fpnm project

  # A specific project as JSON
  fpnm project ~/src/web -o json

  # Open it in the editor config value (default: code)
  fpnm project ~/src/web --edit

  # Browse a directory
  fpnm project ~/src --list

See Also: fpnm context-menu`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProject,
}

func runProject(cmd *cobra.Command, args []string) error {
	if err := validateOutput(projectOutput); err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	logging.FromContext(cmd.Context()).Debug("opening project", "dir", dir, "list", projectList)

	if projectEdit {
		ed := currentConfig().Editor
		if ed == "" {
			ed = editor.Detect("")
		}
		return editor.Open(cmd.Context(), ed, dir)
	}

	w := cmd.OutOrStdout()
	if projectList {
		entries, err := project.ListDir(dir)
		if err != nil {
			return err
		}
		if projectOutput != outputText {
			return encode(w, projectOutput, "entries", entries)
		}
		return writeEntries(w, entries)
	}

	info, err := project.Scan(dir)
	if err != nil {
		return err
	}
	if projectOutput != outputText {
		return encode(w, projectOutput, "project", info)
	}
	return writeProject(w, info)
}

func writeProject(w io.Writer, info *project.Info) error {
	p := newPalette(w)
	manager := info.PackageManager
	if manager == "" {
		manager = p.dim.Sprint("unknown")
	}

	fmt.Fprintf(w, "%s %s\n", p.bold.Sprint(info.Name), p.dim.Sprint(info.Path))
	fmt.Fprintf(w, "Package manager: %s\n", manager)
	if len(info.Scripts) == 0 {
		fmt.Fprintln(w, p.dim.Sprint("(no scripts)"))
		return nil
	}
	fmt.Fprintln(w, "Scripts:")
	for _, s := range info.Scripts {
		fmt.Fprintf(w, "  %s\n", p.info.Sprint(s))
	}
	return nil
}

func writeEntries(w io.Writer, entries []project.Entry) error {
	p := newPalette(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		if e.IsDirectory {
			fmt.Fprintf(tw, "%s\t%s\n", p.info.Sprint(e.Name+"/"), "dir")
		} else {
			fmt.Fprintf(tw, "%s\t%s\n", e.Name, "file")
		}
	}
	return tw.Flush()
}
