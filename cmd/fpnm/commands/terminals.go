package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fp-node-manager/fpnm/internal/backup"
	"github.com/fp-node-manager/fpnm/internal/cli/prompt"
	"github.com/fp-node-manager/fpnm/internal/config"
	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/terminal"
)

var (
	terminalsAvailable bool
	terminalsOutput    string
)

func init() {
	terminalsCmd.Flags().BoolVarP(&terminalsAvailable, "available", "a", false,
		"only show installed terminals")
	addOutputFlag(terminalsCmd, &terminalsOutput)

	terminalsCmd.AddCommand(terminalsSelectCmd)
	rootCmd.AddCommand(terminalsCmd)
}

var terminalsCmd = &cobra.Command{
	Use:     "terminals",
	Aliases: []string{"terminal", "term"},
	Short:   "List known terminals and whether they are installed",
	Long: `List the terminal emulators and shells known for this operating system,
probing each one for availability.

Results are never cached: every invocation re-probes the system, so newly
installed terminals show up immediately. The order is fixed per platform.`,
	Example: `  # Everything known for this OS
  fpnm terminals

  # Installed only, as YAML
  fpnm terminals --available -o yaml

See Also: fpnm terminals select, fpnm doctor`,
	Args: cobra.NoArgs,
	RunE: runTerminals,
}

var terminalsSelectCmd = &cobra.Command{
	Use:   "select [id]",
	Short: "Choose the default terminal",
	Long: `Store the default terminal in the config file.

Without an argument, an interactive picker lists the installed terminals.
When stdin is not a terminal a numbered prompt is used instead.`,
	Example: `  # Pick interactively
  fpnm terminals select

  # Set directly
  fpnm terminals select kitty

See Also: fpnm terminals, fpnm config get default_terminal`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTerminalsSelect,
}

func runTerminals(cmd *cobra.Command, _ []string) error {
	if err := validateOutput(terminalsOutput); err != nil {
		return err
	}

	candidates := newProber(cmd.Context()).Detect(cmd.Context())
	if terminalsAvailable {
		candidates = terminal.Available(candidates)
	}

	w := cmd.OutOrStdout()
	if terminalsOutput != outputText {
		return encode(w, terminalsOutput, "terminals", candidates)
	}
	return writeTerminals(w, candidates, currentConfig().DefaultTerminal)
}

func writeTerminals(w io.Writer, candidates []terminal.Candidate, defaultID string) error {
	p := newPalette(w)
	if len(candidates) == 0 {
		fmt.Fprintln(w, p.dim.Sprint("No terminals found."))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", p.bold.Sprint("ID"), p.bold.Sprint("NAME"), p.bold.Sprint("AVAILABLE"))
	for _, c := range candidates {
		id := c.ID
		if c.ID == defaultID {
			id += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.info.Sprint(id), truncate(c.Name, 40), p.yesNo(c.Available))
	}
	return tw.Flush()
}

func runTerminalsSelect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	family := newResolver().Info().Family()

	var id string
	if len(args) == 1 {
		id = args[0]
		if _, ok := terminal.Lookup(family, id); !ok {
			return errors.NewUserError(errors.Newf("unknown terminal %q for %s", id, family),
				"Run: fpnm terminals")
		}
	} else {
		available := terminal.Available(newProber(ctx).Detect(ctx))
		if len(available) == 0 {
			return errors.NewUserError(errors.New("no installed terminals found"),
				"install a terminal, then run: fpnm terminals")
		}
		idx, err := pickTerminal(available)
		if err != nil {
			if errors.Is(err, fuzzyfinder.ErrAbort) || errors.Is(err, prompt.ErrSelectionCancelled) {
				return nil
			}
			return errors.Wrap(err, "selecting terminal")
		}
		id = available[idx].ID
	}

	path := config.FilePath()
	if err := backup.EnsureBackedUp(backupScopeConfig, path); err != nil {
		return err
	}
	if err := config.Set(path, config.KeyDefaultTerminal, id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Default terminal set to %s\n", id)
	return nil
}

// pickTerminal is replaced in tests.
var pickTerminal = func(candidates []terminal.Candidate) (int, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		labels := make([]string, len(candidates))
		for i, c := range candidates {
			labels[i] = fmt.Sprintf("%s (%s)", c.Name, c.ID)
		}
		return prompt.NewSelector().Select("Select default terminal", labels)
	}

	return fuzzyfinder.Find(
		candidates,
		func(i int) string { return candidates[i].Name },
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return fmt.Sprintf("ID: %s\nName: %s", candidates[i].ID, candidates[i].Name)
		}),
	)
}
