package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fp-node-manager/fpnm/internal/config"
	"github.com/fp-node-manager/fpnm/internal/doctor"
	"github.com/fp-node-manager/fpnm/internal/errors"
)

var (
	doctorJSON bool
	doctorFix  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"repair fixable issues (stale context menu entry, file permissions)")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the environment",
	Long: `Run diagnostic checks on the platform, installed terminals, the context
menu entry, and the fpnm configuration.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  -v          Show all checks including passed ones
  -q          No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  # Check everything
  fpnm doctor

  # Repair what can be repaired
  fpnm doctor --fix

See Also: fpnm context-menu, fpnm terminals`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if quiet {
		count++
	}
	if verbosity > 0 {
		count++
	}

	if count > 1 {
		return errors.NewUserError(errors.New("flags --json, --quiet, and --verbose are mutually exclusive"),
			"pick one output mode")
	}

	return nil
}

// doctorOutput is the JSON document written by doctor --json.
type doctorOutput struct {
	*doctor.DoctorReport
	Fixes []doctor.FixResult `json:"fixes,omitempty"`
}

func newDoctorRunner(cmd *cobra.Command) *doctor.Runner {
	c := currentConfig()
	resolver := newResolver()
	cfgPath := config.FilePath()

	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewPlatformCheck(resolver))
	runner.AddCheck(doctor.NewTerminalCheck(newProber(cmd.Context()), c.DefaultTerminal))
	runner.AddCheck(doctor.NewContextMenuCheck(newRegistrar(cmd.Context()), resolver, c.Locale))
	runner.AddCheck(doctor.NewConfigCheck(func() (*config.Config, error) {
		return cfg, configLoadErr
	}, cfgPath))
	runner.AddCheck(doctor.NewPermissionCheck(filepath.Dir(cfgPath), cfgPath))
	return runner
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	runner := newDoctorRunner(cmd)
	report := runner.Run(ctx)

	var fixes []doctor.FixResult
	if doctorFix {
		fixes = runner.Fix()
		if len(fixes) > 0 {
			report = runner.Run(ctx)
		}
	}

	w := cmd.OutOrStdout()
	switch {
	case quiet:
	case doctorJSON:
		if err := encode(w, outputJSON, "", doctorOutput{DoctorReport: report, Fixes: fixes}); err != nil {
			return err
		}
	default:
		writeDoctorText(w, report, fixes, verbosity > 0)
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return silentError{errors.NewExitError(errDoctorErrors, errors.ExitSystem)}
	}
	if report.HasWarnings() {
		return silentError{errors.NewExitError(errDoctorWarnings, errors.ExitUser)}
	}
	return nil
}

func writeDoctorText(w io.Writer, report *doctor.DoctorReport, fixes []doctor.FixResult, showAll bool) {
	p := newPalette(w)

	for _, fix := range fixes {
		icon := p.ok.Sprint("✓")
		if !fix.Fixed {
			icon = p.bad.Sprint("✗")
		}
		fmt.Fprintf(w, "%s fixed %s: %s\n", icon, fix.Path, fix.Description)
	}
	if len(fixes) > 0 {
		fmt.Fprintln(w)
	}

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(p, result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && (problem || showAll) {
			fmt.Fprintf(w, "  %s %s\n", p.dim.Sprint("hint:"), result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(p palette, s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return p.ok.Sprint("✓")
	case doctor.SeverityInfo:
		return p.info.Sprint("ℹ")
	case doctor.SeverityWarning:
		return p.warn.Sprint("⚠")
	case doctor.SeverityError:
		return p.bad.Sprint("✗")
	default:
		return "?"
	}
}

// errDoctorWarnings is the error behind exit code 1.
var errDoctorWarnings = errors.New("warnings found")

// errDoctorErrors is the error behind exit code 2.
var errDoctorErrors = errors.New("errors found")
