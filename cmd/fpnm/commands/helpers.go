package commands

import (
	"encoding/json"
	"io"
	"reflect"
	"slices"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/logging"
)

// Output formats accepted by -o/--output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
	outputTOML = "toml"
)

var outputFormats = []string{outputText, outputJSON, outputYAML, outputTOML}

// addOutputFlag registers -o/--output on cmd, bound to target.
func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", outputText,
		"output format: text, json, yaml, toml")
	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return outputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

// validateOutput rejects unknown -o values before any work is done.
func validateOutput(format string) error {
	if slices.Contains(outputFormats, format) {
		return nil
	}
	return errors.NewUserError(errors.Newf("unknown output format %q", format),
		"use -o text, json, yaml, or toml")
}

// encode writes v in a machine-readable format. TOML documents must be
// tables, so top-level slices are wrapped under key.
func encode(w io.Writer, format, key string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
	case outputTOML:
		if isSlice(v) {
			v = map[string]any{key: v}
		}
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return errors.Wrap(err, "encoding TOML")
		}
	default:
		return validateOutput(format)
	}
	return nil
}

func isSlice(v any) bool {
	return reflect.ValueOf(v).Kind() == reflect.Slice
}

// palette holds the colors used for human-readable output. Colors are
// disabled when w is not a color-capable terminal.
type palette struct {
	ok, info, warn, bad, dim, bold *color.Color
}

func newPalette(w io.Writer) palette {
	p := palette{
		ok:   color.New(color.FgGreen),
		info: color.New(color.FgCyan),
		warn: color.New(color.FgYellow),
		bad:  color.New(color.FgRed),
		dim:  color.New(color.FgHiBlack),
		bold: color.New(color.Bold),
	}
	enabled := logging.SupportsColor(w)
	for _, c := range []*color.Color{p.ok, p.info, p.warn, p.bad, p.dim, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// yesNo renders a boolean as a colored mark.
func (p palette) yesNo(b bool) string {
	if b {
		return p.ok.Sprint("✓")
	}
	return p.dim.Sprint("-")
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
