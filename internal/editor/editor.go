// Package editor launches the user's editor on a file or project directory.
package editor

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/fp-node-manager/fpnm/internal/errors"
)

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// Detect returns the editor command to use. Fallback chain:
// $EDITOR → $VISUAL → configured → nano → vi. Empty values count as unset.
func Detect(configured string) string {
	for _, v := range []string{os.Getenv("EDITOR"), os.Getenv("VISUAL"), configured} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	if _, err := lookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}

// Open runs editorCmd on path with the terminal attached. editorCmd may
// carry arguments, e.g. "code --wait".
func Open(ctx context.Context, editorCmd, path string) error {
	fields := strings.Fields(editorCmd)
	if len(fields) == 0 {
		return errors.WithHint(errors.New("no editor configured"),
			"set $EDITOR or run: fpnm config set editor <command>")
	}

	args := append(fields[1:], path)
	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.WithHint(
			errors.Mark(errors.Wrapf(err, "running editor %q", fields[0]), errors.ErrSubprocessFailure),
			"set $EDITOR or run: fpnm config set editor <command>")
	}
	return nil
}
