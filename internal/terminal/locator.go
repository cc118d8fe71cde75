package terminal

import (
	"context"
	"log/slog"
	"os/exec"

	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/logging"
	"github.com/fp-node-manager/fpnm/internal/platform"
)

// Locator resolves an executable name to a yes/no answer.
type Locator interface {
	Locate(ctx context.Context, name string) bool
}

// ExecLocator runs the OS command locator (where or which) as a
// subprocess. A zero exit status means found.
type ExecLocator struct {
	// Tool is the locator binary, e.g. "which".
	Tool string

	logger *slog.Logger
}

var _ Locator = (*ExecLocator)(nil)

// NewExecLocator returns the locator for family: where on Windows, which
// everywhere else.
func NewExecLocator(family platform.Family, logger *slog.Logger) *ExecLocator {
	tool := "which"
	if family == platform.FamilyWindows {
		tool = "where"
	}
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &ExecLocator{Tool: tool, logger: logger}
}

// Locate reports whether name resolves. Failing to spawn the locator itself
// is logged and reported as not found.
func (l *ExecLocator) Locate(ctx context.Context, name string) bool {
	logger := l.logger
	if logger == nil {
		logger = logging.NewDiscard()
	}

	cmd := exec.CommandContext(ctx, l.Tool, name)
	err := cmd.Run()
	if err == nil {
		logger.Log(ctx, logging.LevelTrace, "command resolved", "tool", l.Tool, "name", name)
		return true
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Log(ctx, logging.LevelTrace, "command not found",
			"tool", l.Tool, "name", name, "exit_code", exitErr.ExitCode())
		return false
	}

	logger.Debug("command locator unavailable",
		"tool", l.Tool, "name", name,
		"error", errors.Mark(err, errors.ErrSubprocessFailure))
	return false
}
