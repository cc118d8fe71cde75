package doctor

import (
	"context"
	"fmt"

	"github.com/fp-node-manager/fpnm/internal/config"
	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/platform"
	"github.com/fp-node-manager/fpnm/internal/terminal"
)

// PlatformCheck reports the OS family and verifies the running binary can be
// located, since every shell registration points at it.
type PlatformCheck struct {
	resolver platform.Resolver
}

var _ Check = (*PlatformCheck)(nil)

// NewPlatformCheck creates a new platform check.
func NewPlatformCheck(resolver platform.Resolver) *PlatformCheck {
	return &PlatformCheck{resolver: resolver}
}

// Name returns the unique identifier for this check.
func (c *PlatformCheck) Name() string {
	return "platform"
}

// Category returns the grouping for this check.
func (c *PlatformCheck) Category() string {
	return "platform"
}

// Run executes the platform check and returns its result.
func (c *PlatformCheck) Run(context.Context) *CheckResult {
	info := c.resolver.Info()
	details := map[string]any{
		"os":     info.OS,
		"arch":   info.Arch,
		"family": string(info.Family()),
	}

	exe, err := c.resolver.Executable()
	if err != nil {
		details["error"] = err.Error()
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  "cannot resolve the fpnm executable path",
			Details:  details,
			FixHint:  "run fpnm from a path made of valid UTF-8 characters",
		}
	}
	details["executable"] = exe

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("%s/%s", info.OS, info.Arch),
		Details:  details,
	}
}

// Detector is the terminal prober as seen by TerminalCheck.
type Detector interface {
	Detect(ctx context.Context) []terminal.Candidate
}

// TerminalCheck verifies that at least one terminal is available and that
// the configured default terminal is among them.
type TerminalCheck struct {
	detector        Detector
	defaultTerminal string
}

var _ Check = (*TerminalCheck)(nil)

// NewTerminalCheck creates a terminal availability check. defaultTerminal
// may be empty.
func NewTerminalCheck(detector Detector, defaultTerminal string) *TerminalCheck {
	return &TerminalCheck{detector: detector, defaultTerminal: defaultTerminal}
}

// Name returns the unique identifier for this check.
func (c *TerminalCheck) Name() string {
	return "terminals"
}

// Category returns the grouping for this check.
func (c *TerminalCheck) Category() string {
	return "terminal"
}

// Run executes the terminal check and returns its result.
func (c *TerminalCheck) Run(ctx context.Context) *CheckResult {
	candidates := c.detector.Detect(ctx)
	available := terminal.Available(candidates)

	ids := make([]string, len(available))
	for i, a := range available {
		ids[i] = a.ID
	}
	details := map[string]any{
		"candidates": len(candidates),
		"available":  ids,
	}

	if len(available) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  fmt.Sprintf("none of %d known terminals found", len(candidates)),
			Details:  details,
			FixHint:  "install a terminal emulator and make sure it is on PATH",
		}
	}

	if c.defaultTerminal != "" {
		details["default_terminal"] = c.defaultTerminal
		found := false
		for _, id := range ids {
			if id == c.defaultTerminal {
				found = true
				break
			}
		}
		if !found {
			return &CheckResult{
				Name:     c.Name(),
				Category: c.Category(),
				Status:   SeverityWarning,
				Message:  fmt.Sprintf("default terminal %q is not available", c.defaultTerminal),
				Details:  details,
				FixHint:  "Run: fpnm terminals select",
			}
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("%d of %d terminals available", len(available), len(candidates)),
		Details:  details,
	}
}

// ConfigCheck verifies that the config file loads and validates.
type ConfigCheck struct {
	load func() (*config.Config, error)
	path string
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a config check. load is typically a closure over
// config.Load; path is reported in the details.
func NewConfigCheck(load func() (*config.Config, error), path string) *ConfigCheck {
	return &ConfigCheck{load: load, path: path}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// Run executes the config check and returns its result.
func (c *ConfigCheck) Run(context.Context) *CheckResult {
	details := map[string]any{"path": c.path}

	cfg, err := c.load()
	if err != nil {
		details["error"] = err.Error()
		hint := "fix or remove " + c.path
		if hints := errors.Hints(err); len(hints) > 0 {
			hint = hints[0]
		}
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  "configuration is invalid",
			Details:  details,
			FixHint:  hint,
		}
	}

	details["locale"] = cfg.Locale
	details["app_id"] = cfg.AppID
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  "configuration is valid",
		Details:  details,
	}
}
