package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/fp-node-manager/fpnm/internal/platform"
	"github.com/fp-node-manager/fpnm/internal/shellint"
)

// enableHint is the command that (re)writes the registration.
const enableHint = "fpnm context-menu enable"

// ContextMenuCheck inspects the shell registration and flags one that
// launches a binary other than the running one. A stale registration is
// fixable by registering again.
type ContextMenuCheck struct {
	registrar shellint.Registrar
	resolver  platform.Resolver
	locale    string

	stale  bool
	status shellint.Status
}

var (
	_ Check = (*ContextMenuCheck)(nil)
	_ Fixer = (*ContextMenuCheck)(nil)
)

// NewContextMenuCheck creates a context-menu check. locale is used when
// Fix re-registers.
func NewContextMenuCheck(registrar shellint.Registrar, resolver platform.Resolver, locale string) *ContextMenuCheck {
	return &ContextMenuCheck{registrar: registrar, resolver: resolver, locale: locale}
}

// Name returns the unique identifier for this check.
func (c *ContextMenuCheck) Name() string {
	return "context-menu"
}

// Category returns the grouping for this check.
func (c *ContextMenuCheck) Category() string {
	return "integration"
}

// Run executes the context-menu check and returns its result.
func (c *ContextMenuCheck) Run(context.Context) *CheckResult {
	c.stale = false
	st := c.registrar.Status()
	c.status = st

	details := map[string]any{
		"family":    string(st.Family),
		"supported": st.Supported,
		"installed": st.Installed,
	}
	if len(st.Locations) > 0 {
		details["locations"] = st.Locations
	}

	switch {
	case !st.Supported:
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  fmt.Sprintf("context menu integration is not available on %s", st.Family),
			Details:  details,
			FixHint:  shellint.UnsupportedHint,
		}
	case !st.Installed:
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "context menu entry is not installed",
			Details:  details,
			FixHint:  enableHint,
		}
	}

	details["command"] = st.Command
	exe, err := c.resolver.Executable()
	if err != nil {
		details["error"] = err.Error()
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "cannot verify context menu target",
			Details:  details,
		}
	}
	details["executable"] = exe

	if !strings.Contains(st.Command, `"`+exe+`"`) {
		c.stale = true
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "context menu entry launches a different executable",
			Details:  details,
			Fixable:  true,
			FixHint:  enableHint,
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  "context menu entry is installed",
		Details:  details,
	}
}

// CanFix reports whether the last Run found a stale registration.
func (c *ContextMenuCheck) CanFix() bool {
	return c.stale
}

// Fix re-registers the entry so it launches the running executable.
func (c *ContextMenuCheck) Fix() []FixResult {
	if !c.stale {
		return nil
	}

	path := strings.Join(c.status.Locations, ", ")
	if err := c.registrar.SetInstalled(true, c.locale); err != nil {
		return []FixResult{{
			Path:        path,
			Description: "re-registering context menu failed",
			Error:       err,
		}}
	}
	c.stale = false
	return []FixResult{{
		Path:        path,
		Fixed:       true,
		Description: "re-registered context menu for the current executable",
	}}
}
