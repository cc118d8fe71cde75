package doctor

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/fp-node-manager/fpnm/internal/errors"
)

// Fixer is an optional interface that checks can implement to support auto-remediation.
// Checks that implement Fixer can fix issues they detect when the --fix flag is used.
type Fixer interface {
	// CanFix returns true if this check has fixable issues.
	// Must be called after Run() to check if there are issues that can be fixed.
	CanFix() bool

	// Fix attempts to remediate the issues found by Run().
	// Returns a slice of FixResult indicating what was fixed or why it couldn't be fixed.
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	// Path is the file, directory or registry key that was targeted.
	Path string `json:"path" yaml:"path"`

	// Fixed indicates whether the fix was successfully applied.
	Fixed bool `json:"fixed" yaml:"fixed"`

	// Description explains what was fixed or why it couldn't be fixed.
	Description string `json:"description" yaml:"description"`

	// Error contains the error if the fix failed.
	Error error `json:"-" yaml:"-"`
}

// Target permissions for fpnm's own files.
const (
	secureFilePerm os.FileMode = 0o600
	secureDirPerm  os.FileMode = 0o700
)

// pathIssue is one permission problem found by PermissionCheck.
type pathIssue struct {
	Path     string
	Type     string // "file" or "directory"
	Problem  string
	Severity Severity
	Fixable  bool
}

// PermissionCheck flags group- or world-writable config files and
// directories. It does nothing on Windows.
type PermissionCheck struct {
	PermissionFixer

	paths []string
	goos  string
}

var (
	_ Check = (*PermissionCheck)(nil)
	_ Fixer = (*PermissionCheck)(nil)
)

// NewPermissionCheck checks each of paths; missing paths are skipped.
func NewPermissionCheck(paths ...string) *PermissionCheck {
	return &PermissionCheck{paths: paths, goos: runtime.GOOS}
}

// Name returns the unique identifier for this check.
func (c *PermissionCheck) Name() string {
	return "permissions"
}

// Category returns the grouping for this check.
func (c *PermissionCheck) Category() string {
	return "filesystem"
}

// Run executes the permission check and returns its result.
func (c *PermissionCheck) Run(context.Context) *CheckResult {
	c.setIssues(nil)
	if c.goos == "windows" {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  "permission bits not applicable on windows",
		}
	}

	var issues []pathIssue
	checked := 0
	for _, p := range c.paths {
		info, err := os.Stat(p)
		if os.IsNotExist(err) {
			continue
		}
		checked++
		if err != nil {
			issues = append(issues, pathIssue{Path: p, Problem: fmt.Sprintf("cannot stat: %v", err), Severity: SeverityError})
			continue
		}
		typ := "file"
		if info.IsDir() {
			typ = "directory"
		}
		if info.Mode().Perm()&0o022 != 0 {
			issues = append(issues, pathIssue{
				Path:     p,
				Type:     typ,
				Problem:  fmt.Sprintf("%s is writable by others (mode %04o)", typ, info.Mode().Perm()),
				Severity: SeverityWarning,
				Fixable:  true,
			})
		}
	}
	c.setIssues(issues)

	if len(issues) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  fmt.Sprintf("all %d paths have safe permissions", checked),
		}
	}

	status := SeverityWarning
	problems := make([]map[string]any, 0, len(issues))
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			status = SeverityError
		}
		problems = append(problems, map[string]any{
			"path":     issue.Path,
			"problem":  issue.Problem,
			"severity": issue.Severity.String(),
		})
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   status,
		Message:  fmt.Sprintf("%d permission issue(s) found", len(issues)),
		Details:  map[string]any{"checked_paths": checked, "issues": problems},
		Fixable:  c.CanFix(),
		FixHint:  "fpnm doctor --fix",
	}
}

// PermissionFixer fixes file and directory permission issues.
// It is embedded in PermissionCheck to provide fix capability.
type PermissionFixer struct {
	issues []pathIssue
}

// CanFix returns true if there are any fixable permission issues.
func (f *PermissionFixer) CanFix() bool {
	return f.CountFixable() > 0
}

// Fix attempts to fix all fixable permission issues.
// Returns a FixResult for each fixable issue.
func (f *PermissionFixer) Fix() []FixResult {
	results := make([]FixResult, 0, f.CountFixable())
	for _, issue := range f.issues {
		if !issue.Fixable {
			continue
		}
		results = append(results, f.fixIssue(issue))
	}
	return results
}

// fixIssue attempts to fix a single permission issue.
func (f *PermissionFixer) fixIssue(issue pathIssue) FixResult {
	result := FixResult{
		Path: issue.Path,
	}

	var targetPerm os.FileMode
	switch issue.Type {
	case "file":
		targetPerm = secureFilePerm
	case "directory":
		targetPerm = secureDirPerm
	default:
		result.Description = "unknown type: " + issue.Type
		result.Error = errors.Newf("cannot fix unknown type: %s", issue.Type)
		return result
	}

	if err := os.Chmod(issue.Path, targetPerm); err != nil {
		result.Description = fmt.Sprintf("failed to chmod %04o: %v", targetPerm, err)
		result.Error = errors.IOf(err, "chmod %04o %s", targetPerm, issue.Path)
		return result
	}

	result.Fixed = true
	result.Description = fmt.Sprintf("chmod %04o", targetPerm)
	return result
}

// setIssues stores the issues found by the check for later fixing.
func (f *PermissionFixer) setIssues(issues []pathIssue) {
	f.issues = issues
}

// CountFixable returns the number of fixable issues.
func (f *PermissionFixer) CountFixable() int {
	count := 0
	for _, issue := range f.issues {
		if issue.Fixable {
			count++
		}
	}
	return count
}
