package validator

import (
	"fmt"
	"strings"

	"github.com/fp-node-manager/fpnm/internal/errors"
)

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError indicates a blocking validation failure.
	SeverityError Severity = iota
	// SeverityWarning indicates a recommended but non-blocking issue.
	SeverityWarning
	// SeverityInfo indicates an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return errors.Newf("unknown severity %q", b)
	}
	return nil
}

// Issue is a single problem with one config key.
type Issue struct {
	Severity Severity          `json:"severity"`
	Field    string            `json:"field,omitempty"`
	Message  string            `json:"message"`
	Value    string            `json:"value,omitempty"`
	Context  map[string]string `json:"context,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Field != "" {
		fmt.Fprintf(&sb, "%s: ", i.Field)
	}
	sb.WriteString(i.Message)
	if i.Value != "" {
		fmt.Fprintf(&sb, " (got %q)", i.Value)
	}
	return sb.String()
}

// Result aggregates validation issues in the order they were found.
type Result struct {
	Issues []Issue `json:"issues"`
}

func (r *Result) add(sev Severity, field, message, value string) *Issue {
	r.Issues = append(r.Issues, Issue{Severity: sev, Field: field, Message: message, Value: value})
	return &r.Issues[len(r.Issues)-1]
}

// AddError records a blocking issue.
func (r *Result) AddError(field, message, value string) *Issue {
	return r.add(SeverityError, field, message, value)
}

// AddWarning records a non-blocking issue.
func (r *Result) AddWarning(field, message, value string) *Issue {
	return r.add(SeverityWarning, field, message, value)
}

// AddInfo records a note.
func (r *Result) AddInfo(field, message, value string) *Issue {
	return r.add(SeverityInfo, field, message, value)
}

// With attaches a context key to the issue and returns it for chaining.
func (i *Issue) With(key, value string) *Issue {
	if i.Context == nil {
		i.Context = map[string]string{}
	}
	i.Context[key] = value
	return i
}

// HasErrors reports whether any issue is an error.
func (r *Result) HasErrors() bool { return len(r.bySeverity(SeverityError)) > 0 }

// HasWarnings reports whether any issue is a warning.
func (r *Result) HasWarnings() bool { return len(r.bySeverity(SeverityWarning)) > 0 }

// Errors returns the error issues.
func (r *Result) Errors() []Issue { return r.bySeverity(SeverityError) }

// Warnings returns the warning issues.
func (r *Result) Warnings() []Issue { return r.bySeverity(SeverityWarning) }

func (r *Result) bySeverity(sev Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			res = append(res, i)
		}
	}
	return res
}
