package config

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/paths"
	"github.com/fp-node-manager/fpnm/internal/terminal"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidAppID indicates an app id unusable as a key or file name.
	ErrInvalidAppID = errors.New("invalid app id")

	// ErrInvalidLocale indicates a locale that is not a BCP 47 tag.
	ErrInvalidLocale = errors.New("invalid locale")

	// ErrInvalidTimeout indicates a non-positive probe timeout.
	ErrInvalidTimeout = errors.New("probe_timeout must be positive")

	// ErrUnknownTerminal indicates a default terminal that no family defines.
	ErrUnknownTerminal = errors.New("unknown terminal")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if !paths.ValidAppID(cfg.AppID) {
		errs = append(errs, &FieldError{Field: KeyAppID, Value: cfg.AppID, Err: ErrInvalidAppID})
	}

	if ValidateLocale(cfg.Locale) != nil {
		errs = append(errs, &FieldError{Field: KeyLocale, Value: cfg.Locale, Err: ErrInvalidLocale})
	}

	if cfg.ProbeTimeout <= 0 {
		errs = append(errs, ErrInvalidTimeout)
	}

	if cfg.DefaultTerminal != "" && !terminal.KnownID(cfg.DefaultTerminal) {
		errs = append(errs, &FieldError{Field: KeyDefaultTerminal, Value: cfg.DefaultTerminal, Err: ErrUnknownTerminal})
	}

	return errs
}

// Check runs Validate and folds the result into one error marked
// errors.ErrInvalidConfig, or nil.
func Check(cfg *Config) error {
	errs := Validate(cfg)
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	err := errors.Newf("validating config: %s", strings.Join(msgs, "; "))
	return errors.WithHint(errors.Mark(err, errors.ErrInvalidConfig), "Run: fpnm config list")
}

// ValidateLocale accepts BCP 47 tags and POSIX-style tags such as zh_CN.
func ValidateLocale(locale string) error {
	if strings.TrimSpace(locale) == "" {
		return ErrInvalidLocale
	}
	if _, err := language.Parse(strings.ReplaceAll(locale, "_", "-")); err != nil {
		return errors.Mark(errors.Wrapf(err, "locale %q", locale), ErrInvalidLocale)
	}
	return nil
}

// FieldError represents an error for a specific config field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
