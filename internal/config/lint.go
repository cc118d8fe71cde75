package config

import (
	"time"

	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/paths"
	"github.com/fp-node-manager/fpnm/internal/platform"
	"github.com/fp-node-manager/fpnm/internal/terminal"
	"github.com/fp-node-manager/fpnm/internal/validator"
)

// SlowProbeTimeout is the probe timeout above which Lint warns.
const SlowProbeTimeout = 30 * time.Second

// Lint reports every issue with cfg as seen from family: the errors Validate
// finds plus advice that does not block loading.
func Lint(cfg *Config, family platform.Family) *validator.Result {
	result := &validator.Result{}

	for _, err := range Validate(cfg) {
		var fe *FieldError
		switch {
		case errors.As(err, &fe):
			result.AddError(fe.Field, fe.Err.Error(), fe.Value)
		case errors.Is(err, ErrVersionTooLow):
			result.AddError(KeyVersion, err.Error(), "")
		case errors.Is(err, ErrInvalidTimeout):
			result.AddError(KeyProbeTimeout, err.Error(), cfg.ProbeTimeout.String())
		default:
			result.AddError("", err.Error(), "")
		}
	}
	if cfg == nil {
		return result
	}

	if cfg.DefaultTerminal != "" && terminal.KnownID(cfg.DefaultTerminal) {
		if _, ok := terminal.Lookup(family, cfg.DefaultTerminal); !ok {
			result.AddWarning(KeyDefaultTerminal, "terminal is not defined on this platform", cfg.DefaultTerminal).
				With("platform", string(family))
		}
	}

	if cfg.ProbeTimeout > SlowProbeTimeout {
		result.AddWarning(KeyProbeTimeout, "long timeouts delay terminal detection", cfg.ProbeTimeout.String()).
			With("max", SlowProbeTimeout.String())
	}

	if cfg.AppID != paths.DefaultAppID && paths.ValidAppID(cfg.AppID) {
		result.AddInfo(KeyAppID, "custom app id; entries installed under another id are left in place", cfg.AppID)
	}

	return result
}
