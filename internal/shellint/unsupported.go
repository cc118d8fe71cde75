package shellint

import (
	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/platform"
)

// UnsupportedHint is shown when the OS family has no integration mechanism.
const UnsupportedHint = "Not supported on this platform yet. Please use 'Open With' system configuration."

type unsupported struct {
	family platform.Family
}

func (unsupported) Supported() bool { return false }

func (unsupported) Installed() bool { return false }

func (u unsupported) SetInstalled(bool, string) error {
	err := errors.Mark(errors.Newf("context menu integration unavailable on %s", u.family), errors.ErrNotSupported)
	return errors.WithHint(err, UnsupportedHint)
}

func (u unsupported) Status() Status {
	return Status{Family: u.family}
}
