package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"unicode/utf8"

	"github.com/fp-node-manager/fpnm/internal/errors"
)

// Family groups operating systems by the integration mechanisms they offer.
type Family string

const (
	// FamilyWindows uses the registry for shell integration.
	FamilyWindows Family = "windows"

	// FamilyDarwin has terminal probing but no shell integration.
	FamilyDarwin Family = "darwin"

	// FamilyLinux uses freedesktop desktop entries for shell integration.
	FamilyLinux Family = "linux"

	// FamilyOther covers every remaining GOOS value.
	FamilyOther Family = "other"
)

// Families returns every family in a fixed order.
func Families() []Family {
	return []Family{FamilyWindows, FamilyDarwin, FamilyLinux, FamilyOther}
}

// FamilyOf classifies a GOOS value.
func FamilyOf(goos string) Family {
	switch goos {
	case "windows":
		return FamilyWindows
	case "darwin":
		return FamilyDarwin
	case "linux":
		return FamilyLinux
	default:
		return FamilyOther
	}
}

// Info is an immutable snapshot of the running platform. Both fields use
// Go's naming (runtime.GOOS and runtime.GOARCH), so macOS reports "darwin"
// and 64-bit x86 reports "amd64".
type Info struct {
	// OS is the GOOS value, e.g. "linux".
	OS string `json:"os" yaml:"os" toml:"os"`

	// Arch is the GOARCH value, e.g. "amd64".
	Arch string `json:"arch" yaml:"arch" toml:"arch"`
}

// Family classifies i.OS.
func (i Info) Family() Family {
	return FamilyOf(i.OS)
}

// Current returns the platform of the running process. It never fails and
// is recomputed on each call.
func Current() Info {
	return Info{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// SelfExecutable returns the absolute path of the running binary.
//
// Failure to resolve the path is marked errors.ErrIOFailure; a path that is
// not valid UTF-8 is marked errors.ErrInvalidPath, since it could not be
// written into a registry value or desktop entry.
func SelfExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.IOf(err, "resolving executable path")
	}
	exe, err = filepath.Abs(exe)
	if err != nil {
		return "", errors.IOf(err, "making executable path absolute")
	}
	if !utf8.ValidString(exe) {
		return "", errors.Mark(errors.Newf("executable path %q is not valid text", exe), errors.ErrInvalidPath)
	}
	return exe, nil
}

// Resolver supplies the platform snapshot and self path to the capability
// components. System is the real implementation; tests substitute fakes.
type Resolver interface {
	Info() Info
	Executable() (string, error)
}

// System resolves against the running process.
type System struct{}

var _ Resolver = System{}

// Info returns Current().
func (System) Info() Info { return Current() }

// Executable returns SelfExecutable().
func (System) Executable() (string, error) { return SelfExecutable() }
