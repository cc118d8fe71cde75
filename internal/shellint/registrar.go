package shellint

import (
	"context"
	"log/slog"
	"os/exec"
	"time"

	"github.com/fp-node-manager/fpnm/internal/logging"
	"github.com/fp-node-manager/fpnm/internal/paths"
	"github.com/fp-node-manager/fpnm/internal/platform"
)

// Registrar installs and removes the folder context-menu entry that opens a
// directory in the application.
type Registrar interface {
	// Supported reports whether this OS family has an integration mechanism.
	Supported() bool

	// Installed reports whether the OS currently holds the registration.
	// It never mutates state and returns false when the state is unreadable.
	Installed() bool

	// SetInstalled converges the OS to the requested state. Both directions
	// are idempotent. locale selects the menu label.
	SetInstalled(enable bool, locale string) error

	// Status describes the registration for diagnostics.
	Status() Status
}

// Status is a read-only snapshot of the registration.
type Status struct {
	Family    platform.Family `json:"family" yaml:"family" toml:"family"`
	Supported bool            `json:"supported" yaml:"supported" toml:"supported"`
	Installed bool            `json:"installed" yaml:"installed" toml:"installed"`

	// Locations are the registry trees or files that carry the entry.
	Locations []string `json:"locations,omitempty" yaml:"locations,omitempty" toml:"locations,omitempty"`

	// Command is the launch command currently recorded in the OS, empty
	// when not installed.
	Command string `json:"command,omitempty" yaml:"command,omitempty" toml:"command,omitempty"`
}

// CommandRunner runs an external helper program.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// DefaultRefreshTimeout bounds the desktop database refresh.
const DefaultRefreshTimeout = 10 * time.Second

type options struct {
	appID   string
	logger  *slog.Logger
	home    func() (string, error)
	keys    KeyStore
	run     CommandRunner
	timeout time.Duration
}

// Option configures the Registrar returned by New.
type Option func(*options)

// WithAppID overrides the application id used in key and file names.
func WithAppID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.appID = id
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHome replaces the home directory lookup used on Linux.
func WithHome(fn func() (string, error)) Option {
	return func(o *options) { o.home = fn }
}

// WithKeyStore replaces the Windows registry binding.
func WithKeyStore(ks KeyStore) Option {
	return func(o *options) { o.keys = ks }
}

// WithCommandRunner replaces the runner used for update-desktop-database.
func WithCommandRunner(run CommandRunner) Option {
	return func(o *options) { o.run = run }
}

// New selects the registration strategy once, from the OS family reported
// by resolver.
func New(resolver platform.Resolver, opts ...Option) Registrar {
	o := options{
		appID:   paths.DefaultAppID,
		logger:  logging.NewDiscard(),
		home:    paths.ResolveHome,
		run:     execRunner,
		timeout: DefaultRefreshTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	switch family := resolver.Info().Family(); family {
	case platform.FamilyWindows:
		keys := o.keys
		if keys == nil {
			keys = SystemKeyStore()
		}
		return newRegistryRegistrar(resolver, keys, o)
	case platform.FamilyLinux:
		return newDesktopRegistrar(resolver, o)
	default:
		return unsupported{family: family}
	}
}

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}
