package terminal

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/fp-node-manager/fpnm/internal/logging"
	"github.com/fp-node-manager/fpnm/internal/platform"
)

// DefaultProbeTimeout bounds a single candidate probe.
const DefaultProbeTimeout = 5 * time.Second

// Candidate is one terminal with its freshly probed availability.
type Candidate struct {
	ID        string `json:"id" yaml:"id" toml:"id"`
	Name      string `json:"name" yaml:"name" toml:"name"`
	Available bool   `json:"available" yaml:"available" toml:"available"`
}

// Prober detects which terminals are installed. It keeps no results
// between calls; every Detect re-probes the system.
type Prober struct {
	resolver    platform.Resolver
	locator     Locator
	getenv      func(string) string
	exists      func(string) bool
	logger      *slog.Logger
	timeout     time.Duration
	parallelism int
}

// Option configures a Prober.
type Option func(*Prober)

// WithLocator replaces the where/which subprocess locator.
func WithLocator(l Locator) Option {
	return func(p *Prober) { p.locator = l }
}

// WithLogger sets the logger used for probe diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Prober) { p.logger = l }
}

// WithTimeout bounds each candidate probe. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithGetenv replaces os.Getenv for path templates.
func WithGetenv(fn func(string) string) Option {
	return func(p *Prober) { p.getenv = fn }
}

// WithExists replaces the filesystem existence check.
func WithExists(fn func(string) bool) Option {
	return func(p *Prober) { p.exists = fn }
}

// WithParallelism caps concurrent probes; 1 probes sequentially.
func WithParallelism(n int) Option {
	return func(p *Prober) { p.parallelism = n }
}

// NewProber builds a Prober for the platform reported by resolver.
func NewProber(resolver platform.Resolver, opts ...Option) *Prober {
	p := &Prober{
		resolver: resolver,
		getenv:   os.Getenv,
		exists:   pathExists,
		logger:   logging.NewDiscard(),
		timeout:  DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.locator == nil {
		p.locator = NewExecLocator(resolver.Info().Family(), p.logger)
	}
	return p
}

// Detect returns every candidate for the current OS family in definition
// order. It never fails: a probe that errors, panics or times out yields
// Available=false for that candidate only.
func (p *Prober) Detect(ctx context.Context) []Candidate {
	family := p.resolver.Info().Family()
	defs := Definitions(family)

	env := Env{Locator: p.locator, Getenv: p.getenv, Exists: p.exists}
	mapper := iter.Mapper[Definition, Candidate]{MaxGoroutines: p.parallelism}
	candidates := mapper.Map(defs, func(d *Definition) Candidate {
		return Candidate{
			ID:        d.ID,
			Name:      d.Name,
			Available: p.probe(ctx, env, d),
		}
	})

	p.logger.Debug("terminal detection finished",
		"family", string(family), "candidates", len(candidates), "available", countAvailable(candidates))
	return candidates
}

// Available filters candidates down to the available ones, keeping order.
func Available(candidates []Candidate) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Available {
			out = append(out, c)
		}
	}
	return out
}

func (p *Prober) probe(ctx context.Context, env Env, d *Definition) (present bool) {
	logger := p.logger.WithGroup("probe").With("id", d.ID)
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("probe panicked", "panic", r)
			present = false
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	present = d.Probe.Present(ctx, env)
	if ctx.Err() != nil {
		logger.Debug("probe interrupted", "error", ctx.Err())
		return false
	}
	logger.Log(ctx, logging.LevelTrace, "probed", "available", present)
	return present
}

func countAvailable(candidates []Candidate) int {
	n := 0
	for _, c := range candidates {
		if c.Available {
			n++
		}
	}
	return n
}
