package terminal

import (
	"context"
	"os"
	"strings"
)

// Env is what a Probe may consult. Every field is required; NewProber fills
// them from the running system unless options override them.
type Env struct {
	// Locator resolves executable names through the OS command locator.
	Locator Locator

	// Getenv reads an environment variable.
	Getenv func(string) string

	// Exists reports whether a filesystem path exists.
	Exists func(string) bool
}

// Probe reports whether one terminal candidate is present. Implementations
// must not panic or block past ctx; absence and failure both mean false.
type Probe interface {
	Present(ctx context.Context, env Env) bool
}

// Paths probes well-known install locations. Templates may reference
// environment variables as ${NAME}; a template whose variable is unset is
// skipped rather than probed as a relative path.
func Paths(templates ...string) Probe {
	return pathProbe(templates)
}

type pathProbe []string

func (p pathProbe) Present(_ context.Context, env Env) bool {
	for _, tmpl := range p {
		path, ok := expand(tmpl, env.Getenv)
		if !ok {
			continue
		}
		if env.Exists(path) {
			return true
		}
	}
	return false
}

// expand substitutes ${NAME} references; ok is false when any is empty.
func expand(tmpl string, getenv func(string) string) (string, bool) {
	ok := true
	out := os.Expand(tmpl, func(name string) string {
		v := getenv(name)
		if v == "" {
			ok = false
		}
		return v
	})
	return out, ok && strings.TrimSpace(out) != ""
}

// Command probes by resolving name with the OS command locator.
func Command(name string) Probe {
	return commandProbe(name)
}

type commandProbe string

func (c commandProbe) Present(ctx context.Context, env Env) bool {
	return env.Locator.Locate(ctx, string(c))
}

// AnyOf is present when any probe is, checked in order. Put cheap path
// probes before command probes so the subprocess is skipped on a hit.
func AnyOf(probes ...Probe) Probe {
	return anyProbe(probes)
}

type anyProbe []Probe

func (a anyProbe) Present(ctx context.Context, env Env) bool {
	for _, p := range a {
		if ctx.Err() != nil {
			return false
		}
		if p.Present(ctx, env) {
			return true
		}
	}
	return false
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
