package commands

import (
	"context"

	"github.com/fp-node-manager/fpnm/internal/logging"
	"github.com/fp-node-manager/fpnm/internal/platform"
	"github.com/fp-node-manager/fpnm/internal/shellint"
	"github.com/fp-node-manager/fpnm/internal/terminal"
)

// Seams replaced by tests to run commands against a fake OS.
var (
	newResolver = func() platform.Resolver { return platform.System{} }

	proberOptions    []terminal.Option
	registrarOptions []shellint.Option
)

func newProber(ctx context.Context) *terminal.Prober {
	opts := []terminal.Option{
		terminal.WithLogger(logging.FromContext(ctx)),
		terminal.WithTimeout(currentConfig().ProbeTimeout),
	}
	return terminal.NewProber(newResolver(), append(opts, proberOptions...)...)
}

func newRegistrar(ctx context.Context) shellint.Registrar {
	opts := []shellint.Option{
		shellint.WithAppID(currentConfig().AppID),
		shellint.WithLogger(logging.FromContext(ctx)),
	}
	return shellint.New(newResolver(), append(opts, registrarOptions...)...)
}
