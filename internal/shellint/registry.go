package shellint

import (
	"fmt"
	"log/slog"

	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/paths"
	"github.com/fp-node-manager/fpnm/internal/platform"
)

// Registry value names.
const (
	valueDefault = ""
	valueIcon    = "Icon"
	commandKey   = `\command`
	hkcuPrefix   = `HKEY_CURRENT_USER\`
)

// registryRegistrar writes the folder and folder-background context menu
// trees under HKEY_CURRENT_USER.
type registryRegistrar struct {
	resolver platform.Resolver
	keys     KeyStore
	trees    []string
	logger   *slog.Logger
}

func newRegistryRegistrar(resolver platform.Resolver, keys KeyStore, o options) *registryRegistrar {
	return &registryRegistrar{
		resolver: resolver,
		keys:     keys,
		trees:    paths.ContextMenuKeys(o.appID),
		logger:   o.logger.With("strategy", "registry"),
	}
}

// LaunchCommand is the registry command line for exe; %V expands to the
// clicked folder.
func LaunchCommand(exe string) string {
	return fmt.Sprintf(`"%s" "%%V"`, exe)
}

func (r *registryRegistrar) Supported() bool { return true }

// Installed checks the primary tree only.
func (r *registryRegistrar) Installed() bool {
	ok, err := r.keys.Exists(r.trees[0])
	if err != nil {
		r.logger.Debug("reading context menu key failed", "key", r.trees[0], "error", err)
		return false
	}
	return ok
}

func (r *registryRegistrar) SetInstalled(enable bool, locale string) error {
	if !enable {
		return r.uninstall()
	}

	exe, err := r.resolver.Executable()
	if err != nil {
		return errors.Wrap(err, "resolving launch target")
	}
	label := Label(locale)

	for _, tree := range r.trees {
		if err := r.writeTree(tree, label, exe); err != nil {
			r.rollback()
			return errors.Wrap(err, "registering context menu")
		}
	}

	r.logger.Info("context menu registered", "keys", len(r.trees), "label", label, "exe", exe)
	return nil
}

func (r *registryRegistrar) writeTree(tree, label, exe string) error {
	if err := r.keys.SetString(tree, valueDefault, label); err != nil {
		return err
	}
	if err := r.keys.SetString(tree, valueIcon, exe); err != nil {
		return err
	}
	return r.keys.SetString(tree+commandKey, valueDefault, LaunchCommand(exe))
}

// rollback removes every tree after a failed install so no half-written
// entry is left behind. Its own failures are logged, not returned.
func (r *registryRegistrar) rollback() {
	for _, tree := range r.trees {
		if err := r.keys.DeleteTree(tree); err != nil {
			r.logger.Warn("rolling back context menu key failed", "key", tree, "error", err)
		}
	}
}

func (r *registryRegistrar) uninstall() error {
	var first error
	for _, tree := range r.trees {
		if err := r.keys.DeleteTree(tree); err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		return errors.Wrap(first, "removing context menu")
	}
	r.logger.Info("context menu removed", "keys", len(r.trees))
	return nil
}

func (r *registryRegistrar) Status() Status {
	st := Status{
		Family:    platform.FamilyWindows,
		Supported: true,
		Installed: r.Installed(),
	}
	for _, tree := range r.trees {
		st.Locations = append(st.Locations, hkcuPrefix+tree)
	}
	if st.Installed {
		cmd, err := r.keys.GetString(r.trees[0]+commandKey, valueDefault)
		if err != nil {
			r.logger.Debug("reading launch command failed", "error", err)
		}
		st.Command = cmd
	}
	return st
}
