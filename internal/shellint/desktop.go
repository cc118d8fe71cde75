package shellint

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/paths"
	"github.com/fp-node-manager/fpnm/internal/platform"
	"github.com/fp-node-manager/fpnm/pkg/fileutil"
)

const (
	// DesktopEntryPerm marks the launcher executable; some file managers
	// refuse to trust desktop entries without it.
	DesktopEntryPerm os.FileMode = 0o755

	applicationsDirPerm os.FileMode = 0o755

	desktopDatabaseTool = "update-desktop-database"
)

// DesktopEntry renders the launcher file that registers the application as
// a handler for directories.
func DesktopEntry(label, exe string) []byte {
	var b bytes.Buffer
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", label)
	fmt.Fprintf(&b, "Exec=%s\n", desktopExec(exe))
	b.WriteString("Icon=folder-open\n")
	b.WriteString("NoDisplay=true\n")
	b.WriteString("MimeType=inode/directory;\n")
	return b.Bytes()
}

// desktopExec quotes exe for the Exec key. A literal percent sign is
// written as %% so it is not read as a field code.
func desktopExec(exe string) string {
	return fmt.Sprintf(`"%s" "%%f"`, strings.ReplaceAll(exe, "%", "%%"))
}

// desktopRegistrar manages a freedesktop.org desktop entry in the user's
// applications directory.
type desktopRegistrar struct {
	resolver platform.Resolver
	appID    string
	home     func() (string, error)
	run      CommandRunner
	timeout  time.Duration
	logger   *slog.Logger
}

func newDesktopRegistrar(resolver platform.Resolver, o options) *desktopRegistrar {
	return &desktopRegistrar{
		resolver: resolver,
		appID:    o.appID,
		home:     o.home,
		run:      o.run,
		timeout:  o.timeout,
		logger:   o.logger.With("strategy", "desktop-entry"),
	}
}

// locate returns the applications directory and entry file. It is
// recomputed on each call so a changed $HOME is honored.
func (d *desktopRegistrar) locate() (dir, path string, err error) {
	home, err := d.home()
	if err != nil {
		return "", "", errors.IOf(err, "locating applications directory")
	}
	return paths.ApplicationsDir(home), paths.DesktopEntryPath(home, d.appID), nil
}

func (d *desktopRegistrar) Supported() bool { return true }

func (d *desktopRegistrar) Installed() bool {
	_, path, err := d.locate()
	if err != nil {
		d.logger.Debug("home directory unavailable", "error", err)
		return false
	}
	return fileutil.Exists(path)
}

func (d *desktopRegistrar) SetInstalled(enable bool, locale string) error {
	dir, path, err := d.locate()
	if err != nil {
		return err
	}
	if enable {
		return d.install(dir, path, Label(locale))
	}
	return d.uninstall(dir, path)
}

func (d *desktopRegistrar) install(dir, path, label string) error {
	exe, err := d.resolver.Executable()
	if err != nil {
		return errors.Wrap(err, "resolving launch target")
	}
	content := DesktopEntry(label, exe)

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		return d.ensureMode(path)
	}

	if err := paths.EnsureDir(dir, applicationsDirPerm); err != nil {
		return errors.IOf(err, "creating %s", dir)
	}
	if err := fileutil.AtomicWriteFile(path, content, DesktopEntryPerm); err != nil {
		return errors.Wrap(err, "writing desktop entry")
	}

	d.logger.Info("desktop entry written", "path", path, "label", label, "exe", exe)
	d.refresh(dir)
	return nil
}

// ensureMode restores DesktopEntryPerm on an entry whose content is
// already current.
func (d *desktopRegistrar) ensureMode(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.IOf(err, "inspecting %s", path)
	}
	if info.Mode().Perm() == DesktopEntryPerm {
		d.logger.Debug("desktop entry already current", "path", path)
		return nil
	}
	if err := os.Chmod(path, DesktopEntryPerm); err != nil {
		return errors.IOf(err, "restoring mode of %s", path)
	}
	d.logger.Info("desktop entry mode restored", "path", path,
		"from", info.Mode().Perm(), "to", DesktopEntryPerm)
	return nil
}

func (d *desktopRegistrar) uninstall(dir, path string) error {
	removed, err := fileutil.RemoveIfExists(path)
	if err != nil {
		return errors.Wrap(err, "removing desktop entry")
	}
	if !removed {
		return nil
	}

	d.logger.Info("desktop entry removed", "path", path)
	d.refresh(dir)
	return nil
}

// refresh rebuilds the desktop MIME cache. Desktops without the tool still
// pick the entry up on their next scan, so failure is only logged.
func (d *desktopRegistrar) refresh(dir string) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.run(ctx, desktopDatabaseTool, dir); err != nil {
		d.logger.Debug("desktop database refresh failed",
			"tool", desktopDatabaseTool, "dir", dir,
			"error", errors.Mark(err, errors.ErrSubprocessFailure))
	}
}

func (d *desktopRegistrar) Status() Status {
	st := Status{Family: platform.FamilyLinux, Supported: true}

	_, path, err := d.locate()
	if err != nil {
		d.logger.Debug("home directory unavailable", "error", err)
		return st
	}
	st.Locations = []string{path}

	data, err := os.ReadFile(path)
	if err != nil {
		return st
	}
	st.Installed = true
	st.Command = execLine(data)
	return st
}

// execLine extracts the Exec key from the [Desktop Entry] group, with
// escaped percent signs decoded.
func execLine(data []byte) string {
	inEntry := false
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "[") {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}
		if v, ok := strings.CutPrefix(line, "Exec="); ok {
			return strings.ReplaceAll(v, "%%", "%")
		}
	}
	return ""
}
