package paths

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/adrg/xdg"

	"github.com/fp-node-manager/fpnm/internal/errors"
)

const (
	// AppName names the CLI and its config directory.
	AppName = "fpnm"

	// DefaultAppID identifies the desktop application in OS registrations
	// (registry key names, desktop-entry file names).
	DefaultAppID = "fp-node-manager"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// appIDPattern restricts app ids to names safe as a file name and a registry key.
var appIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidAppID reports whether id can be embedded in registry keys and file names.
func ValidAppID(id string) bool {
	return appIDPattern.MatchString(id)
}

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory, re-read on every call so a
// changed $HOME takes effect immediately.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.Wrapf(ErrHomeDirNotFound, "resolving home: %v", err)
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns <ConfigHome>/fpnm, honoring FPNM_CONFIG_DIR when set.
func ConfigDir() string {
	if dir := os.Getenv("FPNM_CONFIG_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), AppName)
}

// ApplicationsDir returns the per-user desktop-entry directory under home:
// <home>/.local/share/applications.
func ApplicationsDir(home string) string {
	return filepath.Join(home, ".local", "share", "applications")
}

// DesktopEntryPath returns the context-menu launcher file for appID:
// <home>/.local/share/applications/<appID>-context.desktop.
func DesktopEntryPath(home, appID string) string {
	return filepath.Join(ApplicationsDir(home), appID+"-context.desktop")
}

// ContextMenuKeys returns the HKEY_CURRENT_USER-relative registry trees that
// carry the folder context-menu entry for appID, primary tree first.
func ContextMenuKeys(appID string) []string {
	return []string{
		`Software\Classes\Directory\shell\` + appID,
		`Software\Classes\Directory\Background\shell\` + appID,
	}
}
