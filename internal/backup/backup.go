package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fp-node-manager/fpnm/cmd"
	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/paths"
	"github.com/fp-node-manager/fpnm/pkg/fileutil"
)

// idLayout is the timestamp layout of backup IDs.
const idLayout = "20060102T150405"

// Dir returns the default backup root: <config dir>/backups.
func Dir() string {
	return filepath.Join(paths.ConfigDir(), "backups")
}

// Manager creates, lists, restores and prunes backups.
type Manager struct {
	rootDir        string
	retentionCount int
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of backups to retain per scope.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// NewManager creates a Manager rooted at Dir() unless overridden.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        Dir(),
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Backup copies the existing files among files into a new backup for scope
// and prunes old backups beyond the retention count. Missing files are
// skipped; if none exist it returns ErrNothingToBackUp.
func (m *Manager) Backup(scope string, files []string) (*Manifest, error) {
	if scope == "" {
		return nil, errors.New("scope is required")
	}

	var present []string
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, errors.IOf(err, "stat %s", f)
		}
		if info.IsDir() {
			return nil, errors.Newf("%s is a directory", f)
		}
		present = append(present, f)
	}
	if len(present) == 0 {
		return nil, ErrNothingToBackUp
	}

	id, dir, err := m.createBackupDir(scope)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   m.now().UTC(),
		Scope:       scope,
		FPNMVersion: cmd.Version,
		ID:          id,
	}
	for _, src := range present {
		rel := generateRelPath(src)
		dst := filepath.Join(dir, rel)
		if err := paths.EnsureDir(filepath.Dir(dst), 0); err != nil {
			return nil, errors.IOf(err, "creating backup directory")
		}
		hash, mode, err := copyFile(src, dst)
		if err != nil {
			return nil, errors.Wrapf(err, "backing up %s", src)
		}
		manifest.Files = append(manifest.Files, File{
			OriginalPath: src,
			RelPath:      rel,
			SHA256:       hash,
			Mode:         mode,
		})
	}

	if err := fileutil.AtomicWriteYAML(filepath.Join(dir, ManifestName), manifest); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(scope, m.retentionCount); err != nil {
		return nil, err
	}
	return manifest, nil
}

// createBackupDir makes a fresh directory for scope. IDs are timestamps;
// backups within the same second get a numeric suffix.
func (m *Manager) createBackupDir(scope string) (id, dir string, err error) {
	if err := paths.EnsureDir(m.scopeDir(scope), 0); err != nil {
		return "", "", errors.IOf(err, "creating backup directory")
	}

	base := m.now().Format(idLayout)
	for n := 0; ; n++ {
		id = base
		if n > 0 {
			id = fmt.Sprintf("%s-%d", base, n)
		}
		dir = m.backupPath(scope, id)
		err := os.Mkdir(dir, paths.DefaultDirPerm)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", errors.IOf(err, "creating backup directory")
		}
	}
}

// Restore copies the files of a backup back to their original locations.
// An empty id restores the newest backup. Every file is verified against
// its recorded hash before anything is written.
func (m *Manager) Restore(scope, id string) (*Manifest, error) {
	var (
		manifest *Manifest
		err      error
	)
	if id == "" {
		manifest, err = m.Latest(scope)
	} else {
		manifest, err = m.Get(scope, id)
	}
	if err != nil {
		return nil, err
	}

	dir := m.backupPath(scope, manifest.ID)
	for _, f := range manifest.Files {
		hash, err := hashFile(filepath.Join(dir, f.RelPath))
		if err != nil {
			return nil, errors.Wrapf(err, "reading backup file %s", f.RelPath)
		}
		if hash != f.SHA256 {
			return nil, errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", f.RelPath)
		}
	}

	for _, f := range manifest.Files {
		if err := paths.EnsureDir(filepath.Dir(f.OriginalPath), 0); err != nil {
			return nil, errors.IOf(err, "creating directory for %s", f.OriginalPath)
		}
		if _, _, err := copyFile(filepath.Join(dir, f.RelPath), f.OriginalPath); err != nil {
			return nil, errors.Wrapf(err, "restoring %s", f.OriginalPath)
		}
	}
	return manifest, nil
}

// List returns the backups for scope, newest first.
func (m *Manager) List(scope string) ([]Manifest, error) {
	entries, err := os.ReadDir(m.scopeDir(scope))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.IOf(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(scope, entry.Name())
		if err != nil {
			continue
		}
		manifests = append(manifests, *manifest)
	}
	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return manifests, nil
}

// Latest returns the newest backup for scope.
func (m *Manager) Latest(scope string) (*Manifest, error) {
	manifests, err := m.List(scope)
	if err != nil {
		return nil, err
	}
	return &manifests[0], nil
}

// Prune keeps the newest keep backups for scope and removes the rest.
func (m *Manager) Prune(scope string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List(scope)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	for i := keep; i < len(manifests); i++ {
		if err := os.RemoveAll(m.backupPath(scope, manifests[i].ID)); err != nil {
			return errors.IOf(err, "removing backup %s", manifests[i].ID)
		}
	}
	return nil
}

// Get returns the manifest of one backup.
func (m *Manager) Get(scope, id string) (*Manifest, error) {
	if id == "" {
		return nil, errors.New("backup ID is required")
	}

	data, err := fileutil.ReadFileWithLimit(filepath.Join(m.backupPath(scope, id), ManifestName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", id)
		}
		return nil, err
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = id
	return &manifest, nil
}

func (m *Manager) backupPath(scope, id string) string {
	return filepath.Join(m.scopeDir(scope), id)
}

func (m *Manager) scopeDir(scope string) string {
	return filepath.Join(m.rootDir, scope)
}

// hashFile computes the SHA-256 of a file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.IOf(err, "opening %s", path)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.IOf(err, "reading %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies src to dst with src's permissions, returning the SHA-256
// of the copied bytes and the mode.
func copyFile(src, dst string) (hash string, mode fs.FileMode, err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, errors.IOf(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, errors.IOf(err, "stat source file")
	}
	mode = srcInfo.Mode().Perm()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileutil.DefaultFilePerm)
	if err != nil {
		return "", 0, errors.IOf(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(dstFile, h), srcFile); err != nil {
		dstFile.Close()
		return "", 0, errors.IOf(err, "copying file")
	}
	if err := dstFile.Close(); err != nil {
		return "", 0, errors.IOf(err, "closing destination file")
	}

	if err := os.Chmod(dst, mode); err != nil {
		return "", 0, errors.IOf(err, "setting permissions")
	}
	return hex.EncodeToString(h.Sum(nil)), mode, nil
}

// generateRelPath maps an absolute path to a relative one inside a backup
// directory. Volume names and colons are dropped so the result is valid on
// every OS.
func generateRelPath(absPath string) string {
	clean := filepath.Clean(absPath)
	clean = strings.TrimPrefix(clean, filepath.VolumeName(clean))
	clean = strings.ReplaceAll(clean, ":", "")
	return strings.TrimLeft(clean, `/\`)
}
