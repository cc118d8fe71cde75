// Package project reads the Node.js manifest of a project directory and
// detects its package manager from the lockfile present.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/pkg/fileutil"
)

// ManifestName is the file that marks a directory as a project.
const ManifestName = "package.json"

// lockfiles in detection order; the first present wins.
var lockfiles = []struct {
	file    string
	manager string
}{
	{"pnpm-lock.yaml", "pnpm"},
	{"yarn.lock", "yarn"},
	{"package-lock.json", "npm"},
}

// Info describes one project.
type Info struct {
	Name    string   `json:"name" yaml:"name" toml:"name"`
	Scripts []string `json:"scripts" yaml:"scripts" toml:"scripts"`
	Path    string   `json:"path" yaml:"path" toml:"path"`

	// PackageManager is empty when no known lockfile exists.
	PackageManager string `json:"packageManager,omitempty" yaml:"package_manager,omitempty" toml:"package_manager,omitempty"`
}

type manifest struct {
	Name    string            `json:"name"`
	Scripts map[string]string `json:"scripts"`
}

// Scan reads dir/package.json. A missing manifest is errors.ErrNotFound;
// a malformed one is errors.ErrInvalidConfig.
func Scan(dir string) (*Info, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.WithHint(
				errors.Mark(errors.Newf("%s not found in %s", ManifestName, dir), errors.ErrNotFound),
				"pass the root directory of a Node.js project")
		}
		return nil, err
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parsing %s", path), errors.ErrInvalidConfig)
	}

	scripts := make([]string, 0, len(m.Scripts))
	for name := range m.Scripts {
		scripts = append(scripts, name)
	}
	sort.Strings(scripts)

	name := m.Name
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			abs = dir
		}
		name = filepath.Base(abs)
	}

	return &Info{
		Name:           name,
		Scripts:        scripts,
		Path:           dir,
		PackageManager: DetectPackageManager(dir),
	}, nil
}

// DetectPackageManager returns pnpm, yarn or npm by lockfile presence, or
// "" when there is none.
func DetectPackageManager(dir string) string {
	for _, lf := range lockfiles {
		if fileutil.Exists(filepath.Join(dir, lf.file)) {
			return lf.manager
		}
	}
	return ""
}

// Entry is one directory entry.
type Entry struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	IsDirectory bool   `json:"isDirectory" yaml:"is_directory" toml:"is_directory"`
}

// ListDir lists dir in name order. Entries whose type cannot be read are
// skipped.
func ListDir(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Mark(errors.Wrapf(err, "listing %s", dir), errors.ErrNotFound)
		}
		return nil, errors.IOf(err, "listing %s", dir)
	}

	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Name: de.Name(), IsDirectory: info.IsDir()})
	}
	return entries, nil
}
