// Package fileutil provides file system utilities including atomic write operations.
package fileutil

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fp-node-manager/fpnm/internal/errors"
)

// DefaultFilePerm is used by the convenience writers (private config files).
const DefaultFilePerm = 0o600

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// This ensures interrupted writes leave the original file intact, so a reader
// sees either the old content or the new content, never a partial file.
//
// The caller is responsible for ensuring the parent directory exists.
// Permissions are applied to the final file via the perm parameter.
// Failures are marked errors.ErrIOFailure.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Same directory, so the rename stays on one filesystem
	tmp, err := os.CreateTemp(dir, ".fpnm-atomic-*.tmp")
	if err != nil {
		return errors.IOf(err, "creating temp file in %s", dir)
	}

	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.IOf(err, "writing temp file")
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.IOf(err, "setting file permissions")
	}

	if err := tmp.Close(); err != nil {
		return errors.IOf(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.IOf(err, "renaming temp file to %s", path)
	}
	renamed = true

	return nil
}

// AtomicWriteYAMLWithPerm writes v as YAML to path atomically with specified permissions.
// Appends a trailing newline for POSIX compliance.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteYAMLWithPerm(path string, v any, perm os.FileMode) (err error) {
	// yaml.Marshal panics on unmarshalable types; recover and return error
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}

	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	return AtomicWriteFile(path, data, perm)
}

// AtomicWriteYAML writes v as YAML to path atomically with DefaultFilePerm.
func AtomicWriteYAML(path string, v any) error {
	return AtomicWriteYAMLWithPerm(path, v, DefaultFilePerm)
}

// RemoveIfExists deletes path. It reports whether a file was removed; a
// missing file is not an error.
func RemoveIfExists(path string) (bool, error) {
	err := os.Remove(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, errors.IOf(err, "removing %s", path)
	}
}

// Exists reports whether path exists. Stat errors other than not-exist
// count as absent.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
