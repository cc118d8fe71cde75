package backup

import (
	"io/fs"
	"time"

	"github.com/fp-node-manager/fpnm/internal/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// ManifestName is the manifest file inside each backup directory.
const ManifestName = "manifest.yaml"

// DefaultRetentionCount is the number of backups kept per scope.
const DefaultRetentionCount = 5

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the scope.
	ErrNoBackupsFound = errors.Mark(errors.New("no backups found"), errors.ErrNotFound)

	// ErrNothingToBackUp indicates none of the requested paths exist.
	ErrNothingToBackUp = errors.New("no files to back up")

	// ErrBackupCorrupted indicates a stored file no longer matches its
	// recorded SHA-256.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Manifest describes one backup. It is stored as manifest.yaml in the
// backup directory.
type Manifest struct {
	Version   int       `yaml:"version" json:"version"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`

	// Scope groups backups of related files, e.g. "config".
	Scope string `yaml:"scope" json:"scope"`
	Files []File `yaml:"files" json:"files"`

	// FPNMVersion is the fpnm build that wrote the backup.
	FPNMVersion string `yaml:"fpnm_version" json:"fpnm_version"`

	// ID is the backup directory name; it is not stored in the manifest.
	ID string `yaml:"-" json:"id"`
}

// File is one backed up file.
type File struct {
	OriginalPath string      `yaml:"original_path" json:"original_path"`
	RelPath      string      `yaml:"rel_path" json:"rel_path"`
	SHA256       string      `yaml:"sha256" json:"sha256"`
	Mode         fs.FileMode `yaml:"mode" json:"mode"`
}
