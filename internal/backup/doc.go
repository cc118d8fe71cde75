// Package backup snapshots files fpnm is about to overwrite so they can be
// restored later.
//
// Each backup is a timestamped directory under a scope:
//
//	<config dir>/backups/
//	└── {scope}/
//	    └── {timestamp}/
//	        ├── manifest.yaml
//	        └── {copied files...}
//
// The manifest records each file's original path, permissions and SHA-256.
// [Manager.Restore] verifies every hash before writing anything back, and
// returns [ErrBackupCorrupted] on a mismatch.
//
// Commands call [EnsureBackedUp] before modifying a file; it takes at most
// one snapshot per scope per process:
//
//	if err := backup.EnsureBackedUp("config", cfgPath); err != nil {
//	    return err
//	}
//
// Only the newest [DefaultRetentionCount] backups per scope are kept.
package backup
