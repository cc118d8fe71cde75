package backup

import (
	"sync"

	"github.com/fp-node-manager/fpnm/internal/errors"
)

// backupOnce tracks per-scope backup state within a process so a command
// that writes a file several times snapshots it only once.
var (
	backupOnce  = make(map[string]*sync.Once)
	backupMutex sync.Mutex
)

// EnsureBackedUp backs up files under scope before they are modified, at
// most once per scope per process. Files that do not exist yet are not an
// error. A failed or empty backup is retried on the next call.
func EnsureBackedUp(scope string, files ...string) error {
	if len(files) == 0 {
		return nil
	}

	backupMutex.Lock()
	once, exists := backupOnce[scope]
	if !exists {
		once = &sync.Once{}
		backupOnce[scope] = once
	}
	backupMutex.Unlock()

	var backupErr error
	once.Do(func() {
		_, backupErr = NewManager().Backup(scope, files)
		if backupErr != nil {
			backupMutex.Lock()
			delete(backupOnce, scope)
			backupMutex.Unlock()
		}
	})

	if errors.Is(backupErr, ErrNothingToBackUp) {
		return nil
	}

	if backupErr != nil {
		return errors.Wrapf(backupErr, "creating backup for %s", scope)
	}
	return nil
}

// ResetBackupState forgets which scopes were backed up in this process.
func ResetBackupState() {
	backupMutex.Lock()
	defer backupMutex.Unlock()
	backupOnce = make(map[string]*sync.Once)
}
