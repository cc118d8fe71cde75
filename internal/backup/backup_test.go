package backup

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fp-node-manager/fpnm/internal/errors"
)

// fixedClock returns a clock frozen at t that tests can advance.
func fixedClock(t time.Time) (func() time.Time, func(time.Duration)) {
	now := t
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestBackup_SameSecondGetsDistinctIDs(t *testing.T) {
	m := NewManager(WithBackupDir(t.TempDir()))
	m.now, _ = fixedClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	src := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, src, "locale: en\n")

	first, err := m.Backup("config", []string{src})
	require.NoError(t, err)
	second, err := m.Backup("config", []string{src})
	require.NoError(t, err)

	assert.Equal(t, "20260301T100000", first.ID)
	assert.Equal(t, "20260301T100000-1", second.ID)
}

func TestBackup_SkipsMissingFiles(t *testing.T) {
	m := NewManager(WithBackupDir(t.TempDir()))
	dir := t.TempDir()
	present := filepath.Join(dir, "config.yaml")
	writeFile(t, present, "v")

	manifest, err := m.Backup("config", []string{filepath.Join(dir, "missing.yaml"), present})
	require.NoError(t, err)
	require.Len(t, manifest.Files, 1)
	assert.Equal(t, present, manifest.Files[0].OriginalPath)

	_, err = m.Backup("config", []string{filepath.Join(dir, "missing.yaml")})
	assert.ErrorIs(t, err, ErrNothingToBackUp)
}

func TestBackup_RestoreRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("checks POSIX permissions")
	}
	m := NewManager(WithBackupDir(t.TempDir()))
	src := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, src, "locale: zh-CN\n")
	require.NoError(t, os.Chmod(src, 0o640))

	manifest, err := m.Backup("config", []string{src})
	require.NoError(t, err)

	writeFile(t, src, "locale: en\n")

	restored, err := m.Restore("config", "")
	require.NoError(t, err)
	assert.Equal(t, manifest.ID, restored.ID)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "locale: zh-CN\n", string(data))

	info, err := os.Stat(src)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestRestore_DetectsCorruption(t *testing.T) {
	root := t.TempDir()
	m := NewManager(WithBackupDir(root))
	src := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, src, "original")

	manifest, err := m.Backup("config", []string{src})
	require.NoError(t, err)

	stored := filepath.Join(root, "config", manifest.ID, manifest.Files[0].RelPath)
	writeFile(t, stored, "tampered")
	writeFile(t, src, "current")

	_, err = m.Restore("config", manifest.ID)
	require.ErrorIs(t, err, ErrBackupCorrupted)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "current", string(data), "nothing is written when verification fails")
}

func TestList_NewestFirstAndPrune(t *testing.T) {
	m := NewManager(WithBackupDir(t.TempDir()), WithRetentionCount(2))
	var advance func(time.Duration)
	m.now, advance = fixedClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	src := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, src, "v")

	var ids []string
	for range 3 {
		manifest, err := m.Backup("config", []string{src})
		require.NoError(t, err)
		ids = append(ids, manifest.ID)
		advance(time.Minute)
	}

	manifests, err := m.List("config")
	require.NoError(t, err)
	require.Len(t, manifests, 2)
	assert.Equal(t, ids[2], manifests[0].ID)
	assert.Equal(t, ids[1], manifests[1].ID)

	_, err = m.Get("config", ids[0])
	assert.ErrorIs(t, err, ErrNoBackupsFound)
}

func TestList_Empty(t *testing.T) {
	m := NewManager(WithBackupDir(t.TempDir()))

	_, err := m.List("config")
	require.ErrorIs(t, err, ErrNoBackupsFound)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	assert.NoError(t, m.Prune("config", 1))
}

func TestGenerateRelPath(t *testing.T) {
	tests := []string{
		"/home/dev/.config/fpnm/config.yaml",
		`C:\Users\dev\AppData\fpnm\config.yaml`,
		"file:name",
	}
	for _, in := range tests {
		got := generateRelPath(in)
		assert.NotContains(t, got, ":", in)
		assert.False(t, strings.HasPrefix(got, "/"), in)
		assert.False(t, filepath.IsAbs(got), in)
	}
}

func TestEnsureBackedUp_OncePerScope(t *testing.T) {
	t.Setenv("FPNM_CONFIG_DIR", t.TempDir())
	ResetBackupState()
	t.Cleanup(ResetBackupState)

	src := filepath.Join(t.TempDir(), "config.yaml")

	// nothing to back up yet is not an error, and does not use up the scope
	require.NoError(t, EnsureBackedUp("config", src))

	writeFile(t, src, "v1")
	require.NoError(t, EnsureBackedUp("config", src))
	writeFile(t, src, "v2")
	require.NoError(t, EnsureBackedUp("config", src))

	manifests, err := NewManager().List("config")
	require.NoError(t, err)
	assert.Len(t, manifests, 1)
}
