package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/paths"
	"github.com/fp-node-manager/fpnm/internal/shellint"
)

func TestContextMenu_LinuxRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("desktop entries are checked with POSIX permissions")
	}
	f := useFakeOS(t, "linux")
	entry := paths.DesktopEntryPath(f.home, paths.DefaultAppID)

	out, err := execute(t, "context-menu", "enable", "--locale", "zh-CN")
	require.NoError(t, err)
	assert.Contains(t, out, shellint.LabelChinese)

	data, err := os.ReadFile(entry)
	require.NoError(t, err)
	assert.Equal(t, string(shellint.DesktopEntry(shellint.LabelChinese, fakeExe)), string(data))
	assert.Equal(t, 1, f.refreshes)

	out, err = execute(t, "context-menu", "status", "-o", "json")
	require.NoError(t, err)
	var status shellint.Status
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.True(t, status.Supported)
	assert.True(t, status.Installed)
	assert.Equal(t, []string{entry}, status.Locations)

	_, err = execute(t, "context-menu", "disable")
	require.NoError(t, err)
	assert.NoFileExists(t, entry)

	// disabling twice succeeds
	_, err = execute(t, "context-menu", "disable")
	require.NoError(t, err)
}

func TestContextMenu_LocaleFromConfig(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("desktop entries are checked with POSIX permissions")
	}
	f := useFakeOS(t, "linux")
	require.NoError(t, os.WriteFile(filepath.Join(f.configDir, "config.yaml"),
		[]byte("locale: zh_TW\n"), 0o600))

	_, err := execute(t, "context-menu", "enable")
	require.NoError(t, err)

	data, err := os.ReadFile(paths.DesktopEntryPath(f.home, paths.DefaultAppID))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Name="+shellint.LabelChinese)
}

func TestContextMenu_UnrecognizedLocaleFallsBackToEnglish(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("desktop entries are checked with POSIX permissions")
	}

	for _, locale := range []string{"fr_FR@euro", "english", "C.UTF-8", "!!"} {
		t.Run(locale, func(t *testing.T) {
			f := useFakeOS(t, "linux")
			entry := paths.DesktopEntryPath(f.home, paths.DefaultAppID)

			out, err := execute(t, "context-menu", "enable", "--locale", locale)
			require.NoError(t, err)
			assert.Contains(t, out, shellint.LabelEnglish)

			data, err := os.ReadFile(entry)
			require.NoError(t, err)
			assert.Equal(t, string(shellint.DesktopEntry(shellint.LabelEnglish, fakeExe)), string(data))

			_, err = execute(t, "context-menu", "disable", "--locale", locale)
			require.NoError(t, err)
			assert.NoFileExists(t, entry)
		})
	}
}

func TestContextMenu_Unsupported(t *testing.T) {
	useFakeOS(t, "darwin")

	out, err := execute(t, "context-menu", "supported")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	out, err = execute(t, "context-menu")
	require.NoError(t, err)
	assert.Contains(t, out, shellint.UnsupportedHint)

	_, err = execute(t, "context-menu", "enable")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotSupported))

	exitErr := errors.Classify(err)
	assert.Equal(t, errors.ExitUser, exitErr.Code)
	assert.Equal(t, shellint.UnsupportedHint, exitErr.Suggestion)
}

func TestContextMenu_SupportedOnLinux(t *testing.T) {
	useFakeOS(t, "linux")

	out, err := execute(t, "cm", "supported")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}
