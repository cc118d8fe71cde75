package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fp-node-manager/fpnm/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{
  "name": "web-console",
  "scripts": {"test": "vitest", "build": "vite build", "dev": "vite"}
}`)
	writeFile(t, filepath.Join(dir, "yarn.lock"), "")

	info, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, &Info{
		Name:           "web-console",
		Scripts:        []string{"build", "dev", "test"},
		Path:           dir,
		PackageManager: "yarn",
	}, info)
}

func TestScan_NameFallsBackToDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "unnamed-app")
	require.NoError(t, os.Mkdir(dir, 0o755))
	writeFile(t, filepath.Join(dir, "package.json"), `{}`)

	info, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, "unnamed-app", info.Name)
	assert.Empty(t, info.Scripts)
	assert.Empty(t, info.PackageManager)
}

func TestScan_Errors(t *testing.T) {
	t.Run("missing manifest", func(t *testing.T) {
		_, err := Scan(t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNotFound))
		assert.NotEmpty(t, errors.Hints(err))
	})

	t.Run("malformed manifest", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"name": `)
		_, err := Scan(dir)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	})
}

func TestDetectPackageManager_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"none", nil, ""},
		{"npm", []string{"package-lock.json"}, "npm"},
		{"yarn over npm", []string{"package-lock.json", "yarn.lock"}, "yarn"},
		{"pnpm over all", []string{"package-lock.json", "yarn.lock", "pnpm-lock.yaml"}, "pnpm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				writeFile(t, filepath.Join(dir, f), "")
			}
			assert.Equal(t, tt.want, DetectPackageManager(dir))
		})
	}
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0o755))
	writeFile(t, filepath.Join(dir, "package.json"), "{}")

	entries, err := ListDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "package.json", IsDirectory: false},
		{Name: "src", IsDirectory: true},
	}, entries)

	_, err = ListDir(filepath.Join(dir, "missing"))
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
