package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/terminal"
)

func TestTerminals_ListsEveryKnownTerminalInOrder(t *testing.T) {
	useFakeOS(t, "linux", "bash", "kitty")

	out, err := execute(t, "terminals", "-o", "yaml")
	require.NoError(t, err)

	var got []terminal.Candidate
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))

	want := terminal.Definitions("linux")
	require.Len(t, got, len(want))
	for i, d := range want {
		assert.Equal(t, d.ID, got[i].ID)
		assert.Equal(t, d.ID == "bash" || d.ID == "kitty", got[i].Available, d.ID)
	}
}

func TestTerminals_AvailableOnly(t *testing.T) {
	useFakeOS(t, "linux", "kitty", "zsh")

	out, err := execute(t, "terminals", "--available", "-o", "toml")
	require.NoError(t, err)

	var doc struct {
		Terminals []terminal.Candidate `toml:"terminals"`
	}
	require.NoError(t, toml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Terminals, 2)
	assert.Equal(t, "zsh", doc.Terminals[0].ID)
	assert.Equal(t, "kitty", doc.Terminals[1].ID)
}

func TestTerminals_TextMarksDefault(t *testing.T) {
	f := useFakeOS(t, "linux", "bash")
	require.NoError(t, os.WriteFile(filepath.Join(f.configDir, "config.yaml"),
		[]byte("default_terminal: bash\n"), 0o600))

	out, err := execute(t, "terminals", "--available")
	require.NoError(t, err)
	assert.Contains(t, out, "bash *")
	assert.NotContains(t, out, "kitty")
}

func TestTerminals_NoneFound(t *testing.T) {
	useFakeOS(t, "linux")

	out, err := execute(t, "terminals", "-a")
	require.NoError(t, err)
	assert.Contains(t, out, "No terminals found.")
}

func TestTerminalsSelect_ByID(t *testing.T) {
	f := useFakeOS(t, "linux")

	out, err := execute(t, "terminals", "select", "konsole")
	require.NoError(t, err)
	assert.Contains(t, out, "Default terminal set to konsole")

	data, err := os.ReadFile(filepath.Join(f.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_terminal: konsole")
}

func TestTerminalsSelect_UnknownForFamily(t *testing.T) {
	f := useFakeOS(t, "darwin")

	// konsole exists, but only for linux
	_, err := execute(t, "terminals", "select", "konsole")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.Classify(err).Code)
	assert.NoFileExists(t, filepath.Join(f.configDir, "config.yaml"))
}

func TestTerminalsSelect_Interactive(t *testing.T) {
	f := useFakeOS(t, "linux", "bash", "alacritty")

	orig := pickTerminal
	t.Cleanup(func() { pickTerminal = orig })

	var offered []string
	pickTerminal = func(cs []terminal.Candidate) (int, error) {
		for _, c := range cs {
			offered = append(offered, c.ID)
		}
		return 1, nil
	}

	_, err := execute(t, "terminals", "select")
	require.NoError(t, err)
	assert.Equal(t, []string{"bash", "alacritty"}, offered)

	data, err := os.ReadFile(filepath.Join(f.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "default_terminal: alacritty"))
}

func TestTerminalsSelect_NothingInstalled(t *testing.T) {
	useFakeOS(t, "linux")

	_, err := execute(t, "terminals", "select")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no installed terminals found")
}
