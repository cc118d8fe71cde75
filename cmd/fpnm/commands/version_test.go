package commands

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	useFakeOS(t, "linux")

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fpnm version dev")
	assert.Contains(t, out, "commit: none")
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionFlag(t *testing.T) {
	useFakeOS(t, "linux")

	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "fpnm version dev\n", out)
}
