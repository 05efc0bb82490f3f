package debug

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesCategoryAfterEnable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "debug.log")

	Log("engine", "dropped before enable")
	require.NoError(t, Enable(path))
	assert.True(t, Enabled())

	Log("engine", "learned %s = %d", "Format", 10)
	Warn("keys", "backend %s failed", "uinput")
	for i := 0; i < 4; i++ {
		LogEvery(2, "midi", "tick")
	}
	Disable()
	assert.False(t, Enabled())
	Log("engine", "dropped after disable")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "Debug logging started")
	assert.Contains(t, out, `msg="learned Format = 10" category=engine`)
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "count=2")
	assert.Contains(t, out, "count=4")
	assert.NotContains(t, out, "dropped")
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "debug.log", filepath.Base(DefaultPath()))
	assert.Contains(t, DefaultPath(), "go-midikeys")
}
