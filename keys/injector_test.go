package keys

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDryRun(t *testing.T) {
	var out bytes.Buffer
	inj, err := Open(BackendDryRun, &out)
	require.NoError(t, err)

	require.NoError(t, inj.Press(MustParseChord("ctrl+shift+f10")))
	assert.Equal(t, "would press ctrl+shift+f10\n", out.String())
	assert.NoError(t, inj.Close())
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(Backend("evdev"), nil)
	assert.Error(t, err)
}

func TestXdotoolArgs(t *testing.T) {
	var gotPath string
	var gotArgs []string
	x := &Xdotool{path: "/usr/bin/xdotool", run: func(path string, args ...string) error {
		gotPath, gotArgs = path, args
		return nil
	}}

	require.NoError(t, x.Press(MustParseChord("ctrl+shift+f10")))
	assert.Equal(t, "/usr/bin/xdotool", gotPath)
	assert.Equal(t, []string{"key", "--clearmodifiers", "ctrl+shift+F10"}, gotArgs)
}

func TestXdotoolError(t *testing.T) {
	boom := errors.New("exit status 1")
	x := &Xdotool{path: "xdotool", run: func(string, ...string) error { return boom }}

	err := x.Press(MustParseChord("return"))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Return")
}

func TestRunCommandTimesOut(t *testing.T) {
	sleep, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}

	old := commandTimeout
	commandTimeout = 50 * time.Millisecond
	defer func() { commandTimeout = old }()

	start := time.Now()
	err = runCommand(sleep, "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestRunCommandSucceeds(t *testing.T) {
	tru, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}
	assert.NoError(t, runCommand(tru))
}
