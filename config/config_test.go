package config

import (
	"flag"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-midikeys/keys"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("go-midikeys", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)

	assert.Equal(t, keys.BackendAuto, cfg.Backend)
	assert.Equal(t, 3*time.Second, cfg.PortTimeout)
	assert.Empty(t, cfg.Port)
	assert.Empty(t, cfg.Bindings)
	assert.False(t, cfg.WideRelease)
	assert.False(t, cfg.TUI)
	assert.True(t, strings.HasSuffix(cfg.DebugLog, "debug.log"))
}

func TestFlags(t *testing.T) {
	cfg, err := parse(t,
		"-port", "nanoKEY",
		"-backend", "dry-run",
		"-bind", "jump=f11",
		"-bind", "confirm=tab",
		"-wide-release",
		"-tui",
		"-debug", "-debug-log", "/tmp/midikeys.log",
	)
	require.NoError(t, err)

	assert.Equal(t, "nanoKEY", cfg.Port)
	assert.Equal(t, keys.BackendDryRun, cfg.Backend)
	assert.Equal(t, "f11", cfg.Bindings[keys.Jump].String())
	assert.Equal(t, "tab", cfg.Bindings[keys.Confirm].String())
	assert.True(t, cfg.WideRelease)
	assert.True(t, cfg.TUI)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/tmp/midikeys.log", cfg.DebugLog)
}

func TestInvalidFlags(t *testing.T) {
	_, err := parse(t, "-backend", "evdev")
	assert.Error(t, err)

	_, err = parse(t, "-bind", "jump")
	assert.Error(t, err)

	_, err = parse(t, "-port-timeout", "0s")
	assert.ErrorContains(t, err, "port timeout")

	_, err = parse(t, "-debug", "-debug-log", "")
	assert.ErrorContains(t, err, "debug log")
}
