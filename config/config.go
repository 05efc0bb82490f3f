package config

import (
	"flag"
	"fmt"
	"time"

	"go-midikeys/debug"
	"go-midikeys/keys"
)

// Config holds the runtime options. There is no config file; everything
// comes from command-line flags.
type Config struct {
	// Port preselects the input port by index or name substring
	Port        string
	PortTimeout time.Duration
	ListPorts   bool

	Backend  keys.Backend
	Bindings keys.Bindings

	// WideRelease also treats note-off on any channel and zero-velocity
	// note-on as key releases
	WideRelease bool

	TUI      bool
	Debug    bool
	DebugLog string
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		PortTimeout: 3 * time.Second,
		Backend:     keys.BackendAuto,
		Bindings:    keys.Bindings{},
		DebugLog:    debug.DefaultPath(),
	}
}

// RegisterFlags binds the config fields to fs
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Port, "port", c.Port, "input port index or name substring (skips the prompt)")
	fs.DurationVar(&c.PortTimeout, "port-timeout", c.PortTimeout, "how long to wait for the MIDI driver to list ports")
	fs.BoolVar(&c.ListPorts, "list", c.ListPorts, "list MIDI input ports and exit")
	fs.Func("backend", "keystroke backend: auto, uinput, xdotool or dry-run (default auto)", func(s string) error {
		b, err := ParseBackend(s)
		if err != nil {
			return err
		}
		c.Backend = b
		return nil
	})
	fs.Var(c.Bindings, "bind", "override an action's keys, e.g. -bind jump=f11 (repeatable)")
	fs.BoolVar(&c.WideRelease, "wide-release", c.WideRelease, "also ignore note-off on any channel and velocity-0 note-on")
	fs.BoolVar(&c.TUI, "tui", c.TUI, "show a full-screen status view (quit with Q)")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "write a debug log")
	fs.StringVar(&c.DebugLog, "debug-log", c.DebugLog, "debug log path")
}

// ParseBackend validates a backend name
func ParseBackend(s string) (keys.Backend, error) {
	for _, b := range keys.Backends {
		if keys.Backend(s) == b {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown backend %q (want one of %v)", s, keys.Backends)
}

// Validate checks option combinations flags alone cannot express
func (c *Config) Validate() error {
	if c.PortTimeout <= 0 {
		return fmt.Errorf("port timeout must be positive, got %s", c.PortTimeout)
	}
	if _, err := ParseBackend(string(c.Backend)); err != nil {
		return err
	}
	if c.Debug && c.DebugLog == "" {
		return fmt.Errorf("debug log path is empty")
	}
	return nil
}
