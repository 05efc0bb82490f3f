package keys

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"go-midikeys/debug"
)

var ErrNotAvailable = errors.New("keystroke injection not available")

// Injector taps a chord on the host: modifiers down, key down, key up,
// modifiers up
type Injector interface {
	Press(c Chord) error
	Close() error
}

// Backend names an Injector implementation
type Backend string

const (
	BackendAuto    Backend = "auto"
	BackendUinput  Backend = "uinput"
	BackendXdotool Backend = "xdotool"
	BackendDryRun  Backend = "dry-run"
)

// Backends lists the accepted backend names
var Backends = []Backend{BackendAuto, BackendUinput, BackendXdotool, BackendDryRun}

// Open creates the injector for b. BackendAuto prefers uinput and falls back
// to xdotool. out receives the dry-run backend's lines.
func Open(b Backend, out io.Writer) (Injector, error) {
	switch b {
	case BackendUinput:
		u, err := OpenUinput()
		if err != nil {
			return nil, err
		}
		return u, nil
	case BackendXdotool:
		x, err := NewXdotool()
		if err != nil {
			return nil, err
		}
		return x, nil
	case BackendDryRun:
		return &DryRun{Out: out}, nil
	case BackendAuto:
		u, uerr := OpenUinput()
		if uerr == nil {
			return u, nil
		}
		debug.Log("keys", "uinput unavailable: %v", uerr)
		x, xerr := NewXdotool()
		if xerr == nil {
			return x, nil
		}
		return nil, fmt.Errorf("%w: %v; %v", ErrNotAvailable, uerr, xerr)
	}
	return nil, fmt.Errorf("unknown backend %q", b)
}

// DryRun prints chords instead of sending them
type DryRun struct {
	Out io.Writer
}

func (d *DryRun) Press(c Chord) error {
	debug.Log("keys", "dry-run %s", c)
	if d.Out != nil {
		fmt.Fprintf(d.Out, "would press %s\n", c)
	}
	return nil
}

func (d *DryRun) Close() error { return nil }

// Xdotool sends chords through the xdotool command (X11 only)
type Xdotool struct {
	path string
	run  func(path string, args ...string) error
}

// NewXdotool locates xdotool on PATH
func NewXdotool() (*Xdotool, error) {
	path, err := exec.LookPath("xdotool")
	if err != nil {
		return nil, fmt.Errorf("%w: xdotool not found. Install xdotool: sudo apt install xdotool", ErrNotAvailable)
	}
	return &Xdotool{path: path, run: runCommand}, nil
}

// Press runs xdotool and waits for it. It blocks the caller, which is the
// MIDI delivery goroutine, for the lifetime of one process; a run that
// exceeds commandTimeout is killed and reported as an error.
func (x *Xdotool) Press(c Chord) error {
	if err := x.run(x.path, "key", "--clearmodifiers", c.Keysyms()); err != nil {
		return fmt.Errorf("xdotool key %s: %w", c.Keysyms(), err)
	}
	return nil
}

func (x *Xdotool) Close() error { return nil }

// commandTimeout bounds each external keystroke command
var commandTimeout = 500 * time.Millisecond

func runCommand(path string, args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, args...).CombinedOutput()
	if err != nil && ctx.Err() != nil {
		return fmt.Errorf("%s timed out after %s: %w", path, commandTimeout, ctx.Err())
	}
	if err != nil && len(out) > 0 {
		return fmt.Errorf("%w: %s", err, out)
	}
	return err
}

// Performer maps actions to chords and sends them through an Injector
type Performer struct {
	injector Injector
	chords   map[Action]Chord
}

// NewPerformer uses the default chords with overrides applied on top
func NewPerformer(inj Injector, overrides Bindings) *Performer {
	chords := DefaultChords()
	for a, c := range overrides {
		chords[a] = c
	}
	return &Performer{injector: inj, chords: chords}
}

// Chord returns the chord bound to a
func (p *Performer) Chord(a Action) (Chord, bool) {
	c, ok := p.chords[a]
	return c, ok
}

// Perform sends the chord bound to a
func (p *Performer) Perform(a Action) error {
	c, ok := p.chords[a]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}
	debug.Log("keys", "%s -> %s", a, c)
	return p.injector.Press(c)
}
