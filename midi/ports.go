package midi

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var (
	ErrNoPortFound      = errors.New("no input port found")
	ErrInvalidSelection = errors.New("invalid input port selected")
	ErrPortTimeout      = errors.New("timed out listing MIDI ports")
)

// Port is the part of drivers.In that port selection needs
type Port interface {
	String() string
}

// ListInPorts returns the available input ports. The driver query runs in
// its own goroutine since CoreMIDI can hang.
func ListInPorts(timeout time.Duration) ([]drivers.In, error) {
	ch := make(chan []drivers.In, 1)
	go func() {
		ch <- gomidi.GetInPorts()
	}()

	select {
	case ins := <-ch:
		return ins, nil
	case <-time.After(timeout):
		// User needs to run: sudo killall coreaudiod midiserver
		return nil, ErrPortTimeout
	}
}

// SelectPort picks the input port to connect to.
//
// A non-empty preset selects by index or by case-insensitive name substring
// without prompting. Otherwise a single port is chosen automatically and
// several ports are listed on out and the operator is asked for an index
// read as one line from in.
func SelectPort[P Port](ports []P, preset string, in *bufio.Reader, out io.Writer) (P, error) {
	var zero P

	if len(ports) == 0 {
		return zero, ErrNoPortFound
	}

	if preset != "" {
		return presetPort(ports, preset)
	}

	if len(ports) == 1 {
		fmt.Fprintf(out, "Choosing the only available input port: %s\n", ports[0].String())
		return ports[0], nil
	}

	fmt.Fprintln(out, "\nAvailable input ports:")
	for i, p := range ports {
		fmt.Fprintf(out, "%d: %s\n", i, p.String())
	}
	fmt.Fprint(out, "Please select input port: ")

	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return zero, fmt.Errorf("read port selection: %w", err)
	}
	return portAt(ports, strings.TrimSpace(line))
}

func presetPort[P Port](ports []P, preset string) (P, error) {
	if _, err := strconv.Atoi(preset); err == nil {
		return portAt(ports, preset)
	}

	want := strings.ToLower(preset)
	for _, p := range ports {
		if strings.Contains(strings.ToLower(p.String()), want) {
			return p, nil
		}
	}
	var zero P
	return zero, fmt.Errorf("%w: no port matches %q", ErrInvalidSelection, preset)
}

func portAt[P Port](ports []P, s string) (P, error) {
	var zero P
	idx, err := strconv.Atoi(s)
	if err != nil {
		return zero, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, s)
	}
	if idx < 0 || idx >= len(ports) {
		return zero, fmt.Errorf("%w: index %d out of range 0-%d", ErrInvalidSelection, idx, len(ports)-1)
	}
	return ports[idx], nil
}
