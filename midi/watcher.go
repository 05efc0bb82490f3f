package midi

import (
	"context"
	"time"

	"go-midikeys/debug"
)

// DeviceEvent is emitted when the watched port appears or disappears
type DeviceEvent struct {
	Type DeviceEventType
	Name string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

func (t DeviceEventType) String() string {
	switch t {
	case DeviceConnected:
		return "connected"
	case DeviceDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Watcher polls the port list and reports when a named input port goes away
// or comes back. It does not reconnect.
type Watcher struct {
	name     string
	events   chan DeviceEvent
	pollRate time.Duration
	list     func() ([]string, error)
	present  bool
}

// NewWatcher creates a watcher for the input port called name
func NewWatcher(name string) *Watcher {
	return &Watcher{
		name:     name,
		events:   make(chan DeviceEvent, 16),
		pollRate: time.Second,
		list:     inPortNames,
		present:  true,
	}
}

// Events returns a channel of connect/disconnect events. It is closed when
// Run returns.
func (w *Watcher) Events() <-chan DeviceEvent {
	return w.events
}

// Run starts the polling loop (blocking - run in goroutine)
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollRate)
	defer ticker.Stop()
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *Watcher) scan() {
	names, err := w.list()
	if err != nil {
		// CoreMIDI is hung - skip this scan
		debug.LogEvery(10, "watch", "scan skipped: %v", err)
		return
	}

	seen := false
	for _, n := range names {
		if n == w.name {
			seen = true
			break
		}
	}
	if seen == w.present {
		return
	}
	w.present = seen

	ev := DeviceEvent{Type: DeviceDisconnected, Name: w.name}
	if seen {
		ev.Type = DeviceConnected
	}
	debug.Log("watch", "%q %s", w.name, ev.Type)

	select {
	case w.events <- ev:
	default:
	}
}

func inPortNames() ([]string, error) {
	ins, err := ListInPorts(3 * time.Second)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	return names, nil
}
