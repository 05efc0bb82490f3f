package midi

import (
	"errors"
	"fmt"
	"sync"

	"go-midikeys/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Session holds one open input port and forwards every message it
// receives to a single handler
type Session struct {
	port     drivers.In
	stopFunc func()
	once     sync.Once
}

// Connect opens port and starts delivering its messages to handler.
//
// The driver calls handler from its own goroutine, one message at a time
// and in arrival order. handler must return quickly. The port is released
// if the connection cannot be set up.
func Connect(port drivers.In, handler Handler) (*Session, error) {
	if port == nil {
		return nil, errors.New("open input: no port")
	}
	if handler == nil {
		return nil, errors.New("open input: no handler")
	}

	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
		raw := msg.Bytes()
		debug.Log("midi", "%d: %v (len = %d)", timestampms, raw, len(raw))
		handler(timestampms, raw)
	})
	if err != nil {
		if port.IsOpen() {
			port.Close()
		}
		return nil, fmt.Errorf("open input %q: %w", port.String(), err)
	}

	debug.Log("midi", "connected to %q", port.String())
	return &Session{port: port, stopFunc: stop}, nil
}

// Name returns the port name
func (s *Session) Name() string {
	return s.port.String()
}

// Close stops delivery and releases the port. Safe to call more than once.
func (s *Session) Close() error {
	var err error
	s.once.Do(func() {
		if s.stopFunc != nil {
			s.stopFunc()
		}
		err = s.port.Close()
		debug.Log("midi", "closed %q", s.port.String())
	})
	return err
}
