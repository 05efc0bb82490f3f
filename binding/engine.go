// Package binding implements the learn-then-dispatch state machine that
// turns MIDI key-codes into host actions.
//
// An Engine first learns one key-code per Role, in the fixed order of Roles,
// from successive key presses. Once every role is learned it dispatches: each
// press whose key-code matches a learned role performs that role's action.
// When two roles share a key-code only the earlier one in Roles ever fires.
package binding

import (
	"errors"
	"fmt"

	"go-midikeys/debug"
	"go-midikeys/keys"
	"go-midikeys/midi"
)

var errNoPerformer = errors.New("no performer")

// Performer carries out host actions
type Performer interface {
	Perform(a keys.Action) error
}

// Phase is Learning(0)..Learning(NumRoles-1) followed by Dispatching
type Phase int

const Dispatching Phase = NumRoles

// Learning reports whether a role is still waiting for its key-code
func (p Phase) Learning() bool {
	return p >= 0 && p < Dispatching
}

// Next returns the role the phase is learning. Only valid while Learning.
func (p Phase) Next() Role {
	return Role(p)
}

func (p Phase) String() string {
	if p.Learning() {
		return fmt.Sprintf("Learning(%d)", int(p))
	}
	return "Dispatching"
}

type slot struct {
	code    uint8
	learned bool
}

// Engine is the per-message handler state. It is not safe for concurrent
// use: it must be owned by the single goroutine delivering messages.
type Engine struct {
	phase       Phase
	slots       [NumRoles]slot
	performer   Performer
	reporter    Reporter
	wideRelease bool
}

type Option func(*Engine)

// WithReporter sets where progress events go
func WithReporter(r Reporter) Option {
	return func(e *Engine) { e.reporter = r }
}

// WithWideRelease makes note-off on any channel and zero-velocity note-on
// count as key releases. By default only status byte 128 does.
func WithWideRelease(wide bool) Option {
	return func(e *Engine) { e.wideRelease = wide }
}

// New creates an engine in Learning(0)
func New(p Performer, opts ...Option) *Engine {
	e := &Engine{performer: p}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Phase returns the current phase
func (e *Engine) Phase() Phase {
	return e.phase
}

// Code returns the key-code learned for r
func (e *Engine) Code(r Role) (uint8, bool) {
	if r < 0 || r >= NumRoles {
		return 0, false
	}
	s := e.slots[r]
	return s.code, s.learned
}

// Table returns a snapshot of the learned bindings
func (e *Engine) Table() Table {
	var t Table
	for i, s := range e.slots {
		t[i] = Binding{Role: Role(i), Code: s.code, Learned: s.learned}
	}
	return t
}

// Handle processes one device message. Messages shorter than two bytes and
// key releases are ignored. It matches midi.Handler.
func (e *Engine) Handle(timestampms int32, msg []byte) {
	if len(msg) < 2 {
		debug.Log("engine", "ignored short message %v", msg)
		return
	}
	if midi.IsRelease(msg, e.wideRelease) {
		return
	}

	code := msg[1]
	if e.phase.Learning() {
		e.learn(timestampms, code)
		return
	}
	e.dispatch(timestampms, code)
}

func (e *Engine) learn(ts int32, code uint8) {
	r := e.phase.Next()
	e.slots[r] = slot{code: code, learned: true}
	e.phase++

	debug.Log("engine", "learned %s = %d, now %s", r, code, e.phase)
	e.report(Event{Kind: EventLearned, Role: r, Code: code, Timestamp: ts, Phase: e.phase, Table: e.Table()})
}

func (e *Engine) dispatch(ts int32, code uint8) {
	t := e.Table()
	r, ok := t.Lookup(code)
	if !ok {
		debug.Log("engine", "no binding for %d", code)
		return
	}

	err := errNoPerformer
	if e.performer != nil {
		err = e.performer.Perform(r.Action())
	}

	ev := Event{Kind: EventDispatched, Role: r, Code: code, Timestamp: ts, Phase: e.phase, Table: t}
	if err != nil {
		ev.Kind = EventActionFailed
		ev.Err = err
		debug.Warn("engine", "%s (%s) failed: %v", r, r.Action(), err)
	}
	e.report(ev)
}

func (e *Engine) report(ev Event) {
	if e.reporter != nil {
		e.reporter.Report(ev)
	}
}
