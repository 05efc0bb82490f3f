package binding

import "fmt"

type EventKind int

const (
	EventLearned EventKind = iota
	EventDispatched
	EventActionFailed
)

func (k EventKind) String() string {
	switch k {
	case EventLearned:
		return "learned"
	case EventDispatched:
		return "dispatched"
	case EventActionFailed:
		return "failed"
	}
	return "unknown"
}

// Event describes one state change or action of an Engine. Phase and Table
// are snapshots taken after the change.
type Event struct {
	Kind      EventKind
	Role      Role
	Code      uint8
	Timestamp int32
	Phase     Phase
	Table     Table
	Err       error
}

// Prompt returns the instruction for the next key to press, or "" once
// learning is over
func (ev Event) Prompt() string {
	if !ev.Phase.Learning() {
		return ""
	}
	return "Press Key For " + ev.Phase.Next().Label()
}

func (ev Event) String() string {
	switch ev.Kind {
	case EventLearned:
		return fmt.Sprintf("Key For %s %d", ev.Role.Label(), ev.Code)
	case EventDispatched:
		return fmt.Sprintf("%d -> %s (%s)", ev.Code, ev.Role, ev.Role.Action())
	case EventActionFailed:
		return fmt.Sprintf("%d -> %s (%s) failed: %v", ev.Code, ev.Role, ev.Role.Action(), ev.Err)
	}
	return "unknown event"
}

// Reporter receives engine events on the delivery goroutine. It must not
// block.
type Reporter interface {
	Report(ev Event)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(ev Event)

func (f ReporterFunc) Report(ev Event) { f(ev) }
