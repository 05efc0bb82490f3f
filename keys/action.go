package keys

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownAction = errors.New("unknown action")

// Action identifies a host action the binding engine can trigger
type Action string

const (
	ToggleFormat   Action = "toggle-format"
	ToggleBuild    Action = "toggle-build"
	Jump           Action = "jump"
	PeekDefinition Action = "peek-definition"
	Confirm        Action = "confirm"
)

// Actions lists every action in binding order
var Actions = []Action{ToggleFormat, ToggleBuild, Jump, PeekDefinition, Confirm}

// DefaultChords returns the keystrokes each action sends unless overridden
func DefaultChords() map[Action]Chord {
	return map[Action]Chord{
		ToggleFormat:   MustParseChord("ctrl+shift+i"),
		ToggleBuild:    MustParseChord("ctrl+shift+b"),
		Jump:           MustParseChord("f12"),
		PeekDefinition: MustParseChord("ctrl+shift+f10"),
		Confirm:        MustParseChord("return"),
	}
}

// ParseAction validates an action id
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Actions {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// ParseBinding parses an "action=chord" override such as "jump=f11"
func ParseBinding(s string) (Action, Chord, error) {
	name, chord, ok := strings.Cut(s, "=")
	if !ok {
		return "", Chord{}, fmt.Errorf("binding %q: want action=chord", s)
	}
	a, err := ParseAction(name)
	if err != nil {
		return "", Chord{}, err
	}
	c, err := ParseChord(chord)
	if err != nil {
		return "", Chord{}, err
	}
	return a, c, nil
}

// Bindings is a set of chord overrides usable as a repeatable flag.Value
type Bindings map[Action]Chord

func (b Bindings) String() string {
	parts := make([]string, 0, len(b))
	for a, c := range b {
		parts = append(parts, fmt.Sprintf("%s=%s", a, c))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (b Bindings) Set(s string) error {
	a, c, err := ParseBinding(s)
	if err != nil {
		return err
	}
	b[a] = c
	return nil
}
