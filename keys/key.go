// Package keys models host keystrokes and injects them into the focused
// application.
package keys

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownKey = errors.New("unknown key")

// Key is one physical key. Code is the Linux evdev KEY_* value, Keysym the
// X11 keysym name xdotool understands.
type Key struct {
	Name     string
	Code     uint16
	Keysym   string
	Modifier bool
}

// Chord is zero or more held modifiers plus one key
type Chord struct {
	Mods []Key
	Key  Key
}

var (
	// byName maps lower-case key names and aliases to keys
	byName = make(map[string]Key)

	aliases = map[string]string{
		"control": "ctrl",
		"lctrl":   "ctrl",
		"lshift":  "shift",
		"option":  "alt",
		"meta":    "super",
		"win":     "super",
		"cmd":     "super",
		"enter":   "return",
		"esc":     "escape",
		"del":     "delete",
		"pgup":    "pageup",
		"pgdn":    "pagedown",
	}
)

func init() {
	add := func(name string, code uint16, keysym string, mod bool) {
		byName[name] = Key{Name: name, Code: code, Keysym: keysym, Modifier: mod}
	}

	add("ctrl", 29, "ctrl", true)
	add("shift", 42, "shift", true)
	add("alt", 56, "alt", true)
	add("super", 125, "super", true)

	// evdev codes follow the physical QWERTY rows, not the alphabet
	letters := map[rune]uint16{
		'q': 16, 'w': 17, 'e': 18, 'r': 19, 't': 20, 'y': 21, 'u': 22, 'i': 23, 'o': 24, 'p': 25,
		'a': 30, 's': 31, 'd': 32, 'f': 33, 'g': 34, 'h': 35, 'j': 36, 'k': 37, 'l': 38,
		'z': 44, 'x': 45, 'c': 46, 'v': 47, 'b': 48, 'n': 49, 'm': 50,
	}
	for r, code := range letters {
		add(string(r), code, string(r), false)
	}

	// KEY_1..KEY_9 = 2..10, KEY_0 = 11
	for d := 1; d <= 9; d++ {
		s := fmt.Sprint(d)
		add(s, uint16(d+1), s, false)
	}
	add("0", 11, "0", false)

	// KEY_F1..KEY_F10 = 59..68, F11/F12 are not contiguous
	for f := 1; f <= 10; f++ {
		add(fmt.Sprintf("f%d", f), uint16(58+f), fmt.Sprintf("F%d", f), false)
	}
	add("f11", 87, "F11", false)
	add("f12", 88, "F12", false)

	add("escape", 1, "Escape", false)
	add("backspace", 14, "BackSpace", false)
	add("tab", 15, "Tab", false)
	add("return", 28, "Return", false)
	add("space", 57, "space", false)
	add("home", 102, "Home", false)
	add("up", 103, "Up", false)
	add("pageup", 104, "Prior", false)
	add("left", 105, "Left", false)
	add("right", 106, "Right", false)
	add("end", 107, "End", false)
	add("down", 108, "Down", false)
	add("pagedown", 109, "Next", false)
	add("insert", 110, "Insert", false)
	add("delete", 111, "Delete", false)
}

// Lookup returns the key for a case-insensitive name or alias
func Lookup(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if a, ok := aliases[name]; ok {
		name = a
	}
	k, ok := byName[name]
	return k, ok
}

// ParseChord parses "ctrl+shift+i" style chords. The last element is the
// key; every element before it must be a modifier.
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(s, "+")
	var c Chord
	for i, p := range parts {
		k, ok := Lookup(p)
		if !ok {
			return Chord{}, fmt.Errorf("%w: %q in %q", ErrUnknownKey, strings.TrimSpace(p), s)
		}
		if i == len(parts)-1 {
			c.Key = k
			break
		}
		if !k.Modifier {
			return Chord{}, fmt.Errorf("%w: %q is not a modifier in %q", ErrUnknownKey, k.Name, s)
		}
		c.Mods = append(c.Mods, k)
	}
	return c, nil
}

// MustParseChord is ParseChord for chords known at compile time
func MustParseChord(s string) Chord {
	c, err := ParseChord(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the canonical "ctrl+shift+i" form
func (c Chord) String() string {
	names := make([]string, 0, len(c.Mods)+1)
	for _, m := range c.Mods {
		names = append(names, m.Name)
	}
	names = append(names, c.Key.Name)
	return strings.Join(names, "+")
}

// Keysyms returns the chord in xdotool's "ctrl+shift+F10" form
func (c Chord) Keysyms() string {
	names := make([]string, 0, len(c.Mods)+1)
	for _, m := range c.Mods {
		names = append(names, m.Keysym)
	}
	names = append(names, c.Key.Keysym)
	return strings.Join(names, "+")
}

// Codes returns every evdev code the chord touches, modifiers first
func (c Chord) Codes() []uint16 {
	codes := make([]uint16, 0, len(c.Mods)+1)
	for _, m := range c.Mods {
		codes = append(codes, m.Code)
	}
	return append(codes, c.Key.Code)
}

// AllCodes returns the evdev code of every known key
func AllCodes() []uint16 {
	seen := make(map[uint16]bool, len(byName))
	codes := make([]uint16, 0, len(byName))
	for _, k := range byName {
		if !seen[k.Code] {
			seen[k.Code] = true
			codes = append(codes, k.Code)
		}
	}
	return codes
}
