//go:build !linux

package keys

import "fmt"

// Uinput is only available on Linux
type Uinput struct{}

func OpenUinput() (*Uinput, error) {
	return nil, fmt.Errorf("%w: uinput requires linux", ErrNotAvailable)
}

func (u *Uinput) Press(c Chord) error { return ErrNotAvailable }

func (u *Uinput) Close() error { return nil }
