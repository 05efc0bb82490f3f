//go:build linux

package keys

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"go-midikeys/debug"
)

// ioctl requests from linux/uinput.h
const (
	uiSetEvBit   = 0x40045564 // _IOW('U', 100, int)
	uiSetKeyBit  = 0x40045565 // _IOW('U', 101, int)
	uiDevSetup   = 0x405c5503 // _IOW('U', 3, struct uinput_setup)
	uiDevCreate  = 0x5501     // _IO('U', 1)
	uiDevDestroy = 0x5502     // _IO('U', 2)
)

const (
	evSyn     = 0x00
	evKey     = 0x01
	synReport = 0
	busUSB    = 0x03

	keyUp   = 0
	keyDown = 1
)

// uinputSetup matches struct uinput_setup
type uinputSetup struct {
	Bustype      uint16
	Vendor       uint16
	Product      uint16
	Version      uint16
	Name         [80]byte
	FFEffectsMax uint32
}

// inputEvent matches the Linux input_event struct.
type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// Uinput injects keystrokes through a virtual keyboard created on
// /dev/uinput (needs write access, usually the input group or root)
type Uinput struct {
	mu sync.Mutex
	fd int
}

// settle is how long a freshly created device needs before the desktop
// picks up its events
var settle = 300 * time.Millisecond

// OpenUinput creates the virtual keyboard
func OpenUinput() (*Uinput, error) {
	fd, err := unix.Open("/dev/uinput", unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open /dev/uinput: %v", ErrNotAvailable, err)
	}

	if err := setupDevice(fd); err != nil {
		unix.Close(fd)
		return nil, err
	}

	debug.Log("keys", "uinput device created (fd %d)", fd)
	time.Sleep(settle)
	return &Uinput{fd: fd}, nil
}

func setupDevice(fd int) error {
	if err := unix.IoctlSetInt(fd, uiSetEvBit, evKey); err != nil {
		return fmt.Errorf("uinput UI_SET_EVBIT: %w", err)
	}
	for _, code := range AllCodes() {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, int(code)); err != nil {
			return fmt.Errorf("uinput UI_SET_KEYBIT %d: %w", code, err)
		}
	}

	setup := uinputSetup{Bustype: busUSB, Vendor: 0x1209, Product: 0x4d4b, Version: 1}
	copy(setup.Name[:], "go-midikeys virtual keyboard")
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uiDevSetup, uintptr(unsafe.Pointer(&setup))); errno != 0 {
		return fmt.Errorf("uinput UI_DEV_SETUP: %w", errno)
	}
	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		return fmt.Errorf("uinput UI_DEV_CREATE: %w", err)
	}
	return nil
}

func (u *Uinput) Press(c Chord) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.fd < 0 {
		return fmt.Errorf("%w: uinput closed", ErrNotAvailable)
	}
	if _, err := unix.Write(u.fd, encodeChord(c)); err != nil {
		return fmt.Errorf("uinput write %s: %w", c, err)
	}
	return nil
}

func (u *Uinput) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.fd < 0 {
		return nil
	}
	unix.IoctlSetInt(u.fd, uiDevDestroy, 0)
	err := unix.Close(u.fd)
	u.fd = -1
	return err
}

// encodeChord builds the event stream for one tap of c. Each press and
// release is followed by a SYN_REPORT so the key-down frame is seen before
// the key-up frame.
func encodeChord(c Chord) []byte {
	var buf bytes.Buffer
	write := func(typ, code uint16, value int32) {
		binary.Write(&buf, binary.NativeEndian, inputEvent{Type: typ, Code: code, Value: value})
	}

	codes := c.Codes()
	for _, code := range codes {
		write(evKey, code, keyDown)
		write(evSyn, synReport, 0)
	}
	for i := len(codes) - 1; i >= 0; i-- {
		write(evKey, codes[i], keyUp)
		write(evSyn, synReport, 0)
	}
	return buf.Bytes()
}
