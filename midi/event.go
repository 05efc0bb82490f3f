package midi

// MIDI status bytes (channel 1 forms; the low nibble carries the channel)
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
)

// Handler receives one raw device message. timestampms is the driver's
// millisecond delta clock and is informational only.
type Handler func(timestampms int32, msg []byte)

// StatusKind returns the message kind of a status byte with the channel
// nibble stripped.
func StatusKind(status uint8) uint8 {
	return status & 0xF0
}

// IsRelease reports whether msg is a key release. Only the exact channel-1
// note-off status (128) counts unless wide is set; then note-off on any
// channel and note-on with velocity 0 count as well.
func IsRelease(msg []byte, wide bool) bool {
	if len(msg) == 0 {
		return false
	}
	if msg[0] == NoteOff {
		return true
	}
	if !wide {
		return false
	}
	switch StatusKind(msg[0]) {
	case NoteOff:
		return true
	case NoteOn:
		return len(msg) >= 3 && msg[2] == 0
	}
	return false
}
