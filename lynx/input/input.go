// Package input maps the logical key set the façade exposes to callers
// (directions, the two face buttons, the two option switches and pause)
// onto the JOYSTICK/SWITCHES bytes Suzy serves as read-only registers.
package input

import (
	"encoding/binary"
	"io"
)

// Key enumerates every button the façade accepts through KeyPressed /
// KeyReleased.
type Key uint8

const (
	Up Key = iota
	Down
	Left
	Right
	ButtonA
	ButtonB
	Option1
	Option2
	Pause
)

// bitFor maps a Key to its position in the 16-bit internal state word: the
// low byte is JOYSTICK, the high byte is SWITCHES. The low-byte layout
// (directions + A/B + the two option switches) and Pause living alone in
// SWITCHES bit 0 follows the reference core's ReadJoystick/ReadSwitches
// split (low byte vs high byte of one word) without the reference's own
// per-bit key constants, which weren't available to copy.
func bitFor(k Key) uint16 {
	switch k {
	case Up:
		return 1 << 0
	case Down:
		return 1 << 1
	case Left:
		return 1 << 2
	case Right:
		return 1 << 3
	case ButtonA:
		return 1 << 4
	case ButtonB:
		return 1 << 5
	case Option1:
		return 1 << 6
	case Option2:
		return 1 << 7
	case Pause:
		return 1 << 8
	}
	return 0
}

// Input is the joystick/switches latch. State is a plain bitmask; Suzy
// reads it through ReadJoystick/ReadSwitches on every JOYSTICK/SWITCHES
// access, there is no edge buffering.
type Input struct {
	state      uint16
	rotation   rotationMode
}

type rotationMode uint8

const (
	RotationNone rotationMode = iota
	RotationLeft
	RotationRight
)

// New returns an Input with every key released.
func New() *Input { return &Input{} }

// Reset releases every key.
func (in *Input) Reset() { in.state = 0 }

// SetRotation reconfigures directional remapping to match the cartridge
// header's rotation byte: a cartridge physically rotated in its case
// swaps which directional keys the player perceives as up/down/left/right.
func (in *Input) SetRotation(mode rotationMode) { in.rotation = mode }

// KeyPressed latches a key down.
func (in *Input) KeyPressed(k Key) { in.state |= bitFor(in.mapDirectional(k)) }

// KeyReleased latches a key up.
func (in *Input) KeyReleased(k Key) { in.state &^= bitFor(in.mapDirectional(k)) }

// mapDirectional rotates directional keys per the cartridge's physical
// rotation; non-directional keys pass through unchanged.
func (in *Input) mapDirectional(k Key) Key {
	if in.rotation == RotationNone {
		return k
	}
	cw := map[Key]Key{Up: Right, Right: Down, Down: Left, Left: Up}
	ccw := map[Key]Key{Up: Left, Left: Down, Down: Right, Right: Up}
	switch in.rotation {
	case RotationRight:
		if m, ok := cw[k]; ok {
			return m
		}
	case RotationLeft:
		if m, ok := ccw[k]; ok {
			return m
		}
	}
	return k
}

// ReadJoystick returns the low byte Suzy serves at $FCB0.
func (in *Input) ReadJoystick() uint8 { return uint8(in.state) }

// ReadSwitches returns the high byte Suzy serves at $FCB1.
func (in *Input) ReadSwitches() uint8 { return uint8(in.state >> 8) }

// SaveState writes the latched button state and the active rotation mode.
func (in *Input) SaveState(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, in.state); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, in.rotation)
}

// LoadState restores button state and rotation mode from r.
func (in *Input) LoadState(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &in.state); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, &in.rotation)
}
