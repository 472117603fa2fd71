// Package mikey implements the timer/audio lattice, IRQ controller,
// LCD DMA scheduler, color DAC and UART of the Mikey custom chip, mapped
// at $FD00-$FDFF.
package mikey

import (
	"encoding/binary"
	"io"
)

// control_a bit layout, shared by timers and audio channels.
const (
	ctlAIRQEnable = 1 << 7
	ctlAReload    = 1 << 4
	ctlAEnable    = 1 << 3
	ctlAPrescaler = 0x07
)

// control_b bit layout.
const (
	ctlBBorrowOut = 1 << 0
	ctlBBorrowIn  = 1 << 1
	ctlBLastClock = 1 << 2
	ctlBDone      = 1 << 3
)

// prescalerCycles maps a timer's control_a[2:0] index to host cycles per
// tick; index 7 means "linked", driven entirely by the predecessor's
// borrow-out instead of a free-running accumulator.
var prescalerCycles = [7]uint32{16, 32, 64, 128, 256, 512, 1024}

// timerForwardLinks routes a timer's borrow-out to its successor; -1
// marks the UART sink (timer 4), and 8 is the sentinel for "route to
// audio stage 0" used by timer 7.
var timerForwardLinks = [8]int{2, 3, 4, 5, -1, 7, -1, 8}

// audioForwardLinks routes an audio channel's borrow-out; -1 marks audio
// channel 3's link back to timer 1, handled as a special case since it
// crosses from the audio array back into the timer array.
var audioForwardLinks = [4]int{1, 2, 3, -1}

// Timer is one of Mikey's eight countdown stages.
type Timer struct {
	Backup   uint8
	ControlA uint8
	Counter  uint8
	ControlB uint8

	accum       uint32
	pendingTick int
}

func (t *Timer) enabled() bool  { return t.ControlA&ctlAEnable != 0 }
func (t *Timer) oneShot() bool  { return t.ControlA&ctlAReload == 0 }
func (t *Timer) linked() bool   { return t.ControlA&ctlAPrescaler == 0x07 }
func (t *Timer) period() uint32 { return prescalerCycles[t.ControlA&ctlAPrescaler] }

// update advances one timer by deltaCycles host cycles, delivering any
// borrow-out ticks to its linked successor via deliver. onDone is called
// with the timer's index on every underflow; the caller raises the IRQ
// when the IRQ-enable bit is set and the timer is not timer 4 (the UART
// baud clock, whose done events feed the UART state machine instead).
func (t *Timer) update(index int, deltaCycles uint32, deliver func(successor int), onDone func(index int)) {
	if !t.enabled() {
		return
	}

	t.ControlB &^= ctlBBorrowOut | ctlBBorrowIn | ctlBLastClock
	if t.ControlA&0x40 != 0 {
		t.ControlB &^= ctlBDone
	}

	if t.oneShot() && t.ControlB&ctlBDone != 0 {
		return
	}

	var ticks int
	if !t.linked() {
		period := t.period()
		t.accum += deltaCycles
		ticks = int(t.accum / period)
		t.accum %= period
	} else {
		ticks = t.pendingTick
		t.pendingTick = 0
	}

	if ticks > 0 {
		t.ControlB |= ctlBBorrowIn
	}

	for i := 0; i < ticks; i++ {
		if t.Counter > 0 {
			t.Counter--
			if t.Counter == 0 {
				t.ControlB |= ctlBLastClock
			}
			continue
		}

		t.ControlB |= ctlBBorrowOut
		deliver(timerForwardLinks[index])
		if !t.oneShot() {
			t.Counter = t.Backup
		}
		t.ControlB |= ctlBDone
		onDone(index)
		if t.oneShot() {
			break
		}
	}
}

// saveState writes the four architectural registers plus the fractional
// prescaler accumulator and pending-borrow flag.
func (t *Timer) saveState(w io.Writer) error {
	fields := []any{t.Backup, t.ControlA, t.Counter, t.ControlB, t.accum, int32(t.pendingTick)}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return nil
}

// loadState restores a Timer from r.
func (t *Timer) loadState(r io.Reader) error {
	var pending int32
	targets := []any{&t.Backup, &t.ControlA, &t.Counter, &t.ControlB, &t.accum, &pending}
	for _, tgt := range targets {
		if err := binary.Read(r, binary.LittleEndian, tgt); err != nil {
			return err
		}
	}
	t.pendingTick = int(pending)
	return nil
}
