package mikey

import "github.com/golynx/golynx/lynx/addr"

// timerBase and audioBase give each timer/channel's register block a
// fixed 4/8-byte stride so the dispatch below can compute the target
// index instead of listing all 64 addresses by hand.
const (
	timerBase = addr.TIM0BKUP
	timerEnd  = addr.TIM7CTLB
	audioBase = addr.AUD0VOL
	audioEnd  = addr.AUD3MISC
)

func (m *Mikey) readTimerOrAudio(address uint16) (uint8, bool) {
	if address >= timerBase && address <= timerEnd {
		t := &m.Timers[(address-timerBase)/4]
		switch (address - timerBase) % 4 {
		case 0:
			return t.Backup, true
		case 1:
			return t.ControlA, true
		case 2:
			return t.Counter, true
		case 3:
			return t.ControlB, true
		}
	}
	if address >= audioBase && address <= audioEnd {
		a := &m.Audio[(address-audioBase)/8]
		switch (address - audioBase) % 8 {
		case 0:
			return uint8(a.Volume), true
		case 1:
			return a.Feedback, true
		case 2:
			return uint8(a.Output), true
		case 3:
			return a.LfsrLow, true
		case 4:
			return a.Backup, true
		case 5:
			return a.Control, true
		case 6:
			return a.Counter, true
		case 7:
			return a.Other, true
		}
	}
	switch address {
	case addr.ATTEN_A, addr.ATTEN_B, addr.ATTEN_C, addr.ATTEN_D, addr.MPAN, addr.MSTEREO:
		return 0, true // stereo attenuation/panning: accepted, not modeled (mono mixdown)
	}
	return 0, false
}

func (m *Mikey) writeTimerOrAudio(address uint16, v uint8) bool {
	if address >= timerBase && address <= timerEnd {
		t := &m.Timers[(address-timerBase)/4]
		switch (address - timerBase) % 4 {
		case 0:
			t.Backup = v
		case 1:
			t.ControlA = v
		case 2:
			t.Counter = v
		case 3:
			t.ControlB = v
		}
		return true
	}
	if address >= audioBase && address <= audioEnd {
		a := &m.Audio[(address-audioBase)/8]
		switch (address - audioBase) % 8 {
		case 0:
			a.Volume = int8(v)
		case 1:
			a.Feedback = v
		case 2:
			a.Output = int8(v)
		case 3:
			a.LfsrLow = v
		case 4:
			a.Backup = v
		case 5:
			a.Control = v
		case 6:
			a.Counter = v
		case 7:
			a.Other = v
		}
		return true
	}
	switch address {
	case addr.ATTEN_A, addr.ATTEN_B, addr.ATTEN_C, addr.ATTEN_D, addr.MPAN, addr.MSTEREO:
		return true
	}
	return false
}
