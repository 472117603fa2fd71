package mikey

import (
	"encoding/binary"
	"io"
)

// SERCTL bit layout (write side configures, read side reports status).
const (
	serCtlTxIRQEnable = 1 << 7
	serCtlRxIRQEnable = 1 << 6
	serCtlParEn       = 1 << 4
)

// uartPhase tracks TX/RX framing: start bit, 8 data bits, optional
// parity, stop bit.
type uartPhase int

const (
	uartIdle uartPhase = iota
	uartStart
	uartData
	uartParity
	uartStop
)

type uartState struct {
	txPhase uartPhase
	txByte  uint8
	txBit   int
	txBusy  bool

	rxByte   uint8
	rxReady  bool
	parErr   bool
	ovrErr   bool
	framErr  bool
	parEn    bool
}

func (m *Mikey) readSerCtl() uint8 {
	v := uint8(0)
	if !m.uart.txBusy {
		v |= 1 << 7 // TX ready/done
	}
	if m.uart.rxReady {
		v |= 1 << 6
	}
	if m.uart.parErr {
		v |= 1 << 2
	}
	if m.uart.ovrErr {
		v |= 1 << 1
	}
	if m.uart.framErr {
		v |= 1 << 0
	}
	return v | m.SerCtl&(serCtlTxIRQEnable|serCtlRxIRQEnable|serCtlParEn)
}

func (m *Mikey) writeSerCtl(v uint8) {
	m.SerCtl = v
	m.uart.parEn = v&serCtlParEn != 0
	if v&0x08 != 0 { // reset error latches
		m.uart.parErr, m.uart.ovrErr, m.uart.framErr = false, false, false
	}
}

// writeSerDat begins a TX frame; per-bit advancement is clocked by
// onUARTBaudTick, driven by timer 4's done events (its baud clock).
func (m *Mikey) writeSerDat(v uint8) {
	m.SerDat = v
	m.uart.txByte = v
	m.uart.txPhase = uartStart
	m.uart.txBit = 0
	m.uart.txBusy = true
}

// clockUART has no free-running work of its own; every bit transition is
// driven by timer 4's baud-rate done event instead.
func (m *Mikey) clockUART(deltaCycles uint32) {}

// onUARTBaudTick advances the TX state machine by one bit time, called
// from timer 4's done handler; timer 4 has no IRQ of its own and exists
// only to drive the UART's baud clock.
func (m *Mikey) onUARTBaudTick() {
	if !m.uart.txBusy {
		return
	}
	switch m.uart.txPhase {
	case uartStart:
		m.uart.txPhase = uartData
	case uartData:
		m.uart.txBit++
		if m.uart.txBit >= 8 {
			if m.uart.parEn {
				m.uart.txPhase = uartParity
			} else {
				m.uart.txPhase = uartStop
			}
		}
	case uartParity:
		m.uart.txPhase = uartStop
	case uartStop:
		m.uart.txBusy = false
		m.uart.txPhase = uartIdle
		if m.SerCtl&serCtlTxIRQEnable != 0 {
			m.IntPending |= 1 << 4
			m.recomputeIRQ()
		}
	}
}

// saveState writes the TX/RX framing state machine.
func (u *uartState) saveState(w io.Writer) error {
	fields := []any{
		int32(u.txPhase), u.txByte, int32(u.txBit), u.txBusy,
		u.rxByte, u.rxReady, u.parErr, u.ovrErr, u.framErr, u.parEn,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return nil
}

// loadState restores uartState from r.
func (u *uartState) loadState(r io.Reader) error {
	var txPhase, txBit int32
	targets := []any{
		&txPhase, &u.txByte, &txBit, &u.txBusy,
		&u.rxByte, &u.rxReady, &u.parErr, &u.ovrErr, &u.framErr, &u.parEn,
	}
	for _, t := range targets {
		if err := binary.Read(r, binary.LittleEndian, t); err != nil {
			return err
		}
	}
	u.txPhase, u.txBit = uartPhase(txPhase), int(txBit)
	return nil
}
