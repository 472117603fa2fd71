package mikey

import (
	"encoding/binary"
	"io"

	"github.com/golynx/golynx/lynx/display"
)

// videoState is the scanline-paced DMA/pixel emitter: ten 8-byte bursts
// per line feed a 32-nibble circular buffer that a pixel emitter drains
// one nibble every 12 host cycles, translating through the 16-entry
// palette into the 160x102 screen buffer.
type videoState struct {
	line      int
	burst     int
	nibbles   [32]uint8
	nibbleLen int
	nibbleOut int
	pixelX    int
	pixelAccum uint32

	Screen [display.ScreenWidth * display.ScreenHeight]uint16 // 12-bit palette colors
}

const pixelPeriod = 12

// Screen returns the native 160x102 12-bit-per-pixel scanline buffer the
// video emitter writes into; lcd.Screen.Translate consumes it once per
// completed frame.
func (m *Mikey) Screen() []uint16 { return m.video.Screen[:] }

// clockVideo paces DMA bursts and pixel emission for deltaCycles host
// cycles. Line/frame advancement itself is driven by timer 0/timer 2
// borrow-outs (onHorizontalBlank/onVerticalBlank), not by this method;
// this only emits pixels from whatever has already been DMA'd this line.
func (m *Mikey) clockVideo(deltaCycles uint32) {
	if m.DispCtl&0x01 == 0 {
		return
	}
	m.video.pixelAccum += deltaCycles
	for m.video.pixelAccum >= pixelPeriod {
		m.video.pixelAccum -= pixelPeriod
		m.emitPixel()
	}
}

func (m *Mikey) emitPixel() {
	v := &m.video
	if v.pixelX >= display.ScreenWidth {
		return
	}
	if v.nibbleOut >= v.nibbleLen {
		m.dmaBurst()
		if v.nibbleOut >= v.nibbleLen {
			return
		}
	}
	pen := v.nibbles[v.nibbleOut]
	v.nibbleOut++
	color := m.Palette[pen&0x0F]
	if v.line >= 0 && v.line < display.ScreenHeight {
		v.Screen[v.line*display.ScreenWidth+v.pixelX] = color
	}
	v.pixelX++
}

// dmaBurst reads the next 8-byte burst (16 pens) from display RAM into
// the circular nibble buffer, high nibble first per byte.
func (m *Mikey) dmaBurst() {
	v := &m.video
	if v.burst >= 10 {
		return
	}
	base := m.DispAdr + uint16(v.line*80+v.burst*8)
	v.nibbleLen = 0
	v.nibbleOut = 0
	for i := 0; i < 8; i++ {
		b := m.Ram.Read(base + uint16(i))
		v.nibbles[v.nibbleLen] = (b >> 4) & 0x0F
		v.nibbleLen++
		v.nibbles[v.nibbleLen] = b & 0x0F
		v.nibbleLen++
	}
	v.burst++
}

// onHorizontalBlank is called on timer 0's borrow-out: blanks the
// finished line if DMA was disabled, then advances to the next line.
func (m *Mikey) onHorizontalBlank() {
	v := &m.video
	if m.DispCtl&0x01 == 0 && v.line >= 0 && v.line < display.ScreenHeight {
		row := v.Screen[v.line*display.ScreenWidth : v.line*display.ScreenWidth+display.ScreenWidth]
		for i := range row {
			row[i] = 0
		}
	}
	v.line++
	v.burst = 0
	v.pixelX = 0
	v.nibbleLen = 0
	v.nibbleOut = 0
}

// onVerticalBlank is called on timer 2's borrow-out: latches end of
// frame and resets the scanline counter back to the top.
func (m *Mikey) onVerticalBlank() {
	m.FrameReady = true
	m.video.line = 0
}

// saveState writes the DMA/pixel-pacing counters and the live 160x102
// screen buffer (the last fully-translated frame is owned by lcd.Screen,
// but the in-progress scanline buffer is architectural Mikey state).
func (v *videoState) saveState(w io.Writer) error {
	fields := []any{
		int32(v.line), int32(v.burst), v.nibbles, int32(v.nibbleLen),
		int32(v.nibbleOut), int32(v.pixelX), v.pixelAccum, v.Screen,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return nil
}

// loadState restores videoState from r.
func (v *videoState) loadState(r io.Reader) error {
	var line, burst, nibbleLen, nibbleOut, pixelX int32
	targets := []any{
		&line, &burst, &v.nibbles, &nibbleLen,
		&nibbleOut, &pixelX, &v.pixelAccum, &v.Screen,
	}
	for _, t := range targets {
		if err := binary.Read(r, binary.LittleEndian, t); err != nil {
			return err
		}
	}
	v.line, v.burst, v.nibbleLen, v.nibbleOut, v.pixelX = int(line), int(burst), int(nibbleLen), int(nibbleOut), int(pixelX)
	return nil
}
