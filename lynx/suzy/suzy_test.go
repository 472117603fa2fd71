package suzy

import (
	"testing"

	"github.com/golynx/golynx/lynx/addr"
	"github.com/golynx/golynx/lynx/bus"
	"github.com/golynx/golynx/lynx/display"
	"github.com/stretchr/testify/require"
)

type flatRam [0x10000]uint8

func (r *flatRam) Read(a uint16) uint8     { return r[a] }
func (r *flatRam) Write(a uint16, v uint8) { r[a] = v }

type stubJoystick struct{}

func (stubJoystick) ReadJoystick() uint8 { return 0 }
func (stubJoystick) ReadSwitches() uint8 { return 0 }

type stubCart struct{}

func (stubCart) ReadCart0() uint8 { return 0xFF }
func (stubCart) ReadCart1() uint8 { return 0xFF }

func newTestSuzy() (*Suzy, *flatRam) {
	ram := &flatRam{}
	b := bus.New()
	return New(ram, b, stubJoystick{}, stubCart{}), ram
}

func TestMultiplyUnsigned(t *testing.T) {
	s, _ := newTestSuzy()
	s.Write(addr.MATHD, 0x00) // CD low, clears C (harmless)
	s.Write(addr.MATHC, 0x02) // CD = 0x0200
	s.Write(addr.MATHB, 0x00) // AB low, clears A (harmless)
	s.Write(addr.MATHA, 0x03) // AB = 0x0300, kicks multiply

	result := uint32(s.Read(addr.MATHE))<<24 | uint32(s.Read(addr.MATHF))<<16 |
		uint32(s.Read(addr.MATHG))<<8 | uint32(s.Read(addr.MATHH))
	require.Equal(t, uint32(0x0300)*uint32(0x0200), result)
}

func TestDivideByZeroSetsAllOnesAndMathBit(t *testing.T) {
	s, _ := newTestSuzy()
	s.Write(addr.MATHH, 0x01)
	s.Write(addr.MATHG, 0)
	s.Write(addr.MATHF, 0)
	s.Write(addr.MATHE, 0)
	s.Write(addr.MATHP, 0x00)
	s.Write(addr.MATHN, 0x00) // divisor 0, kicks divide

	require.Equal(t, uint8(0xFF), s.Read(addr.MATHA))
	require.Equal(t, uint8(0xFF), s.Read(addr.MATHB))
	require.Equal(t, uint8(0xFF), s.Read(addr.MATHC))
	require.Equal(t, uint8(0xFF), s.Read(addr.MATHD))
	sprsys := s.sprsysRead()
	require.NotZero(t, sprsys&(1<<3))
}

func TestDivideRoundTrip(t *testing.T) {
	s, _ := newTestSuzy()
	dividend := uint32(1000)
	s.Write(addr.MATHH, uint8(dividend))
	s.Write(addr.MATHG, uint8(dividend>>8))
	s.Write(addr.MATHF, uint8(dividend>>16))
	s.Write(addr.MATHE, uint8(dividend>>24))
	s.Write(addr.MATHP, 7)
	s.Write(addr.MATHN, 0)

	quotient := uint32(s.Read(addr.MATHA))<<24 | uint32(s.Read(addr.MATHB))<<16 |
		uint32(s.Read(addr.MATHC))<<8 | uint32(s.Read(addr.MATHD))
	remainder := uint16(s.Read(addr.MATHL))<<8 | uint16(s.Read(addr.MATHM))
	require.Equal(t, uint32(142), quotient)
	require.Equal(t, uint16(6), remainder)
}

// buildSCB writes a minimal single-pixel sprite control block at base,
// with one scanline containing a single literal pen-1 pixel and an
// end-of-sprite line header.
func buildSCB(ram *flatRam, base, dataPtr uint16, hpos, vpos uint16) {
	ram.Write(base+0, 0x00) // SPRCTL0: bpp=1
	ram.Write(base+1, 0x80) // SPRCTL1: literal-only
	ram.Write(base+2, 0)    // SPRCOLL
	ram.Write(base+3, 0)    // next SCB low
	ram.Write(base+4, 0)    // next SCB high (0 -> terminates the list)
	ram.Write(base+5, uint8(dataPtr))
	ram.Write(base+6, uint8(dataPtr>>8))
	ram.Write(base+7, uint8(hpos))
	ram.Write(base+8, uint8(hpos>>8))
	ram.Write(base+9, uint8(vpos))
	ram.Write(base+10, uint8(vpos>>8))
	for i := uint16(0); i < 8; i++ {
		ram.Write(base+19+i, 0x11) // pen map: both nibbles -> pen 1
	}

	// One scanline: offset=2 points past the header+data byte to a
	// terminator line whose own offset=0 trips the malformed-data guard
	// and ends the sprite without drawing a line for it.
	ram.Write(dataPtr, 2)
	ram.Write(dataPtr+1, 0x80) // top bit set -> first pixel is pen index 1
	ram.Write(dataPtr+2, 0)    // terminator
}

func TestDrawSpriteSinglePixel(t *testing.T) {
	s, ram := newTestSuzy()
	const scbBase = 0x3000
	const dataPtr = 0x3100
	buildSCB(ram, scbBase, dataPtr, 10, 5)

	s.ScbNext.setValue(scbBase)
	s.VidBas.setValue(0x2000)

	s.Write(addr.SPRGO, 0x01)

	rowBytes := uint16(80)
	address := 0x2000 + 5*rowBytes + 10/2
	got := ram.Read(address)
	require.Equal(t, uint8(0x10), got) // pen 1 in the high nibble (even x)
	require.Equal(t, uint16(0), s.ScbNext.value())
}

// TestDrawPixelClipsOutsideVisibleFrame checks that a pixel whose
// HOFF/VOFF-adjusted coordinate falls outside the 160x102 frame is
// silently dropped rather than wrapping or corrupting adjacent VRAM.
func TestDrawPixelClipsOutsideVisibleFrame(t *testing.T) {
	s, ram := newTestSuzy()
	s.VidBas.setValue(0x2000)

	for i := range ram {
		ram[i] = 0
	}

	s.drawPixel(-1, 0, 1)             // x out of range to the left
	s.drawPixel(display.ScreenWidth, 0, 1) // x out of range to the right
	s.drawPixel(0, -1, 1)             // y out of range above
	s.drawPixel(0, display.ScreenHeight, 1) // y out of range below

	for i := range ram {
		require.Zerof(t, ram[i], "VRAM byte %#x was written by an out-of-frame pixel", i)
	}
}

// TestDrawPixelPenZeroIsTransparent checks pen index 0 never writes to
// VRAM, regardless of coordinate.
func TestDrawPixelPenZeroIsTransparent(t *testing.T) {
	s, ram := newTestSuzy()
	s.VidBas.setValue(0x2000)
	ram.Write(0x2000, 0xAB) // pre-existing content the transparent write must not disturb

	s.drawPixel(0, 0, 0)

	require.Equal(t, uint8(0xAB), ram.Read(0x2000))
}
