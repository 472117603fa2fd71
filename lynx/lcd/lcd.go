// Package lcd translates Mikey's 12-bit internal scanline buffer into a
// host-facing pixel format, optionally transposing for cartridge
// rotation.
package lcd

import "github.com/golynx/golynx/lynx/display"

// Screen owns the host-facing framebuffer plus the pixel format it was
// built for; core.Init picks the format once per session.
type Screen struct {
	Format   display.PixelFormat
	Buffer   []uint8
	rotation display.Rotation
}

// NewScreen allocates a buffer sized for the given format at native
// 160x102 resolution (pre-rotation).
func NewScreen(format display.PixelFormat) *Screen {
	bytesPerPixel := display.RGBABytesPerPixel
	if format == display.PixelFormatRGB565 {
		bytesPerPixel = display.RGB565BytesPerPixel
	}
	return &Screen{
		Format: format,
		Buffer: make([]uint8, display.ScreenWidth*display.ScreenHeight*bytesPerPixel),
	}
}

// Translate converts a 12-bit-per-pixel internal scanline buffer
// (packed (G<<8)|(B<<4)|R) into the host format, applying rotation.
func (s *Screen) Translate(internal []uint16, rotation display.Rotation) {
	s.rotation = rotation
	w, h := translatedDimensions(rotation)
	switch s.Format {
	case display.PixelFormatRGB565:
		s.translateRGB565(internal, rotation, w, h)
	default:
		s.translateRGBA8888(internal, rotation, w, h)
	}
}

// Dimensions returns the width/height of the most recent Translate call's
// output (native 160x102 before any rotation has been applied yet).
func (s *Screen) Dimensions() (int, int) {
	return translatedDimensions(s.rotation)
}

func translatedDimensions(rotation display.Rotation) (int, int) {
	if rotation == display.RotationLeft || rotation == display.RotationRight {
		return display.ScreenHeight, display.ScreenWidth
	}
	return display.ScreenWidth, display.ScreenHeight
}

// rotatedIndex maps a destination (x,y) in the rotated frame back to the
// source index in the native 160x102 buffer.
func rotatedIndex(x, y int, rotation display.Rotation) int {
	switch rotation {
	case display.RotationLeft:
		// 90 deg CCW: dst(x,y) <- src(y, height-1-x)
		srcX := y
		srcY := display.ScreenHeight - 1 - x
		return srcY*display.ScreenWidth + srcX
	case display.RotationRight:
		// 90 deg CW: dst(x,y) <- src(width-1-y, x)
		srcX := display.ScreenWidth - 1 - y
		srcY := x
		return srcY*display.ScreenWidth + srcX
	default:
		return y*display.ScreenWidth + x
	}
}

func decode12(c uint16) (r, g, b uint8) {
	g = uint8(c >> 8 & 0x0F)
	b = uint8(c >> 4 & 0x0F)
	r = uint8(c & 0x0F)
	return
}

func (s *Screen) translateRGBA8888(internal []uint16, rotation display.Rotation, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r4, g4, b4 := decode12(internal[rotatedIndex(x, y, rotation)])
			r := r4<<4 | r4
			g := g4<<4 | g4
			b := b4<<4 | b4
			off := (y*w + x) * display.RGBABytesPerPixel
			s.Buffer[off] = r
			s.Buffer[off+1] = g
			s.Buffer[off+2] = b
			s.Buffer[off+3] = 0xFF
		}
	}
}

func (s *Screen) translateRGB565(internal []uint16, rotation display.Rotation, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r4, g4, b4 := decode12(internal[rotatedIndex(x, y, rotation)])
			r5 := uint16(r4) << 1
			g6 := uint16(g4) << 2
			b5 := uint16(b4) << 1
			packed := r5<<display.RGB565RShift | g6<<display.RGB565GShift | b5
			off := (y*w + x) * display.RGB565BytesPerPixel
			s.Buffer[off] = uint8(packed)
			s.Buffer[off+1] = uint8(packed >> 8)
		}
	}
}
