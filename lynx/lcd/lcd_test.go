package lcd

import (
	"testing"

	"github.com/golynx/golynx/lynx/display"
	"github.com/stretchr/testify/require"
)

func TestTranslateRGBA8888NoRotation(t *testing.T) {
	internal := make([]uint16, display.ScreenWidth*display.ScreenHeight)
	internal[5] = 0x0F00 | 0x00 // green=0xF, blue=0, red=0
	s := NewScreen(display.PixelFormatRGBA8888)
	s.Translate(internal, display.RotationNone)

	off := 5 * display.RGBABytesPerPixel
	require.Equal(t, uint8(0x00), s.Buffer[off])   // red
	require.Equal(t, uint8(0xFF), s.Buffer[off+1]) // green
	require.Equal(t, uint8(0x00), s.Buffer[off+2]) // blue
	require.Equal(t, uint8(0xFF), s.Buffer[off+3]) // alpha
}

func TestTranslateRotationSwapsDimensions(t *testing.T) {
	internal := make([]uint16, display.ScreenWidth*display.ScreenHeight)
	s := NewScreen(display.PixelFormatRGB565)
	s.Translate(internal, display.RotationLeft)
	require.Len(t, s.Buffer, display.ScreenWidth*display.ScreenHeight*display.RGB565BytesPerPixel)
	w, h := s.Dimensions()
	require.Equal(t, display.ScreenHeight, w)
	require.Equal(t, display.ScreenWidth, h)
}
