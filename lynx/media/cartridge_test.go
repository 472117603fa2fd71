package media

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildLynxHeader(bank0Size, bank1Size uint16) []uint8 {
	h := make([]uint8, headerSize)
	copy(h[0:4], lynxMagic)
	h[4] = uint8(bank0Size)
	h[5] = uint8(bank0Size >> 8)
	h[6] = uint8(bank1Size)
	h[7] = uint8(bank1Size >> 8)
	copy(h[10:42], []byte("TESTGAME"))
	return h
}

func TestLoadLynxCartridge(t *testing.T) {
	header := buildLynxHeader(256, 0)
	body := make([]uint8, 256)
	for i := range body {
		body[i] = uint8(i)
	}
	raw := append(header, body...)

	c, err := Load(raw)
	require.NoError(t, err)
	require.Equal(t, "TESTGAME", c.Header.Name)
	require.False(t, c.IsHomebrewImage())
	require.Len(t, c.Bank0, 256)
}

func TestLoadBS93Homebrew(t *testing.T) {
	raw := make([]uint8, 8+4)
	raw[0] = 0x00
	raw[1] = 0x02 // load address 0x0200
	raw[2] = 0x04
	raw[3] = 0x00 // size 4
	copy(raw[4:8], bs93Magic)
	copy(raw[8:], []byte{0xDE, 0xAD, 0xBE, 0xEF})

	c, err := Load(raw)
	require.NoError(t, err)
	require.True(t, c.IsHomebrewImage())
	require.Equal(t, uint16(0x0200), c.LoadAddress())
	require.Equal(t, []uint8{0xDE, 0xAD, 0xBE, 0xEF}, c.Bank0)
}

func TestUnrecognizedHeaderErrors(t *testing.T) {
	_, err := Load([]uint8{0, 1, 2, 3})
	require.Error(t, err)
}
