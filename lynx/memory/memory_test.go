package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/golynx/golynx/lynx/addr"
)

type stubChip struct {
	reads  map[uint16]uint8
	writes map[uint16]uint8
}

func newStubChip() *stubChip {
	return &stubChip{reads: map[uint16]uint8{}, writes: map[uint16]uint8{}}
}

func (s *stubChip) Read(a uint16) uint8      { return s.reads[a] }
func (s *stubChip) Write(a uint16, v uint8) { s.writes[a] = v }

func TestMAPCTLRoundTrip(t *testing.T) {
	m := New()
	m.Write(addr.MAPCTL, 0x55)
	require.Equal(t, uint8(0x55), m.Read(addr.MAPCTL))
	require.Equal(t, uint8(0x55), m.MapCtl())
}

func TestSuzyVisibilityToggle(t *testing.T) {
	m := New()
	suzy := newStubChip()
	suzy.reads[0xFC80] = 0x42
	m.Suzy = suzy

	m.SetMapCtl(0x00) // bit0 clear: Suzy visible
	require.Equal(t, uint8(0x42), m.Read(0xFC80))

	m.SetMapCtl(0x01) // bit0 set: Suzy hidden, RAM shows through
	m.Write(0xFC80, 0x99)
	require.Equal(t, uint8(0x99), m.Read(0xFC80))
}

func TestBiosVisibilityAndWriteThrough(t *testing.T) {
	m := New()
	bios := make([]uint8, 512)
	bios[0] = 0xEA
	require.NoError(t, m.LoadBIOS(bios))

	m.SetMapCtl(0x00) // bit2 clear: BIOS visible
	require.Equal(t, uint8(0xEA), m.Read(0xFE00))

	m.Write(0xFE00, 0x11) // writes always land in RAM even when BIOS is visible
	require.Equal(t, uint8(0xEA), m.Read(0xFE00))

	m.SetMapCtl(0x04) // bit2 set: BIOS hidden
	require.Equal(t, uint8(0x11), m.Read(0xFE00))
}

func TestLastPageVectorsAndUnusedByte(t *testing.T) {
	m := New()
	bios := make([]uint8, 512)
	bios[0x1FE] = 0xAB // $FFFE, last byte of the 512-byte image
	bios[0x1FF] = 0xCD
	require.NoError(t, m.LoadBIOS(bios))

	m.SetMapCtl(0x00) // bit3 clear: vectors visible from BIOS
	require.Equal(t, uint8(0xAB), m.Read(0xFFFE))
	require.Equal(t, uint8(0xCD), m.Read(0xFFFF))

	m.Write(0xFFF8, 0x7A)
	require.Equal(t, uint8(0x7A), m.Read(0xFFF8))

	m.SetMapCtl(0x08) // bit3 set: vectors hidden, RAM shows through
	m.Write(0xFFFE, 0x01)
	require.Equal(t, uint8(0x01), m.Read(0xFFFE))
}

func TestWritesToVisibleChipPagesBypassRAM(t *testing.T) {
	m := New()
	m.Suzy = newStubChip()
	m.Mikey = newStubChip()
	m.SetMapCtl(0x00) // everything routed to chips/BIOS, not RAM

	m.Write(0xFC10, 0x77)
	m.Write(0xFD10, 0x88)
	require.Equal(t, uint8(0x00), m.ram[0xFC10]) // Suzy page routes writes to the chip, not RAM
	require.Equal(t, uint8(0x00), m.ram[0xFD10])
}
