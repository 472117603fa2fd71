package mikey

import (
	"testing"

	"github.com/golynx/golynx/lynx/addr"
	"github.com/golynx/golynx/lynx/bus"
	"github.com/stretchr/testify/require"
)

type flatRam [0x10000]uint8

func (r *flatRam) Read(a uint16) uint8 { return r[a] }

func newTestMikey() (*Mikey, *flatRam) {
	ram := &flatRam{}
	b := bus.New()
	return New(ram, b), ram
}

func TestTimerBorrowAdvancesLinkedSuccessor(t *testing.T) {
	m, _ := newTestMikey()
	// Timer 0: enabled, reload, prescaler index 0 (16 cycles/tick), backup 0.
	m.Write(addr.TIM0BKUP, 0)
	m.Write(addr.TIM0CTLA, ctlAEnable|ctlAReload)

	m.Clock(16)

	require.NotZero(t, m.Timers[0].ControlB&ctlBBorrowOut)
	// Timer 0 forwards to timer 2 (forward-link table).
	require.Equal(t, 1, m.Timers[2].pendingTick)
}

// TestAudioLFSRHasPeriod4095 checks that the standard tone-generator tap
// set (feedback=0x87, taps at bits {0,1,2,11}) is maximal: clocking the
// 12-bit LFSR 4095 times from any nonzero seed returns it to that seed,
// and no smaller clock count does.
func TestAudioLFSRHasPeriod4095(t *testing.T) {
	m, _ := newTestMikey()
	ch := &m.Audio[0]
	ch.Feedback = 0x87
	ch.Control = 0
	ch.setLfsr(1)

	seed := ch.lfsr()
	for n := 1; n <= 4095; n++ {
		ch.clockLFSR()
		if ch.lfsr() == seed {
			require.Equal(t, 4095, n, "LFSR returned to seed after %d clocks, want period 4095", n)
			return
		}
	}
	t.Fatal("LFSR never returned to seed within 4095 clocks")
}

func TestIntrstClearsOnlyWrittenBits(t *testing.T) {
	m, _ := newTestMikey()
	m.IntPending = 0b0000_1111
	m.Write(addr.INTRST, 0b0000_0101)
	require.Equal(t, uint8(0b0000_1010), m.IntPending)
}

func TestHorizontalBlankAdvancesLineAndVerticalBlankLatchesFrame(t *testing.T) {
	m, _ := newTestMikey()
	m.onHorizontalBlank()
	require.Equal(t, 1, m.video.line)

	m.onVerticalBlank()
	require.True(t, m.FrameReady)
	require.Equal(t, 0, m.video.line)
}

func TestColorDACRoundTrip(t *testing.T) {
	m, _ := newTestMikey()
	m.Write(addr.GreenBase+3, 0x0A)
	m.Write(addr.BlueRedBase+3, 0xB5)
	require.Equal(t, uint16(0x0AB5), m.Palette[3])
}

func TestUARTTransmitCompletesAndRaisesIRQ(t *testing.T) {
	m, _ := newTestMikey()
	m.Write(addr.SERCTL, serCtlTxIRQEnable)
	m.Write(addr.SERDAT, 0x55)
	require.True(t, m.uart.txBusy)

	for i := 0; i < 10; i++ {
		m.onUARTBaudTick()
	}
	require.False(t, m.uart.txBusy)
	require.NotZero(t, m.IntPending&(1<<4))
}
