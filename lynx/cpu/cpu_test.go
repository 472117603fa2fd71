package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// flatBus is a 64KiB RAM-backed Bus used only by these tests; lynx/memory
// provides the real page-table implementation used by the core.
type flatBus struct {
	ram [65536]uint8
}

func (b *flatBus) Read(addr uint16) uint8     { return b.ram[addr] }
func (b *flatBus) Write(addr uint16, v uint8) { b.ram[addr] = v }

func newTestCPU(t *testing.T) (*CPU, *flatBus) {
	t.Helper()
	bus := &flatBus{}
	bus.ram[VectorReset] = 0x00
	bus.ram[VectorReset+1] = 0x02 // reset vector -> $0200
	c := New(bus)
	c.Reset()
	require.Equal(t, uint16(0x0200), c.State.PC)
	return c, bus
}

func TestCPUSmokeSequence(t *testing.T) {
	c, bus := newTestCPU(t)

	program := []uint8{0xA9, 0x42, 0x8D, 0x00, 0x20, 0x00} // LDA #$42 ; STA $2000 ; BRK
	for i, b := range program {
		bus.ram[0x0200+uint16(i)] = b
	}

	c.Step() // LDA #$42
	require.Equal(t, uint8(0x42), c.State.A)

	c.Step() // STA $2000
	require.Equal(t, uint8(0x42), bus.ram[0x2000])

	pBefore := c.State.P
	c.Step() // BRK

	pushedP := bus.ram[0x0100+uint16(c.State.S)+1]
	pushedPC := bytesToWord(bus.ram[0x0100+uint16(c.State.S)+3], bus.ram[0x0100+uint16(c.State.S)+2])

	require.Equal(t, uint16(0x0206), pushedPC)
	require.Equal(t, pBefore|Flag1|FlagB, pushedP)
	require.True(t, c.flag(FlagI))
}

func TestNZFlagLUT(t *testing.T) {
	c, _ := newTestCPU(t)

	c.setNZ(0)
	require.True(t, c.flag(FlagZ))
	require.False(t, c.flag(FlagN))

	c.setNZ(0x80)
	require.False(t, c.flag(FlagZ))
	require.True(t, c.flag(FlagN))

	c.setNZ(0x7F)
	require.False(t, c.flag(FlagZ))
	require.False(t, c.flag(FlagN))
}

func TestInterruptLatchedOnceBetweenInstructions(t *testing.T) {
	c, bus := newTestCPU(t)
	bus.ram[VectorIRQ] = 0x00
	bus.ram[VectorIRQ+1] = 0x40 // IRQ vector -> $4000

	bus.ram[0x0200] = 0xEA // NOP
	bus.ram[0x0201] = 0xEA // NOP
	c.setFlag(FlagI, false)

	c.AssertIRQ(true)
	c.Step() // NOP; latches IRQPending at the end of this instruction
	require.True(t, c.State.IRQPending)

	c.AssertIRQ(false) // source clears itself, but the latch already happened
	c.Step()            // services the latched IRQ instead of executing the 2nd NOP
	require.Equal(t, uint16(0x4000), c.State.PC)
	require.False(t, c.State.IRQPending)
}

func TestMAPCTLPageModeDiscount(t *testing.T) {
	c, bus := newTestCPU(t)
	c.SetPageModeEnabled(true)

	bus.ram[0x0200] = 0xEA // NOP at $0200
	bus.ram[0x0201] = 0xEA // NOP at $0201, sequential same-page fetch

	c.Step() // first NOP opens the stream, no discount possible yet
	ticksFirst := c.State.LastTicks

	ticks := c.Step() // second NOP: sequential + page mode -> one tick cheaper
	require.Less(t, ticks, ticksFirst)
}

func TestBCDArithmetic(t *testing.T) {
	c, _ := newTestCPU(t)
	c.setFlag(FlagD, true)
	c.setFlag(FlagC, false)
	c.State.A = 0x29
	execADC(c, operand{value: 0x11})
	require.Equal(t, uint8(0x40), c.State.A) // 29 + 11 = 40 in BCD
	require.False(t, c.flag(FlagC))
}
