package mikey

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"

	"github.com/golynx/golynx/lynx/addr"
	"github.com/golynx/golynx/lynx/bus"
)

// Ram is the subset of Memory the LCD DMA burst needs: plain byte reads
// over the full 64KiB space.
type Ram interface {
	Read(address uint16) uint8
}

// SerialDevice receives the three GPIO pins IODIR/IODAT route to the
// cartridge EEPROM and bank shifter: chip-select, clock, and data-in.
type SerialDevice interface {
	SetPins(cs, clk, di bool)
}

// BankShifter receives the bank-shift strobe and serial address bit
// Mikey's SYSCTL1/IODAT pins drive.
type BankShifter interface {
	SetStrobe(on bool)
	ShiftBit(bit bool)
}

// CPUHalter lets Mikey put the CPU to sleep via CPUSLEEP without
// importing the cpu package directly.
type CPUHalter interface {
	Halt()
	AssertIRQ(asserted bool)
}

// Mikey is the chip: eight timers, four audio channels, the IRQ
// controller, the color DAC, the LCD DMA scheduler and the UART.
type Mikey struct {
	Timers [8]Timer
	Audio  [4]AudioChannel

	IntPending uint8

	AudIn     uint8
	SysCtl1   uint8
	IODir     uint8
	IODat     uint8
	MagReady0 uint8
	MagReady1 uint8

	SerCtl uint8
	SerDat uint8

	CpuSleep uint8
	DispCtl  uint8
	PBkup    uint8
	DispAdr  uint16

	Palette [addr.PaletteCount]uint16 // packed (G<<8)|(B<<4)|R, 12 bits

	Ram       Ram
	Bus       *bus.Bus
	Cpu       CPUHalter
	EEPROM    SerialDevice
	Cartridge BankShifter

	video videoState
	uart  uartState

	FrameReady bool
}

// New creates a Mikey wired to the given RAM and bus; the CPU, EEPROM and
// cartridge are wired separately since core constructs them afterward.
func New(ram Ram, b *bus.Bus) *Mikey {
	m := &Mikey{Ram: ram, Bus: b}
	return m
}

// Reset clears all chip state to power-up defaults, keeping the wiring
// to RAM, Bus, CPU, EEPROM and cartridge intact.
func (m *Mikey) Reset() {
	*m = Mikey{Ram: m.Ram, Bus: m.Bus, Cpu: m.Cpu, EEPROM: m.EEPROM, Cartridge: m.Cartridge}
}

// Clock advances the timers (0..7, in index order) and then the audio
// channels (0..3) by ticks host cycles, and paces the UART and the LCD
// DMA/pixel pipeline the same amount.
func (m *Mikey) Clock(ticks uint32) {
	for i := range m.Timers {
		idx := i
		m.Timers[idx].update(idx, ticks,
			func(successor int) { m.deliverTimerBorrow(successor) },
			func(index int) { m.onTimerDone(index) },
		)
	}
	for i := range m.Audio {
		idx := i
		m.Audio[idx].update(ticks, func() { m.deliverAudioBorrow(idx) })
	}
	m.clockUART(ticks)
	m.clockVideo(ticks)
}

// deliverTimerBorrow routes a timer's borrow-out tick to its linked
// successor: another timer, audio stage 0 (sentinel 8), or nowhere (the
// UART sink, sentinel -1, which the timer's own IRQ/done path serves).
func (m *Mikey) deliverTimerBorrow(successor int) {
	switch {
	case successor < 0:
		return
	case successor == 8:
		m.Audio[0].pendingTick++
	default:
		m.Timers[successor].pendingTick++
	}
}

// deliverAudioBorrow routes an audio channel's borrow-out to the next
// channel, or (channel 3) back to timer 1.
func (m *Mikey) deliverAudioBorrow(channel int) {
	successor := audioForwardLinks[channel]
	if successor < 0 {
		m.Timers[1].pendingTick++
		return
	}
	m.Audio[successor].pendingTick++
}

func (m *Mikey) onTimerDone(index int) {
	if m.Timers[index].ControlA&ctlAIRQEnable != 0 && index != 4 {
		m.IntPending |= 1 << uint(index)
	}
	switch index {
	case 0:
		m.onHorizontalBlank()
	case 2:
		m.onVerticalBlank()
	case 4:
		m.onUARTBaudTick()
	}
	m.recomputeIRQ()
}

func (m *Mikey) recomputeIRQ() {
	if m.Cpu == nil {
		return
	}
	m.Cpu.AssertIRQ(m.IntPending != 0)
}

// Read services a CPU/debug read of a Mikey register.
func (m *Mikey) Read(address uint16) uint8 {
	m.Bus.InjectCycles(bus.CostMikeyRead)
	if v, ok := m.readTimerOrAudio(address); ok {
		return v
	}
	switch address {
	case addr.INTRST, addr.INTSET:
		return m.IntPending
	case addr.MAGRDY0:
		return m.MagReady0
	case addr.MAGRDY1:
		return m.MagReady1
	case addr.AUDIN:
		return m.AudIn
	case addr.SYSCTL1:
		return m.SysCtl1
	case addr.IODIR:
		return m.IODir
	case addr.IODAT:
		return m.readIODat()
	case addr.SERCTL:
		return m.readSerCtl()
	case addr.SERDAT:
		return m.SerDat
	case addr.SDONEACK:
		return 0
	case addr.CPUSLEEP:
		return m.CpuSleep
	case addr.DISPCTL:
		return m.DispCtl
	case addr.PBKUP:
		return m.PBkup
	case addr.DISPADRL:
		return uint8(m.DispAdr)
	case addr.DISPADRH:
		return uint8(m.DispAdr >> 8)
	}
	if address >= addr.GreenBase && address < addr.GreenBase+addr.PaletteCount {
		return uint8(m.Palette[address-addr.GreenBase] >> 8)
	}
	if address >= addr.BlueRedBase && address < addr.BlueRedBase+addr.PaletteCount {
		p := m.Palette[address-addr.BlueRedBase]
		return uint8(p&0xF0) | uint8(p&0x0F)
	}
	slog.Debug("mikey: unimplemented register read", "addr", address)
	return 0xFF
}

// Write services a CPU write to a Mikey register.
func (m *Mikey) Write(address uint16, v uint8) {
	m.Bus.InjectCycles(bus.CostMikeyWrite)
	if m.writeTimerOrAudio(address, v) {
		return
	}
	switch address {
	case addr.INTRST:
		m.IntPending &^= v
		m.recomputeIRQ()
	case addr.INTSET:
		m.IntPending |= v
		m.recomputeIRQ()
	case addr.MAGRDY0:
		m.MagReady0 = v
	case addr.MAGRDY1:
		m.MagReady1 = v
	case addr.AUDIN:
		m.AudIn = v
	case addr.SYSCTL1:
		m.writeSysCtl1(v)
	case addr.IODIR:
		m.IODir = v
	case addr.IODAT:
		m.writeIODat(v)
	case addr.SERCTL:
		m.writeSerCtl(v)
	case addr.SERDAT:
		m.writeSerDat(v)
	case addr.SDONEACK:
		// acknowledges a completed serial shift; nothing to latch here.
	case addr.CPUSLEEP:
		m.CpuSleep = v
		if v&0x01 != 0 && m.Cpu != nil {
			m.Cpu.Halt()
		}
	case addr.DISPCTL:
		m.DispCtl = v
	case addr.PBKUP:
		m.PBkup = v
	case addr.DISPADRL:
		m.DispAdr = m.DispAdr&0xFF00 | uint16(v)
	case addr.DISPADRH:
		m.DispAdr = m.DispAdr&0x00FF | uint16(v)<<8
	default:
		if address >= addr.GreenBase && address < addr.GreenBase+addr.PaletteCount {
			i := address - addr.GreenBase
			m.Palette[i] = m.Palette[i]&0x0FF | uint16(v&0x0F)<<8
			return
		}
		if address >= addr.BlueRedBase && address < addr.BlueRedBase+addr.PaletteCount {
			i := address - addr.BlueRedBase
			m.Palette[i] = m.Palette[i]&0xF00 | uint16(v)
			return
		}
		slog.Debug("mikey: unimplemented register write", "addr", address, "value", v)
	}
}

// writeSysCtl1 handles bit 0, the cartridge bank-shift strobe.
func (m *Mikey) writeSysCtl1(v uint8) {
	rising := v&0x01 != 0 && m.SysCtl1&0x01 == 0
	m.SysCtl1 = v
	if m.Cartridge != nil && (rising || v&0x01 == 0) {
		m.Cartridge.SetStrobe(v&0x01 != 0)
	}
}

// writeIODat fans the three EEPROM pins (gated by IODIR) and the
// cartridge's serial address bit out to their respective devices.
func (m *Mikey) writeIODat(v uint8) {
	m.IODat = v
	cs := m.IODir&0x04 != 0 && v&0x04 != 0
	clk := m.IODir&0x02 != 0 && v&0x02 != 0
	di := m.IODir&0x01 != 0 && v&0x01 != 0
	if m.EEPROM != nil {
		m.EEPROM.SetPins(cs, clk, di)
	}
	if m.Cartridge != nil {
		m.Cartridge.ShiftBit(v&0x02 != 0)
	}
}

func (m *Mikey) readIODat() uint8 {
	// Bits read back whatever was last latched, except bit 0: while IODIR
	// makes it an input, it carries the EEPROM's data-out line.
	v := m.IODat
	if m.IODir&0x01 == 0 {
		if e, ok := m.EEPROM.(interface{ OutputBit() bool }); ok {
			v &^= 0x01
			if e.OutputBit() {
				v |= 0x01
			}
		}
	}
	return v
}

// SaveState writes every timer and audio channel, the register file, the
// palette, and the video/UART sub-state machines, in that order.
// Cartridge bank-shift state is saved separately by the façade through
// Media; EEPROM state is not part of the save state.
func (m *Mikey) SaveState(w io.Writer) error {
	for i := range m.Timers {
		if err := m.Timers[i].saveState(w); err != nil {
			return fmt.Errorf("mikey: timer %d: %w", i, err)
		}
	}
	for i := range m.Audio {
		if err := m.Audio[i].saveState(w); err != nil {
			return fmt.Errorf("mikey: audio channel %d: %w", i, err)
		}
	}
	fields := []any{
		m.IntPending, m.AudIn, m.SysCtl1, m.IODir, m.IODat,
		m.MagReady0, m.MagReady1, m.SerCtl, m.SerDat,
		m.CpuSleep, m.DispCtl, m.PBkup, m.DispAdr, m.Palette, m.FrameReady,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("mikey: writing registers: %w", err)
		}
	}
	if err := m.video.saveState(w); err != nil {
		return fmt.Errorf("mikey: video state: %w", err)
	}
	return m.uart.saveState(w)
}

// LoadState restores Mikey's full register and sub-state-machine set from
// r, leaving Ram/Bus/Cpu/EEPROM/Cartridge wiring untouched.
func (m *Mikey) LoadState(r io.Reader) error {
	for i := range m.Timers {
		if err := m.Timers[i].loadState(r); err != nil {
			return fmt.Errorf("mikey: timer %d: %w", i, err)
		}
	}
	for i := range m.Audio {
		if err := m.Audio[i].loadState(r); err != nil {
			return fmt.Errorf("mikey: audio channel %d: %w", i, err)
		}
	}
	targets := []any{
		&m.IntPending, &m.AudIn, &m.SysCtl1, &m.IODir, &m.IODat,
		&m.MagReady0, &m.MagReady1, &m.SerCtl, &m.SerDat,
		&m.CpuSleep, &m.DispCtl, &m.PBkup, &m.DispAdr, &m.Palette, &m.FrameReady,
	}
	for _, t := range targets {
		if err := binary.Read(r, binary.LittleEndian, t); err != nil {
			return fmt.Errorf("mikey: reading registers: %w", err)
		}
	}
	if err := m.video.loadState(r); err != nil {
		return fmt.Errorf("mikey: video state: %w", err)
	}
	return m.uart.loadState(r)
}
