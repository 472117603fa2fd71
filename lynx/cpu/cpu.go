// Package cpu implements the 65C02-family interpreter at the heart of the
// Lynx core: instruction dispatch, flag handling, interrupt latching, the
// halt state driven externally by Mikey, and an optional disassembler /
// breakpoint hook used by debug tooling.
package cpu

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Flag bits of the status register P.
const (
	FlagC uint8 = 1 << 0 // Carry
	FlagZ uint8 = 1 << 1 // Zero
	FlagI uint8 = 1 << 2 // IRQ disable
	FlagD uint8 = 1 << 3 // Decimal mode
	FlagB uint8 = 1 << 4 // Break (only meaningful in the pushed copy)
	Flag1 uint8 = 1 << 5 // Unused, always reads 1
	FlagV uint8 = 1 << 6 // Overflow
	FlagN uint8 = 1 << 7 // Negative
)

// Interrupt vectors.
const (
	VectorNMI   uint16 = 0xFFFA
	VectorReset uint16 = 0xFFFC
	VectorIRQ   uint16 = 0xFFFE
)

// Bus is the memory/side-effect interface the CPU operates through. Memory
// owns the actual page table; the CPU only ever sees reads and writes.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// State is the complete architectural register file, exposed directly for
// save-state serialization and debug inspection.
type State struct {
	PC uint16
	A  uint8
	X  uint8
	Y  uint8
	S  uint8
	P  uint8

	IRQAsserted bool // any Mikey interrupt pending, updated by Mikey when that changes
	IRQPending  bool // latched at an instruction boundary when P.I == 0
	Halted      bool // entered by an external "sleep" write (Mikey CPUSLEEP)

	TotalTicks uint64
	LastTicks  int

	pageModeEnabled bool // MAPCTL bit 7
	busStreamOpen   bool // last access was a sequential same-page fetch
	lastFetchAddr   uint16
}

// CallStackEntry mirrors a JSR/BRK/RTI/RTS for the debugger's call stack view.
type CallStackEntry struct {
	Src    uint16
	Dest   uint16
	Return uint16
}

// CPU is the 65C02 interpreter. It holds no memory of its own; all reads and
// writes go through Bus so that Suzy/Mikey MMIO side effects (and the Bus
// cycle accumulator) are visible mid-instruction exactly like on hardware.
type CPU struct {
	State State
	Mem   Bus

	nzLUT [256]uint8 // precomputed N|Z flag pair indexed by result byte

	// Debugger / disassembler hook (no-op unless DisasmEnabled is set).
	DisasmEnabled bool
	disasm        map[uint16]*DisasmRecord
	callStack     []CallStackEntry

	Breakpoints []Breakpoint
	RunTo       *uint16 // one-shot "run to address" target

	// BreakHit is set by the debugger machinery when an execute/read/write
	// breakpoint or the RunTo target fires; the façade checks and clears it.
	BreakHit bool
}

// New creates a CPU wired to the given bus. Call Reset before use.
func New(mem Bus) *CPU {
	c := &CPU{Mem: mem, disasm: make(map[uint16]*DisasmRecord)}
	for i := 0; i < 256; i++ {
		v := uint8(i)
		var nz uint8
		if v == 0 {
			nz |= FlagZ
		}
		if v&0x80 != 0 {
			nz |= FlagN
		}
		c.nzLUT[i] = nz
	}
	return c
}

// Reset loads PC from the reset vector and puts flags/registers in their
// documented power-up state.
func (c *CPU) Reset() {
	c.State.A = 0
	c.State.X = 0
	c.State.Y = 0
	c.State.S = 0xFD
	c.State.P = FlagI | Flag1
	c.State.Halted = false
	c.State.IRQAsserted = false
	c.State.IRQPending = false
	c.State.TotalTicks = 0
	c.State.busStreamOpen = false
	c.State.PC = bytesToWord(c.Mem.Read(VectorReset), c.Mem.Read(VectorReset+1))
	c.callStack = c.callStack[:0]
}

// SetPageModeEnabled mirrors MAPCTL bit 7 ("fast page" mode): a one-tick
// discount applies to sequential same-page fetches while it's enabled.
func (c *CPU) SetPageModeEnabled(enabled bool) {
	c.State.pageModeEnabled = enabled
}

// Halt is invoked by Mikey's CPUSLEEP register write; it puts the CPU to
// sleep until an asserted IRQ wakes it.
func (c *CPU) Halt() {
	c.State.Halted = true
}

// AssertIRQ is called by Mikey whenever a timer finishes or INTRST/INTSET
// is written, with whether any of its interrupt bits is pending.
func (c *CPU) AssertIRQ(asserted bool) {
	c.State.IRQAsserted = asserted
}

// GetPC returns the current program counter, for debug tooling.
func (c *CPU) GetPC() uint16 { return c.State.PC }

func (c *CPU) flag(mask uint8) bool { return c.State.P&mask != 0 }

func (c *CPU) setFlag(mask uint8, set bool) {
	if set {
		c.State.P |= mask
	} else {
		c.State.P &^= mask
	}
}

func (c *CPU) setNZ(v uint8) {
	c.State.P = (c.State.P &^ (FlagN | FlagZ)) | c.nzLUT[v]
}

func (c *CPU) push(v uint8) {
	c.Mem.Write(0x0100+uint16(c.State.S), v)
	c.State.S--
}

func (c *CPU) pop() uint8 {
	c.State.S++
	return c.Mem.Read(0x0100 + uint16(c.State.S))
}

func (c *CPU) push16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.pop()
	hi := c.pop()
	return bytesToWord(hi, lo)
}

func bytesToWord(hi, lo uint8) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// Step fetches, decodes and executes one instruction (or services a latched
// IRQ, or idles while halted), returning the number of host ticks elapsed.
func (c *CPU) Step() int {
	if c.State.Halted {
		if c.State.IRQAsserted {
			c.State.Halted = false
		} else {
			c.State.TotalTicks += 8
			c.State.LastTicks = 8
			return 8
		}
	}

	if c.State.IRQPending {
		c.State.IRQPending = false
		ticks := c.serviceInterrupt(VectorIRQ, false)
		c.State.LastTicks = ticks
		c.State.TotalTicks += uint64(ticks)
		return ticks
	}

	if c.Breakpoints != nil || c.RunTo != nil {
		if c.checkExecuteBreakpoint(c.State.PC) {
			c.BreakHit = true
		}
	}

	pc := c.State.PC
	discount := c.State.pageModeEnabled && c.State.busStreamOpen && bit8(pc) == bit8(c.State.lastFetchAddr) && pc == c.State.lastFetchAddr+1
	opcode := c.fetch()
	entry := opcodeTable[opcode]

	if c.DisasmEnabled {
		c.recordDisasm(pc, entry)
	}

	op := c.decodeOperand(entry.mode)
	entry.exec(c, op)

	ticks := int(entry.cycles) * tickScale
	if discount {
		ticks--
	}

	c.State.LastTicks = ticks
	c.State.TotalTicks += uint64(ticks)

	if !c.State.IRQPending && c.State.IRQAsserted && !c.flag(FlagI) {
		c.State.IRQPending = true
	}

	return ticks
}

// tickScale converts the base 65C02 cycle count into host ticks; Suzy
// and Mikey are clocked in these finer-grained units.
const tickScale = 5

func (c *CPU) fetch() uint8 {
	addr := c.State.PC
	c.State.PC++
	v := c.Mem.Read(addr)
	c.State.busStreamOpen = true
	c.State.lastFetchAddr = addr
	return v
}

// nonFetchAccess marks the bus stream closed: any memory access that isn't
// a sequential opcode-stream fetch (operand reads, stack pushes/pops, the
// addressed read/write of an instruction) breaks the "open page" run.
func (c *CPU) nonFetchAccess() {
	c.State.busStreamOpen = false
}

func bit8(addr uint16) uint16 { return addr >> 8 }

// serviceInterrupt pushes PC/P and loads PC from the given vector. brk
// indicates a software BRK (B flag set in the pushed copy) vs a hardware
// IRQ/NMI (B flag clear).
func (c *CPU) serviceInterrupt(vector uint16, brk bool) int {
	c.push16(c.State.PC)
	p := c.State.P | Flag1
	if brk {
		p |= FlagB
	} else {
		p &^= FlagB
	}
	c.push(p)
	c.setFlag(FlagI, true)
	c.setFlag(FlagD, false)
	dest := bytesToWord(c.Mem.Read(vector+1), c.Mem.Read(vector))
	c.callStack = append(c.callStack, CallStackEntry{Src: c.State.PC, Dest: dest, Return: c.State.PC})
	c.State.PC = dest
	return 7 * tickScale
}

// NMI requests a non-maskable interrupt at the next Step call boundary.
// Unlike IRQ, NMI is not masked by the I flag.
func (c *CPU) NMI() {
	ticks := c.serviceInterrupt(VectorNMI, false)
	c.State.LastTicks = ticks
	c.State.TotalTicks += uint64(ticks)
}

func (c *CPU) String() string {
	return fmt.Sprintf("PC=%04X A=%02X X=%02X Y=%02X S=%02X P=%02X", c.State.PC, c.State.A, c.State.X, c.State.Y, c.State.S, c.State.P)
}

// SaveState writes the architectural register file plus the tick counters
// needed to resume frame timing exactly where it left off. Disassembly,
// breakpoints and the call stack are debugger aids, not architectural
// state, and are not part of the saved image.
func (c *CPU) SaveState(w io.Writer) error {
	fields := []any{
		c.State.PC, c.State.A, c.State.X, c.State.Y, c.State.S, c.State.P,
		c.State.IRQAsserted, c.State.IRQPending, c.State.Halted,
		c.State.TotalTicks, int64(c.State.LastTicks),
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("cpu: writing state: %w", err)
		}
	}
	return nil
}

// LoadState restores the register file and tick counters from r.
func (c *CPU) LoadState(r io.Reader) error {
	var lastTicks int64
	targets := []any{
		&c.State.PC, &c.State.A, &c.State.X, &c.State.Y, &c.State.S, &c.State.P,
		&c.State.IRQAsserted, &c.State.IRQPending, &c.State.Halted,
		&c.State.TotalTicks, &lastTicks,
	}
	for _, t := range targets {
		if err := binary.Read(r, binary.LittleEndian, t); err != nil {
			return fmt.Errorf("cpu: reading state: %w", err)
		}
	}
	c.State.LastTicks = int(lastTicks)
	return nil
}
