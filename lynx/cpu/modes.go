package cpu

// addressingMode enumerates every addressing mode the table references.
type addressingMode uint8

const (
	modeImplied addressingMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeZeroPageIndirect   // (zp) — 65C02 addition
	modeIndexedIndirect    // (zp,X)
	modeIndirectIndexed    // (zp),Y
	modeRelative           // branches
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect           // JMP (abs)
	modeIndirectAbsoluteX  // JMP (abs,X)
	modeZeroPageRelative   // BBRn/BBSn: zp, then rel
)

// operand is the decoded addressing-mode result handed to an instruction's
// exec function. Exactly one of the fields is meaningful per instruction;
// addr is valid whenever the mode names a memory location.
type operand struct {
	addr      uint16
	value     uint8 // for modeImmediate / modeAccumulator
	isAddr    bool
	zp        uint8 // zero page operand byte, for modeZeroPageRelative
	rel       int8  // relative displacement, valid for branches / BBRn/BBSn
}

func (c *CPU) readData(addr uint16) uint8 {
	c.nonFetchAccess()
	if c.Breakpoints != nil && c.checkReadBreakpoint(addr) {
		c.BreakHit = true
	}
	return c.Mem.Read(addr)
}

func (c *CPU) writeData(addr uint16, v uint8) {
	c.nonFetchAccess()
	if c.Breakpoints != nil && c.checkWriteBreakpoint(addr) {
		c.BreakHit = true
	}
	c.Mem.Write(addr, v)
}

func (c *CPU) zpIndirect(zp uint8) uint16 {
	lo := c.readData(uint16(zp))
	hi := c.readData(uint16(zp + 1))
	return bytesToWord(hi, lo)
}

// decodeOperand consumes any additional operand bytes from the instruction
// stream and resolves the effective address/value for mode.
func (c *CPU) decodeOperand(mode addressingMode) operand {
	switch mode {
	case modeImplied:
		return operand{}

	case modeAccumulator:
		return operand{value: c.State.A}

	case modeImmediate:
		return operand{value: c.fetch(), isAddr: false}

	case modeZeroPage:
		return operand{addr: uint16(c.fetch()), isAddr: true}

	case modeZeroPageX:
		zp := c.fetch() + c.State.X
		return operand{addr: uint16(zp), isAddr: true}

	case modeZeroPageY:
		zp := c.fetch() + c.State.Y
		return operand{addr: uint16(zp), isAddr: true}

	case modeZeroPageIndirect:
		zp := c.fetch()
		return operand{addr: c.zpIndirect(zp), isAddr: true}

	case modeIndexedIndirect:
		zp := c.fetch() + c.State.X
		return operand{addr: c.zpIndirect(zp), isAddr: true}

	case modeIndirectIndexed:
		zp := c.fetch()
		base := c.zpIndirect(zp)
		return operand{addr: base + uint16(c.State.Y), isAddr: true}

	case modeRelative:
		d := int8(c.fetch())
		return operand{rel: d}

	case modeAbsolute:
		lo := c.fetch()
		hi := c.fetch()
		return operand{addr: bytesToWord(hi, lo), isAddr: true}

	case modeAbsoluteX:
		lo := c.fetch()
		hi := c.fetch()
		return operand{addr: bytesToWord(hi, lo) + uint16(c.State.X), isAddr: true}

	case modeAbsoluteY:
		lo := c.fetch()
		hi := c.fetch()
		return operand{addr: bytesToWord(hi, lo) + uint16(c.State.Y), isAddr: true}

	case modeIndirect:
		lo := c.fetch()
		hi := c.fetch()
		ptr := bytesToWord(hi, lo)
		// 65C02 fixes the NMOS page-wrap bug: the high byte is read from
		// ptr+1 even when ptr is the last byte of a page.
		loVal := c.readData(ptr)
		hiVal := c.readData(ptr + 1)
		return operand{addr: bytesToWord(hiVal, loVal), isAddr: true}

	case modeIndirectAbsoluteX:
		lo := c.fetch()
		hi := c.fetch()
		ptr := bytesToWord(hi, lo) + uint16(c.State.X)
		loVal := c.readData(ptr)
		hiVal := c.readData(ptr + 1)
		return operand{addr: bytesToWord(hiVal, loVal), isAddr: true}

	case modeZeroPageRelative:
		zp := c.fetch()
		d := int8(c.fetch())
		return operand{zp: zp, rel: d, addr: uint16(zp), isAddr: true}
	}
	return operand{}
}

// load reads the operand's value: immediate/accumulator carry it inline,
// everything else reads through addr.
func (c *CPU) load(op operand) uint8 {
	if !op.isAddr {
		return op.value
	}
	return c.readData(op.addr)
}

// store writes v back to the operand's location (accumulator or memory).
func (c *CPU) store(op operand, v uint8) {
	if !op.isAddr {
		c.State.A = v
		return
	}
	c.writeData(op.addr, v)
}
