package cpu

// DisasmRecord caches what Step learned about the instruction at a given
// address, for debugger UIs that want a static-looking disassembly listing
// without re-decoding the opcode table on every redraw.
type DisasmRecord struct {
	Address        uint16
	Bytes          []uint8
	Mnemonic       string
	Size           int
	IsJump         bool
	JumpAddress    uint16
	IsSubroutine   bool
	IsIRQ          bool
	OperandAddress uint16
}

// recordDisasm builds or refreshes the cache entry for the instruction that
// was just fetched at addr. Entries are invalidated lazily: a write to ROM
// is impossible and RAM self-modifying code is rare enough that Step just
// overwrites the entry in place rather than tracking memory writes.
func (c *CPU) recordDisasm(addr uint16, entry opcodeEntry) {
	rec := &DisasmRecord{
		Address:      addr,
		Mnemonic:     entry.mnemonic,
		IsSubroutine: entry.mnemonic == "JSR",
		IsJump:       entry.mnemonic == "JMP" || entry.mnemonic == "JSR" || isBranchMnemonic(entry.mnemonic),
		IsIRQ:        entry.mnemonic == "BRK",
	}
	c.disasm[addr] = rec
}

func isBranchMnemonic(m string) bool {
	switch m {
	case "BPL", "BMI", "BVC", "BVS", "BCC", "BCS", "BNE", "BEQ", "BRA":
		return true
	}
	return false
}

// Disassembly returns the cached record for addr, if Step has ever decoded
// an instruction there while DisasmEnabled was set.
func (c *CPU) Disassembly(addr uint16) (*DisasmRecord, bool) {
	rec, ok := c.disasm[addr]
	return rec, ok
}

// CallStack returns the live JSR/BRK call stack, most recent frame last.
func (c *CPU) CallStack() []CallStackEntry {
	return c.callStack
}
