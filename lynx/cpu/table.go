package cpu

// opcodeEntry describes one of the 256 opcode slots: its addressing mode,
// base cycle count (before the host tickScale multiply and any page-mode
// discount) and the function that carries out the operation.
type opcodeEntry struct {
	mnemonic string
	mode     addressingMode
	cycles   uint8
	exec     func(c *CPU, op operand)
}

// opcodeTable is the full 65C02 decode matrix. Cycle counts match the
// extracted reference timing table byte for byte, including the two
// divergent slots: 0xCB and 0xDB are single-cycle NOPs here rather than the
// textbook WAI/STP — this core halts the CPU only through Mikey's CPUSLEEP
// register, never via an opcode.
var opcodeTable = [256]opcodeEntry{
	0x00: {"BRK", modeImplied, 7, execBRK},
	0x01: {"ORA", modeIndexedIndirect, 6, execORA},
	0x02: {"NOP", modeImmediate, 2, execNOP},
	0x03: {"NOP", modeImplied, 1, execNOP},
	0x04: {"TSB", modeZeroPage, 5, execTSB},
	0x05: {"ORA", modeZeroPage, 3, execORA},
	0x06: {"ASL", modeZeroPage, 5, execASL},
	0x07: {"RMB0", modeZeroPage, 5, execRMB(0)},
	0x08: {"PHP", modeImplied, 3, execPHP},
	0x09: {"ORA", modeImmediate, 2, execORA},
	0x0A: {"ASL", modeAccumulator, 2, execASL},
	0x0B: {"NOP", modeImplied, 1, execNOP},
	0x0C: {"TSB", modeAbsolute, 6, execTSB},
	0x0D: {"ORA", modeAbsolute, 4, execORA},
	0x0E: {"ASL", modeAbsolute, 6, execASL},
	0x0F: {"BBR0", modeZeroPageRelative, 5, execBBR(0)},

	0x10: {"BPL", modeRelative, 2, execBPL},
	0x11: {"ORA", modeIndirectIndexed, 5, execORA},
	0x12: {"ORA", modeZeroPageIndirect, 5, execORA},
	0x13: {"NOP", modeImplied, 1, execNOP},
	0x14: {"TRB", modeZeroPage, 5, execTRB},
	0x15: {"ORA", modeZeroPageX, 4, execORA},
	0x16: {"ASL", modeZeroPageX, 6, execASL},
	0x17: {"RMB1", modeZeroPage, 5, execRMB(1)},
	0x18: {"CLC", modeImplied, 2, execCLC},
	0x19: {"ORA", modeAbsoluteY, 4, execORA},
	0x1A: {"INC", modeAccumulator, 2, execINC},
	0x1B: {"NOP", modeImplied, 1, execNOP},
	0x1C: {"TRB", modeAbsolute, 6, execTRB},
	0x1D: {"ORA", modeAbsoluteX, 4, execORA},
	0x1E: {"ASL", modeAbsoluteX, 6, execASL},
	0x1F: {"BBR1", modeZeroPageRelative, 5, execBBR(1)},

	0x20: {"JSR", modeAbsolute, 6, execJSR},
	0x21: {"AND", modeIndexedIndirect, 6, execAND},
	0x22: {"NOP", modeImmediate, 2, execNOP},
	0x23: {"NOP", modeImplied, 1, execNOP},
	0x24: {"BIT", modeZeroPage, 3, execBIT},
	0x25: {"AND", modeZeroPage, 3, execAND},
	0x26: {"ROL", modeZeroPage, 5, execROL},
	0x27: {"RMB2", modeZeroPage, 5, execRMB(2)},
	0x28: {"PLP", modeImplied, 4, execPLP},
	0x29: {"AND", modeImmediate, 2, execAND},
	0x2A: {"ROL", modeAccumulator, 2, execROL},
	0x2B: {"NOP", modeImplied, 1, execNOP},
	0x2C: {"BIT", modeAbsolute, 4, execBIT},
	0x2D: {"AND", modeAbsolute, 4, execAND},
	0x2E: {"ROL", modeAbsolute, 6, execROL},
	0x2F: {"BBR2", modeZeroPageRelative, 5, execBBR(2)},

	0x30: {"BMI", modeRelative, 2, execBMI},
	0x31: {"AND", modeIndirectIndexed, 5, execAND},
	0x32: {"AND", modeZeroPageIndirect, 5, execAND},
	0x33: {"NOP", modeImplied, 1, execNOP},
	0x34: {"BIT", modeZeroPageX, 4, execBIT},
	0x35: {"AND", modeZeroPageX, 4, execAND},
	0x36: {"ROL", modeZeroPageX, 6, execROL},
	0x37: {"RMB3", modeZeroPage, 5, execRMB(3)},
	0x38: {"SEC", modeImplied, 2, execSEC},
	0x39: {"AND", modeAbsoluteY, 4, execAND},
	0x3A: {"DEC", modeAccumulator, 2, execDEC},
	0x3B: {"NOP", modeImplied, 1, execNOP},
	0x3C: {"BIT", modeAbsoluteX, 4, execBIT},
	0x3D: {"AND", modeAbsoluteX, 4, execAND},
	0x3E: {"ROL", modeAbsoluteX, 6, execROL},
	0x3F: {"BBR3", modeZeroPageRelative, 5, execBBR(3)},

	0x40: {"RTI", modeImplied, 6, execRTI},
	0x41: {"EOR", modeIndexedIndirect, 6, execEOR},
	0x42: {"NOP", modeImmediate, 2, execNOP},
	0x43: {"NOP", modeImplied, 1, execNOP},
	0x44: {"NOP", modeZeroPage, 3, execNOP},
	0x45: {"EOR", modeZeroPage, 3, execEOR},
	0x46: {"LSR", modeZeroPage, 5, execLSR},
	0x47: {"RMB4", modeZeroPage, 5, execRMB(4)},
	0x48: {"PHA", modeImplied, 3, execPHA},
	0x49: {"EOR", modeImmediate, 2, execEOR},
	0x4A: {"LSR", modeAccumulator, 2, execLSR},
	0x4B: {"NOP", modeImplied, 1, execNOP},
	0x4C: {"JMP", modeAbsolute, 3, execJMP},
	0x4D: {"EOR", modeAbsolute, 4, execEOR},
	0x4E: {"LSR", modeAbsolute, 6, execLSR},
	0x4F: {"BBR4", modeZeroPageRelative, 5, execBBR(4)},

	0x50: {"BVC", modeRelative, 2, execBVC},
	0x51: {"EOR", modeIndirectIndexed, 5, execEOR},
	0x52: {"EOR", modeZeroPageIndirect, 5, execEOR},
	0x53: {"NOP", modeImplied, 1, execNOP},
	0x54: {"NOP", modeZeroPageX, 4, execNOP},
	0x55: {"EOR", modeZeroPageX, 4, execEOR},
	0x56: {"LSR", modeZeroPageX, 6, execLSR},
	0x57: {"RMB5", modeZeroPage, 5, execRMB(5)},
	0x58: {"CLI", modeImplied, 2, execCLI},
	0x59: {"EOR", modeAbsoluteY, 4, execEOR},
	0x5A: {"PHY", modeImplied, 3, execPHY},
	0x5B: {"NOP", modeImplied, 1, execNOP},
	0x5C: {"NOP", modeAbsolute, 8, execNOP},
	0x5D: {"EOR", modeAbsoluteX, 4, execEOR},
	0x5E: {"LSR", modeAbsoluteX, 6, execLSR},
	0x5F: {"BBR5", modeZeroPageRelative, 5, execBBR(5)},

	0x60: {"RTS", modeImplied, 6, execRTS},
	0x61: {"ADC", modeIndexedIndirect, 6, execADC},
	0x62: {"NOP", modeImmediate, 2, execNOP},
	0x63: {"NOP", modeImplied, 1, execNOP},
	0x64: {"STZ", modeZeroPage, 3, execSTZ},
	0x65: {"ADC", modeZeroPage, 3, execADC},
	0x66: {"ROR", modeZeroPage, 5, execROR},
	0x67: {"RMB6", modeZeroPage, 5, execRMB(6)},
	0x68: {"PLA", modeImplied, 4, execPLA},
	0x69: {"ADC", modeImmediate, 2, execADC},
	0x6A: {"ROR", modeAccumulator, 2, execROR},
	0x6B: {"NOP", modeImplied, 1, execNOP},
	0x6C: {"JMP", modeIndirect, 6, execJMP},
	0x6D: {"ADC", modeAbsolute, 4, execADC},
	0x6E: {"ROR", modeAbsolute, 6, execROR},
	0x6F: {"BBR6", modeZeroPageRelative, 5, execBBR(6)},

	0x70: {"BVS", modeRelative, 2, execBVS},
	0x71: {"ADC", modeIndirectIndexed, 5, execADC},
	0x72: {"ADC", modeZeroPageIndirect, 5, execADC},
	0x73: {"NOP", modeImplied, 1, execNOP},
	0x74: {"STZ", modeZeroPageX, 4, execSTZ},
	0x75: {"ADC", modeZeroPageX, 4, execADC},
	0x76: {"ROR", modeZeroPageX, 6, execROR},
	0x77: {"RMB7", modeZeroPage, 5, execRMB(7)},
	0x78: {"SEI", modeImplied, 2, execSEI},
	0x79: {"ADC", modeAbsoluteY, 4, execADC},
	0x7A: {"PLY", modeImplied, 4, execPLY},
	0x7B: {"NOP", modeImplied, 1, execNOP},
	0x7C: {"JMP", modeIndirectAbsoluteX, 6, execJMP},
	0x7D: {"ADC", modeAbsoluteX, 4, execADC},
	0x7E: {"ROR", modeAbsoluteX, 6, execROR},
	0x7F: {"BBR7", modeZeroPageRelative, 5, execBBR(7)},

	0x80: {"BRA", modeRelative, 3, execBRA},
	0x81: {"STA", modeIndexedIndirect, 6, execSTA},
	0x82: {"NOP", modeImmediate, 2, execNOP},
	0x83: {"NOP", modeImplied, 1, execNOP},
	0x84: {"STY", modeZeroPage, 3, execSTY},
	0x85: {"STA", modeZeroPage, 3, execSTA},
	0x86: {"STX", modeZeroPage, 3, execSTX},
	0x87: {"SMB0", modeZeroPage, 5, execSMB(0)},
	0x88: {"DEY", modeImplied, 2, execDEY},
	0x89: {"BIT", modeImmediate, 2, execBIT},
	0x8A: {"TXA", modeImplied, 2, execTXA},
	0x8B: {"NOP", modeImplied, 1, execNOP},
	0x8C: {"STY", modeAbsolute, 4, execSTY},
	0x8D: {"STA", modeAbsolute, 4, execSTA},
	0x8E: {"STX", modeAbsolute, 4, execSTX},
	0x8F: {"BBS0", modeZeroPageRelative, 5, execBBS(0)},

	0x90: {"BCC", modeRelative, 2, execBCC},
	0x91: {"STA", modeIndirectIndexed, 6, execSTA},
	0x92: {"STA", modeZeroPageIndirect, 5, execSTA},
	0x93: {"NOP", modeImplied, 1, execNOP},
	0x94: {"STY", modeZeroPageX, 4, execSTY},
	0x95: {"STA", modeZeroPageX, 4, execSTA},
	0x96: {"STX", modeZeroPageY, 4, execSTX},
	0x97: {"SMB1", modeZeroPage, 5, execSMB(1)},
	0x98: {"TYA", modeImplied, 2, execTYA},
	0x99: {"STA", modeAbsoluteY, 5, execSTA},
	0x9A: {"TXS", modeImplied, 2, execTXS},
	0x9B: {"NOP", modeImplied, 1, execNOP},
	0x9C: {"STZ", modeAbsolute, 4, execSTZ},
	0x9D: {"STA", modeAbsoluteX, 5, execSTA},
	0x9E: {"STZ", modeAbsoluteX, 5, execSTZ},
	0x9F: {"BBS1", modeZeroPageRelative, 5, execBBS(1)},

	0xA0: {"LDY", modeImmediate, 2, execLDY},
	0xA1: {"LDA", modeIndexedIndirect, 6, execLDA},
	0xA2: {"LDX", modeImmediate, 2, execLDX},
	0xA3: {"NOP", modeImplied, 1, execNOP},
	0xA4: {"LDY", modeZeroPage, 3, execLDY},
	0xA5: {"LDA", modeZeroPage, 3, execLDA},
	0xA6: {"LDX", modeZeroPage, 3, execLDX},
	0xA7: {"SMB2", modeZeroPage, 5, execSMB(2)},
	0xA8: {"TAY", modeImplied, 2, execTAY},
	0xA9: {"LDA", modeImmediate, 2, execLDA},
	0xAA: {"TAX", modeImplied, 2, execTAX},
	0xAB: {"NOP", modeImplied, 1, execNOP},
	0xAC: {"LDY", modeAbsolute, 4, execLDY},
	0xAD: {"LDA", modeAbsolute, 4, execLDA},
	0xAE: {"LDX", modeAbsolute, 4, execLDX},
	0xAF: {"BBS2", modeZeroPageRelative, 5, execBBS(2)},

	0xB0: {"BCS", modeRelative, 2, execBCS},
	0xB1: {"LDA", modeIndirectIndexed, 5, execLDA},
	0xB2: {"LDA", modeZeroPageIndirect, 5, execLDA},
	0xB3: {"NOP", modeImplied, 1, execNOP},
	0xB4: {"LDY", modeZeroPageX, 4, execLDY},
	0xB5: {"LDA", modeZeroPageX, 4, execLDA},
	0xB6: {"LDX", modeZeroPageY, 4, execLDX},
	0xB7: {"SMB3", modeZeroPage, 5, execSMB(3)},
	0xB8: {"CLV", modeImplied, 2, execCLV},
	0xB9: {"LDA", modeAbsoluteY, 4, execLDA},
	0xBA: {"TSX", modeImplied, 2, execTSX},
	0xBB: {"NOP", modeImplied, 1, execNOP},
	0xBC: {"LDY", modeAbsoluteX, 4, execLDY},
	0xBD: {"LDA", modeAbsoluteX, 4, execLDA},
	0xBE: {"LDX", modeAbsoluteY, 4, execLDX},
	0xBF: {"BBS3", modeZeroPageRelative, 5, execBBS(3)},

	0xC0: {"CPY", modeImmediate, 2, execCPY},
	0xC1: {"CMP", modeIndexedIndirect, 6, execCMP},
	0xC2: {"NOP", modeImmediate, 2, execNOP},
	0xC3: {"NOP", modeImplied, 1, execNOP},
	0xC4: {"CPY", modeZeroPage, 3, execCPY},
	0xC5: {"CMP", modeZeroPage, 3, execCMP},
	0xC6: {"DEC", modeZeroPage, 5, execDEC},
	0xC7: {"SMB4", modeZeroPage, 5, execSMB(4)},
	0xC8: {"INY", modeImplied, 2, execINY},
	0xC9: {"CMP", modeImmediate, 2, execCMP},
	0xCA: {"DEX", modeImplied, 2, execDEX},
	0xCB: {"NOP", modeImplied, 1, execNOP}, // not WAI: see opcodeTable
	0xCC: {"CPY", modeAbsolute, 4, execCPY},
	0xCD: {"CMP", modeAbsolute, 4, execCMP},
	0xCE: {"DEC", modeAbsolute, 6, execDEC},
	0xCF: {"BBS4", modeZeroPageRelative, 5, execBBS(4)},

	0xD0: {"BNE", modeRelative, 2, execBNE},
	0xD1: {"CMP", modeIndirectIndexed, 5, execCMP},
	0xD2: {"CMP", modeZeroPageIndirect, 5, execCMP},
	0xD3: {"NOP", modeImplied, 1, execNOP},
	0xD4: {"NOP", modeZeroPageX, 4, execNOP},
	0xD5: {"CMP", modeZeroPageX, 4, execCMP},
	0xD6: {"DEC", modeZeroPageX, 6, execDEC},
	0xD7: {"SMB5", modeZeroPage, 5, execSMB(5)},
	0xD8: {"CLD", modeImplied, 2, execCLD},
	0xD9: {"CMP", modeAbsoluteY, 4, execCMP},
	0xDA: {"PHX", modeImplied, 3, execPHX},
	0xDB: {"NOP", modeImplied, 1, execNOP}, // not STP: see opcodeTable
	0xDC: {"NOP", modeAbsolute, 4, execNOP},
	0xDD: {"CMP", modeAbsoluteX, 4, execCMP},
	0xDE: {"DEC", modeAbsoluteX, 7, execDEC},
	0xDF: {"BBS5", modeZeroPageRelative, 5, execBBS(5)},

	0xE0: {"CPX", modeImmediate, 2, execCPX},
	0xE1: {"SBC", modeIndexedIndirect, 6, execSBC},
	0xE2: {"NOP", modeImmediate, 2, execNOP},
	0xE3: {"NOP", modeImplied, 1, execNOP},
	0xE4: {"CPX", modeZeroPage, 3, execCPX},
	0xE5: {"SBC", modeZeroPage, 3, execSBC},
	0xE6: {"INC", modeZeroPage, 5, execINC},
	0xE7: {"SMB6", modeZeroPage, 5, execSMB(6)},
	0xE8: {"INX", modeImplied, 2, execINX},
	0xE9: {"SBC", modeImmediate, 2, execSBC},
	0xEA: {"NOP", modeImplied, 2, execNOP},
	0xEB: {"NOP", modeImplied, 1, execNOP},
	0xEC: {"CPX", modeAbsolute, 4, execCPX},
	0xED: {"SBC", modeAbsolute, 4, execSBC},
	0xEE: {"INC", modeAbsolute, 6, execINC},
	0xEF: {"BBS6", modeZeroPageRelative, 5, execBBS(6)},

	0xF0: {"BEQ", modeRelative, 2, execBEQ},
	0xF1: {"SBC", modeIndirectIndexed, 5, execSBC},
	0xF2: {"SBC", modeZeroPageIndirect, 5, execSBC},
	0xF3: {"NOP", modeImplied, 1, execNOP},
	0xF4: {"NOP", modeZeroPageX, 4, execNOP},
	0xF5: {"SBC", modeZeroPageX, 4, execSBC},
	0xF6: {"INC", modeZeroPageX, 6, execINC},
	0xF7: {"SMB7", modeZeroPage, 5, execSMB(7)},
	0xF8: {"SED", modeImplied, 2, execSED},
	0xF9: {"SBC", modeAbsoluteY, 4, execSBC},
	0xFA: {"PLX", modeImplied, 4, execPLX},
	0xFB: {"NOP", modeImplied, 1, execNOP},
	0xFC: {"NOP", modeAbsolute, 4, execNOP},
	0xFD: {"SBC", modeAbsoluteX, 4, execSBC},
	0xFE: {"INC", modeAbsoluteX, 7, execINC},
	0xFF: {"BBS7", modeZeroPageRelative, 5, execBBS(7)},
}
