package cpu

// Length returns the opcode-length-table entry for a base opcode (1/2/3
// bytes including the opcode itself, or 0 for illegal), exported for
// the disassembler.
func Length(opcode uint8) uint8 { return instructionLength[opcode] }

// Name returns the mnemonic of a base opcode, exported for the
// disassembler.
func Name(opcode uint8) string { return instructionSet[opcode].Name }

// CBName returns the mnemonic of a CB-prefixed opcode, exported for
// the disassembler.
func CBName(opcode uint8) string { return instructionSetCB[opcode].Name }
