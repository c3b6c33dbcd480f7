// Package cpu implements the Sharp SM83 CPU core: the register file,
// the 256-entry base and CB-prefixed opcode tables, and the fetch-
// decode-execute cycle.
package cpu

import (
	"fmt"

	"sm83/internal/bus"
	"sm83/internal/interrupts"
)

// DecodeError reports an illegal opcode.
type DecodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

// StuckError reports that neither PC nor SP changed after executing a
// non-halted instruction.
type StuckError struct {
	PC uint16
}

func (e *StuckError) Error() string {
	return fmt.Sprintf("cpu: stuck at 0x%04X (PC/SP unchanged)", e.PC)
}

// illegalOpcodes is the fixed set of base opcodes with no defined
// behaviour.
var illegalOpcodes = map[uint8]bool{
	0xD3: true, 0xDB: true, 0xDD: true, 0xE3: true, 0xE4: true,
	0xEB: true, 0xEC: true, 0xED: true, 0xF4: true, 0xFC: true, 0xFD: true,
}

// CPU is the SM83 register file plus the bus and interrupt service it
// drives instructions against. It owns no memory itself; all loads
// and stores go through Bus.
type CPU struct {
	Registers
	PC, SP uint16

	Halted  bool
	Stopped bool
	Stuck   bool

	DoubleSpeed bool
	CGBMode     bool

	bus *bus.Bus
	irq *interrupts.Service
}

// New returns a CPU wired to the given bus and interrupt service, with
// every register zeroed. Callers that want the DMG post-boot state
// should call SetBootState afterwards (see emulator.New).
func New(b *bus.Bus, irq *interrupts.Service) *CPU {
	return &CPU{bus: b, irq: irq}
}

// SetBootState initialises the register file to the documented DMG
// post-boot values.
func (c *CPU) SetBootState() {
	c.A, c.F = 0x01, 0xB0
	c.B, c.C = 0x00, 0x13
	c.D, c.E = 0x00, 0xD8
	c.H, c.L = 0x01, 0x4D
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.Halted = false
	c.Stuck = false
	c.irq.IME = false
}

// Execute runs the instruction at PC to completion and returns the
// number of cycles it consumed. Timer and interrupt advancing are the
// caller's job, not the CPU's.
func (c *CPU) Execute() (uint8, error) {
	oldPC, oldSP := c.PC, c.SP

	opcode := c.bus.Read(c.PC)
	c.PC++

	var instr Instruction
	if opcode == 0xCB {
		cbOpcode := c.bus.Read(c.PC)
		c.PC++
		instr = instructionSetCB[cbOpcode]
		cycles := 4 + instr.Fn(c, 0)
		c.detectStuck(oldPC, oldSP)
		if c.Stuck {
			return cycles, &StuckError{PC: oldPC}
		}
		return cycles, nil
	}

	if illegalOpcodes[opcode] || instructionLength[opcode] == 0 {
		c.Stuck = true
		return 0, &DecodeError{Opcode: opcode, PC: oldPC}
	}

	instr = instructionSet[opcode]

	var operand uint16
	switch instructionLength[opcode] {
	case 2:
		operand = uint16(c.bus.Read(c.PC))
		c.PC++
	case 3:
		lo := uint16(c.bus.Read(c.PC))
		c.PC++
		hi := uint16(c.bus.Read(c.PC))
		c.PC++
		operand = lo | hi<<8
	}

	cycles := instr.Fn(c, operand)
	c.detectStuck(oldPC, oldSP)
	if c.Stuck {
		return cycles, &StuckError{PC: oldPC}
	}
	return cycles, nil
}

// detectStuck flags tight infinite loops: if neither PC nor SP
// changed and the CPU isn't halted, the instruction is a tight
// infinite loop at instruction granularity.
func (c *CPU) detectStuck(oldPC, oldSP uint16) {
	if !c.Halted && c.PC == oldPC && c.SP == oldSP {
		c.Stuck = true
	}
}

// key1Register is the CGB KEY1 speed-switch register; STOP consults
// its armed bit (bit 0) and toggles DoubleSpeed when CGBMode is set.
const key1Register = 0xFF4D

// keyArmed reports whether a speed switch has been armed via a write
// of 0x01 to KEY1.
func (c *CPU) keyArmed() bool { return c.bus.Read(key1Register)&0x01 != 0 }

// clearKeyArm disarms the pending switch by writing value^0x81 back
// to KEY1, flipping both the armed bit and the current-speed bit the
// guest reads back.
func (c *CPU) clearKeyArm() {
	v := c.bus.Read(key1Register)
	c.bus.Set(key1Register, v^0x81)
}

// readByte reads a byte from the bus (helper for instruction bodies).
func (c *CPU) readByte(addr uint16) uint8 { return c.bus.Read(addr) }

// writeByte writes a byte to the bus (helper for instruction bodies).
func (c *CPU) writeByte(addr uint16, v uint8) { c.bus.Write(addr, v) }

// push16 pushes a 16-bit value onto the stack, high byte first, per
// the PUSH/CALL/RST/interrupt-dispatch convention.
func (c *CPU) push16(v uint16) {
	c.SP--
	c.writeByte(c.SP, uint8(v>>8))
	c.SP--
	c.writeByte(c.SP, uint8(v))
}

// pop16 pops a 16-bit value from the stack, low byte first.
func (c *CPU) pop16() uint16 {
	lo := uint16(c.readByte(c.SP))
	c.SP++
	hi := uint16(c.readByte(c.SP))
	c.SP++
	return hi<<8 | lo
}
