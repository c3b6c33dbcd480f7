// Package disasm provides a static disassembler over the CPU's own
// opcode tables: given a ROM image it produces a human-readable
// instruction listing without executing anything. Because it shares
// the length and name tables with the execution core, its output
// cannot drift from what Execute actually decodes.
package disasm

import (
	"fmt"
	"strings"

	"sm83/internal/cpu"
)

// Line is one disassembled instruction: its address, the raw bytes it
// occupies, and its mnemonic.
type Line struct {
	Addr  uint16
	Bytes []byte
	Text  string
}

// Disassemble walks rom starting at addr for length bytes (or to the
// end of rom, whichever is shorter), decoding one instruction at a
// time using the same length/name tables Execute consults. It does
// not follow jumps; it is a linear sweep, so embedded data will
// misdecode as instructions the way any static disassembler's would.
func Disassemble(rom []byte, addr uint16, length int) []Line {
	var lines []Line
	end := int(addr) + length
	if end > len(rom) {
		end = len(rom)
	}

	pos := int(addr)
	for pos < end {
		opcode := rom[pos]
		start := pos

		if opcode == 0xCB {
			if pos+1 >= len(rom) {
				break
			}
			cbOp := rom[pos+1]
			name := cpu.CBName(cbOp)
			lines = append(lines, Line{
				Addr:  uint16(start),
				Bytes: append([]byte(nil), rom[pos:pos+2]...),
				Text:  name,
			})
			pos += 2
			continue
		}

		n := int(cpu.Length(opcode))
		if n == 0 {
			lines = append(lines, Line{
				Addr:  uint16(start),
				Bytes: []byte{opcode},
				Text:  fmt.Sprintf("DB 0x%02X (illegal)", opcode),
			})
			pos++
			continue
		}
		if pos+n > len(rom) {
			break
		}

		text := cpu.Name(opcode)
		operandBytes := rom[pos+1 : pos+n]
		if len(operandBytes) > 0 {
			text = formatOperand(text, operandBytes)
		}

		lines = append(lines, Line{
			Addr:  uint16(start),
			Bytes: append([]byte(nil), rom[pos:pos+n]...),
			Text:  text,
		})
		pos += n
	}

	return lines
}

// formatOperand substitutes the first "d8"/"d16"/"a8"/"a16"/"r8"
// placeholder in an instruction name with its actual operand value,
// little-endian for 16-bit fields.
func formatOperand(name string, operand []byte) string {
	switch len(operand) {
	case 1:
		v := operand[0]
		replacement := fmt.Sprintf("0x%02X", v)
		for _, ph := range []string{"d8", "a8", "r8"} {
			if strings.Contains(name, ph) {
				return strings.Replace(name, ph, replacement, 1)
			}
		}
		return name + " " + replacement
	case 2:
		v := uint16(operand[0]) | uint16(operand[1])<<8
		replacement := fmt.Sprintf("0x%04X", v)
		for _, ph := range []string{"d16", "a16"} {
			if strings.Contains(name, ph) {
				return strings.Replace(name, ph, replacement, 1)
			}
		}
		return name + " " + replacement
	}
	return name
}

// String renders the listing one instruction per line, the way a
// debugger's disassembly pane would.
func String(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		hex := fmt.Sprintf("% X", l.Bytes)
		fmt.Fprintf(&b, "%04X  %-8s %s\n", l.Addr, hex, l.Text)
	}
	return b.String()
}
