package cpu

// Instruction is one entry of the 256-slot base opcode dispatch table.
// Fn performs the operation and returns the cycles actually consumed,
// since conditional branches and (HL) operands change the cost at
// runtime.
type Instruction struct {
	Name string
	Fn   func(c *CPU, operand uint16) uint8
}

// instructionLength is indexed by opcode byte and gives the number of
// bytes making up the instruction (1/2/3), or 0 for the fixed illegal
// set.
var instructionLength [256]uint8

var instructionSet [256]Instruction

// r8 register-index convention, shared by LD r,r', the ALU-on-A
// family and INC/DEC r: 0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A.
func getR8(c *CPU, idx uint8) uint8 {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.readByte(c.HL())
	default:
		return c.A
	}
}

func setR8(c *CPU, idx uint8, v uint8) {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.writeByte(c.HL(), v)
	default:
		c.A = v
	}
}

// rp register-pair convention used by LD rr,d16 / INC rr / DEC rr /
// ADD HL,rr: 0=BC 1=DE 2=HL 3=SP.
func getRP(c *CPU, idx uint8) uint16 {
	switch idx {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func setRP(c *CPU, idx uint8, v uint16) {
	switch idx {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

// stkRP register-pair convention for PUSH/POP: 0=BC 1=DE 2=HL 3=AF.
func getStkRP(c *CPU, idx uint8) uint16 {
	if idx == 3 {
		return c.AF()
	}
	return getRP(c, idx)
}

func setStkRP(c *CPU, idx uint8, v uint16) {
	if idx == 3 {
		c.SetAF(v)
		return
	}
	setRP(c, idx, v)
}

func init() {
	buildLengthTable()
	buildBaseTable()
}

func buildLengthTable() {
	for i := range instructionLength {
		instructionLength[i] = 1
	}
	for _, op := range []uint8{0x01, 0x08, 0x11, 0x21, 0x31, 0xC2, 0xC3, 0xC4, 0xCA, 0xCC, 0xCD, 0xD2, 0xD4, 0xDA, 0xDC, 0xEA, 0xFA} {
		instructionLength[op] = 3
	}
	for _, op := range []uint8{
		0x06, 0x0E, 0x10, 0x16, 0x18, 0x1E, 0x20, 0x26, 0x28, 0x2E, 0x30, 0x36, 0x38, 0x3E,
		0xC6, 0xCE, 0xD6, 0xDE, 0xE0, 0xE6, 0xE8, 0xEE, 0xF0, 0xF6, 0xF8, 0xFE,
	} {
		instructionLength[op] = 2
	}
	for op := range illegalOpcodes {
		instructionLength[op] = 0
	}
}

func d8(operand uint16) uint8   { return uint8(operand) }
func d16(operand uint16) uint16 { return operand }

func buildBaseTable() {
	reg := [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	rp := [4]string{"BC", "DE", "HL", "SP"}
	stk := [4]string{"BC", "DE", "HL", "AF"}
	cc := [4]string{"NZ", "Z", "NC", "C"}

	for i := range instructionSet {
		instructionSet[i] = Instruction{Name: "ILLEGAL", Fn: illegalFn}
	}

	// --- NOP / misc singletons ---
	instructionSet[0x00] = Instruction{"NOP", func(c *CPU, _ uint16) uint8 { return 4 }}
	instructionSet[0x10] = Instruction{"STOP", opSTOP}
	instructionSet[0x76] = Instruction{"HALT", func(c *CPU, _ uint16) uint8 {
		c.Halted = true
		return 4
	}}
	instructionSet[0xF3] = Instruction{"DI", func(c *CPU, _ uint16) uint8 {
		c.irq.IME = false
		c.irq.Enabling = false
		return 4
	}}
	instructionSet[0xFB] = Instruction{"EI", func(c *CPU, _ uint16) uint8 {
		c.irq.Enabling = true
		return 4
	}}
	instructionSet[0x27] = Instruction{"DAA", func(c *CPU, _ uint16) uint8 { c.daa(); return 4 }}
	instructionSet[0x2F] = Instruction{"CPL", func(c *CPU, _ uint16) uint8 { c.cpl(); return 4 }}
	instructionSet[0x37] = Instruction{"SCF", func(c *CPU, _ uint16) uint8 { c.scf(); return 4 }}
	instructionSet[0x3F] = Instruction{"CCF", func(c *CPU, _ uint16) uint8 { c.ccf(); return 4 }}
	instructionSet[0x07] = Instruction{"RLCA", func(c *CPU, _ uint16) uint8 { c.A = c.rlc(c.A, false); return 4 }}
	instructionSet[0x0F] = Instruction{"RRCA", func(c *CPU, _ uint16) uint8 { c.A = c.rrc(c.A, false); return 4 }}
	instructionSet[0x17] = Instruction{"RLA", func(c *CPU, _ uint16) uint8 { c.A = c.rl(c.A, false); return 4 }}
	instructionSet[0x1F] = Instruction{"RRA", func(c *CPU, _ uint16) uint8 { c.A = c.rr(c.A, false); return 4 }}

	// --- LD (nn),SP ---
	instructionSet[0x08] = Instruction{"LD (a16),SP", func(c *CPU, operand uint16) uint8 {
		addr := d16(operand)
		c.writeByte(addr, uint8(c.SP))
		c.writeByte(addr+1, uint8(c.SP>>8))
		return 20
	}}

	// --- indirect A loads with HL increment/decrement, and BC/DE ---
	instructionSet[0x02] = Instruction{"LD (BC),A", func(c *CPU, _ uint16) uint8 { c.writeByte(c.BC(), c.A); return 8 }}
	instructionSet[0x12] = Instruction{"LD (DE),A", func(c *CPU, _ uint16) uint8 { c.writeByte(c.DE(), c.A); return 8 }}
	instructionSet[0x0A] = Instruction{"LD A,(BC)", func(c *CPU, _ uint16) uint8 { c.A = c.readByte(c.BC()); return 8 }}
	instructionSet[0x1A] = Instruction{"LD A,(DE)", func(c *CPU, _ uint16) uint8 { c.A = c.readByte(c.DE()); return 8 }}
	instructionSet[0x22] = Instruction{"LD (HL+),A", func(c *CPU, _ uint16) uint8 {
		c.writeByte(c.HL(), c.A)
		c.SetHL(c.HL() + 1)
		return 8
	}}
	instructionSet[0x32] = Instruction{"LD (HL-),A", func(c *CPU, _ uint16) uint8 {
		c.writeByte(c.HL(), c.A)
		c.SetHL(c.HL() - 1)
		return 8
	}}
	instructionSet[0x2A] = Instruction{"LD A,(HL+)", func(c *CPU, _ uint16) uint8 {
		c.A = c.readByte(c.HL())
		c.SetHL(c.HL() + 1)
		return 8
	}}
	instructionSet[0x3A] = Instruction{"LD A,(HL-)", func(c *CPU, _ uint16) uint8 {
		c.A = c.readByte(c.HL())
		c.SetHL(c.HL() - 1)
		return 8
	}}

	// --- 0xFF00-paged and absolute accesses ---
	instructionSet[0xE0] = Instruction{"LDH (a8),A", func(c *CPU, operand uint16) uint8 {
		c.writeByte(0xFF00+uint16(d8(operand)), c.A)
		return 12
	}}
	instructionSet[0xF0] = Instruction{"LDH A,(a8)", func(c *CPU, operand uint16) uint8 {
		c.A = c.readByte(0xFF00 + uint16(d8(operand)))
		return 12
	}}
	instructionSet[0xE2] = Instruction{"LD (C),A", func(c *CPU, _ uint16) uint8 {
		c.writeByte(0xFF00+uint16(c.C), c.A)
		return 8
	}}
	instructionSet[0xF2] = Instruction{"LD A,(C)", func(c *CPU, _ uint16) uint8 {
		c.A = c.readByte(0xFF00 + uint16(c.C))
		return 8
	}}
	instructionSet[0xEA] = Instruction{"LD (a16),A", func(c *CPU, operand uint16) uint8 {
		c.writeByte(d16(operand), c.A)
		return 16
	}}
	instructionSet[0xFA] = Instruction{"LD A,(a16)", func(c *CPU, operand uint16) uint8 {
		c.A = c.readByte(d16(operand))
		return 16
	}}

	// --- 16-bit stack/SP-offset family ---
	instructionSet[0xE8] = Instruction{"ADD SP,r8", func(c *CPU, operand uint16) uint8 {
		c.SP = c.addSPSigned(d8(operand))
		return 16
	}}
	instructionSet[0xF8] = Instruction{"LD HL,SP+r8", func(c *CPU, operand uint16) uint8 {
		c.SetHL(c.addSPSigned(d8(operand)))
		return 12
	}}
	instructionSet[0xF9] = Instruction{"LD SP,HL", func(c *CPU, _ uint16) uint8 {
		c.SP = c.HL()
		return 8
	}}
	instructionSet[0xE9] = Instruction{"JP (HL)", func(c *CPU, _ uint16) uint8 {
		c.PC = c.HL()
		return 4
	}}

	// --- LD r,r' (0x40-0x7F minus HALT) ---
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			op := 0x40 + dst*8 + src
			if op == 0x76 {
				continue
			}
			d, s := dst, src
			cycles := uint8(4)
			if d == 6 || s == 6 {
				cycles = 8
			}
			instructionSet[op] = Instruction{
				Name: "LD " + reg[d] + "," + reg[s],
				Fn: func(c *CPU, _ uint16) uint8 {
					setR8(c, d, getR8(c, s))
					return cycles
				},
			}
		}
	}

	// --- LD r,d8 ---
	ldD8 := [8]uint8{0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E}
	for idx, op := range ldD8 {
		d := uint8(idx)
		cycles := uint8(8)
		if d == 6 {
			cycles = 12
		}
		instructionSet[op] = Instruction{
			Name: "LD " + reg[d] + ",d8",
			Fn: func(c *CPU, operand uint16) uint8 {
				setR8(c, d, d8(operand))
				return cycles
			},
		}
	}

	// --- ALU A,r / A,d8 families ---
	aluFamilies := []struct {
		base uint8
		name string
		fn   func(c *CPU, a, b uint8) uint8
	}{
		{0x80, "ADD", func(c *CPU, a, b uint8) uint8 { return c.add(a, b) }},
		{0x88, "ADC", func(c *CPU, a, b uint8) uint8 { return c.adc(a, b) }},
		{0x90, "SUB", func(c *CPU, a, b uint8) uint8 { return c.sub(a, b) }},
		{0x98, "SBC", func(c *CPU, a, b uint8) uint8 { return c.sbc(a, b) }},
		{0xA0, "AND", func(c *CPU, a, b uint8) uint8 { return c.and(a, b) }},
		{0xA8, "XOR", func(c *CPU, a, b uint8) uint8 { return c.xor(a, b) }},
		{0xB0, "OR", func(c *CPU, a, b uint8) uint8 { return c.or(a, b) }},
		{0xB8, "CP", func(c *CPU, a, b uint8) uint8 { c.cp(a, b); return a }},
	}
	aluD8 := map[string]uint8{"ADD": 0xC6, "ADC": 0xCE, "SUB": 0xD6, "SBC": 0xDE, "AND": 0xE6, "XOR": 0xEE, "OR": 0xF6, "CP": 0xFE}
	for _, fam := range aluFamilies {
		base, name, fn := fam.base, fam.name, fam.fn
		for s := uint8(0); s < 8; s++ {
			op := base + s
			src := s
			cycles := uint8(4)
			if src == 6 {
				cycles = 8
			}
			instructionSet[op] = Instruction{
				Name: name + " A," + reg[src],
				Fn: func(c *CPU, _ uint16) uint8 {
					result := fn(c, c.A, getR8(c, src))
					if name != "CP" {
						c.A = result
					}
					return cycles
				},
			}
		}
		d8Op := aluD8[name]
		instructionSet[d8Op] = Instruction{
			Name: name + " A,d8",
			Fn: func(c *CPU, operand uint16) uint8 {
				result := fn(c, c.A, d8(operand))
				if name != "CP" {
					c.A = result
				}
				return 8
			},
		}
	}

	// --- INC r / DEC r ---
	incOps := [8]uint8{0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C}
	decOps := [8]uint8{0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D}
	for idx := uint8(0); idx < 8; idx++ {
		d := idx
		cycles := uint8(4)
		if d == 6 {
			cycles = 12
		}
		instructionSet[incOps[idx]] = Instruction{
			Name: "INC " + reg[d],
			Fn: func(c *CPU, _ uint16) uint8 {
				setR8(c, d, c.inc(getR8(c, d)))
				return cycles
			},
		}
		instructionSet[decOps[idx]] = Instruction{
			Name: "DEC " + reg[d],
			Fn: func(c *CPU, _ uint16) uint8 {
				setR8(c, d, c.dec(getR8(c, d)))
				return cycles
			},
		}
	}

	// --- 16-bit LD rr,d16 / INC rr / DEC rr / ADD HL,rr ---
	ldRP16 := [4]uint8{0x01, 0x11, 0x21, 0x31}
	incRP := [4]uint8{0x03, 0x13, 0x23, 0x33}
	decRP := [4]uint8{0x0B, 0x1B, 0x2B, 0x3B}
	addHLRP := [4]uint8{0x09, 0x19, 0x29, 0x39}
	for idx := uint8(0); idx < 4; idx++ {
		p := idx
		instructionSet[ldRP16[idx]] = Instruction{
			Name: "LD " + rp[p] + ",d16",
			Fn: func(c *CPU, operand uint16) uint8 {
				setRP(c, p, d16(operand))
				return 12
			},
		}
		instructionSet[incRP[idx]] = Instruction{
			Name: "INC " + rp[p],
			Fn: func(c *CPU, _ uint16) uint8 {
				setRP(c, p, getRP(c, p)+1)
				return 8
			},
		}
		instructionSet[decRP[idx]] = Instruction{
			Name: "DEC " + rp[p],
			Fn: func(c *CPU, _ uint16) uint8 {
				setRP(c, p, getRP(c, p)-1)
				return 8
			},
		}
		instructionSet[addHLRP[idx]] = Instruction{
			Name: "ADD HL," + rp[p],
			Fn: func(c *CPU, _ uint16) uint8 {
				c.SetHL(c.addHL16(c.HL(), getRP(c, p)))
				return 8
			},
		}
	}

	// --- PUSH/POP ---
	pushOps := [4]uint8{0xC5, 0xD5, 0xE5, 0xF5}
	popOps := [4]uint8{0xC1, 0xD1, 0xE1, 0xF1}
	for idx := uint8(0); idx < 4; idx++ {
		p := idx
		instructionSet[pushOps[idx]] = Instruction{
			Name: "PUSH " + stk[p],
			Fn: func(c *CPU, _ uint16) uint8 {
				c.push16(getStkRP(c, p))
				return 16
			},
		}
		instructionSet[popOps[idx]] = Instruction{
			Name: "POP " + stk[p],
			Fn: func(c *CPU, _ uint16) uint8 {
				setStkRP(c, p, c.pop16())
				return 12
			},
		}
	}

	// --- RST n ---
	rstOps := [8]uint8{0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF}
	for idx, op := range rstOps {
		vector := uint16(idx) * 8
		instructionSet[op] = Instruction{
			Name: "RST",
			Fn: func(c *CPU, _ uint16) uint8 {
				c.push16(c.PC)
				c.PC = vector
				return 16
			},
		}
	}

	// --- JP / JR / CALL / RET (unconditional + cc) ---
	instructionSet[0xC3] = Instruction{"JP a16", func(c *CPU, operand uint16) uint8 {
		c.PC = d16(operand)
		return 16
	}}
	instructionSet[0x18] = Instruction{"JR r8", func(c *CPU, operand uint16) uint8 {
		c.PC = uint16(int32(c.PC) + int32(int8(d8(operand))))
		return 12
	}}
	instructionSet[0xCD] = Instruction{"CALL a16", func(c *CPU, operand uint16) uint8 {
		c.push16(c.PC)
		c.PC = d16(operand)
		return 24
	}}
	instructionSet[0xC9] = Instruction{"RET", func(c *CPU, _ uint16) uint8 {
		c.PC = c.pop16()
		return 16
	}}
	instructionSet[0xD9] = Instruction{"RETI", func(c *CPU, _ uint16) uint8 {
		c.PC = c.pop16()
		c.irq.IME = true
		return 16
	}}

	jpCC := [4]uint8{0xC2, 0xCA, 0xD2, 0xDA}
	callCC := [4]uint8{0xC4, 0xCC, 0xD4, 0xDC}
	retCC := [4]uint8{0xC0, 0xC8, 0xD0, 0xD8}
	jrCC := [4]uint8{0x20, 0x28, 0x30, 0x38}
	for idx := uint8(0); idx < 4; idx++ {
		code := idx
		instructionSet[jpCC[idx]] = Instruction{
			Name: "JP " + cc[code] + ",a16",
			Fn: func(c *CPU, operand uint16) uint8 {
				if c.cond(code) {
					c.PC = d16(operand)
					return 16
				}
				return 12
			},
		}
		instructionSet[callCC[idx]] = Instruction{
			Name: "CALL " + cc[code] + ",a16",
			Fn: func(c *CPU, operand uint16) uint8 {
				if c.cond(code) {
					c.push16(c.PC)
					c.PC = d16(operand)
					return 24
				}
				return 12
			},
		}
		instructionSet[retCC[idx]] = Instruction{
			Name: "RET " + cc[code],
			Fn: func(c *CPU, _ uint16) uint8 {
				if c.cond(code) {
					c.PC = c.pop16()
					return 20
				}
				return 8
			},
		}
		instructionSet[jrCC[idx]] = Instruction{
			Name: "JR " + cc[code] + ",r8",
			Fn: func(c *CPU, operand uint16) uint8 {
				if c.cond(code) {
					c.PC = uint16(int32(c.PC) + int32(int8(d8(operand))))
					return 12
				}
				return 8
			},
		}
	}
}

func illegalFn(c *CPU, _ uint16) uint8 {
	c.Stuck = true
	return 0
}

// opSTOP implements STOP. The skipped operand byte is already
// consumed by Execute's generic two-byte fetch, so on DMG this is a
// plain NOP; stopped is deliberately never set. On CGB with KEY1
// bit 0 armed, it
// instead toggles double-speed, resets DIV, and reports the new state
// back through KEY1.
func opSTOP(c *CPU, _ uint16) uint8 {
	if c.CGBMode && c.keyArmed() {
		c.DoubleSpeed = !c.DoubleSpeed
		c.clearKeyArm()
		c.writeByte(0xFF04, 0)
	}
	return 4
}
