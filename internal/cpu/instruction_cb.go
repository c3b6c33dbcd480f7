package cpu

// instructionSetCB is the 256-entry CB-prefixed table: RLC/RRC/RL/RR/
// SLA/SRA/SWAP/SRL across the 8 r8 targets, then BIT/RES/SET across
// all 8 bits and all 8 r8 targets. Generated rather than
// hand-duplicated, since the shape repeats mechanically across every
// register and every bit.
var instructionSetCB [256]Instruction

func init() {
	buildCBTable()
}

func buildCBTable() {
	reg := [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

	rotateFamilies := []struct {
		base uint8
		name string
		fn   func(c *CPU, v uint8) uint8
	}{
		{0x00, "RLC", func(c *CPU, v uint8) uint8 { return c.rlc(v, true) }},
		{0x08, "RRC", func(c *CPU, v uint8) uint8 { return c.rrc(v, true) }},
		{0x10, "RL", func(c *CPU, v uint8) uint8 { return c.rl(v, true) }},
		{0x18, "RR", func(c *CPU, v uint8) uint8 { return c.rr(v, true) }},
		{0x20, "SLA", func(c *CPU, v uint8) uint8 { return c.sla(v) }},
		{0x28, "SRA", func(c *CPU, v uint8) uint8 { return c.sra(v) }},
		{0x30, "SWAP", func(c *CPU, v uint8) uint8 { return c.swap(v) }},
		{0x38, "SRL", func(c *CPU, v uint8) uint8 { return c.srl(v) }},
	}
	for _, fam := range rotateFamilies {
		base, name, fn := fam.base, fam.name, fam.fn
		for s := uint8(0); s < 8; s++ {
			op := base + s
			src := s
			cycles := uint8(8)
			if src == 6 {
				cycles = 16
			}
			instructionSetCB[op] = Instruction{
				Name: name + " " + reg[src],
				Fn: func(c *CPU, _ uint16) uint8 {
					setR8(c, src, fn(c, getR8(c, src)))
					return cycles
				},
			}
		}
	}

	// BIT b,r: 0x40-0x7F, 8 bits x 8 registers.
	for bit := uint8(0); bit < 8; bit++ {
		for s := uint8(0); s < 8; s++ {
			op := 0x40 + bit*8 + s
			b, src := bit, s
			cycles := uint8(8)
			if src == 6 {
				cycles = 16
			}
			instructionSetCB[op] = Instruction{
				Name: "BIT",
				Fn: func(c *CPU, _ uint16) uint8 {
					c.testBit(getR8(c, src), b)
					return cycles
				},
			}
		}
	}

	// RES b,r: 0x80-0xBF.
	for bit := uint8(0); bit < 8; bit++ {
		for s := uint8(0); s < 8; s++ {
			op := 0x80 + bit*8 + s
			b, src := bit, s
			cycles := uint8(8)
			if src == 6 {
				cycles = 16
			}
			instructionSetCB[op] = Instruction{
				Name: "RES",
				Fn: func(c *CPU, _ uint16) uint8 {
					setR8(c, src, c.resBit(getR8(c, src), b))
					return cycles
				},
			}
		}
	}

	// SET b,r: 0xC0-0xFF.
	for bit := uint8(0); bit < 8; bit++ {
		for s := uint8(0); s < 8; s++ {
			op := 0xC0 + bit*8 + s
			b, src := bit, s
			cycles := uint8(8)
			if src == 6 {
				cycles = 16
			}
			instructionSetCB[op] = Instruction{
				Name: "SET",
				Fn: func(c *CPU, _ uint16) uint8 {
					setR8(c, src, c.setBit(getR8(c, src), b))
					return cycles
				},
			}
		}
	}
}
