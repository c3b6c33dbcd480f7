package cpu

import "sm83/pkg/bits"

// add performs 8-bit addition and sets all four flags, deriving
// half-carry from the (a^b^r)&0x10 oracle.
func (c *CPU) add(a, b uint8) uint8 {
	result := a + b
	c.setFlags(result == 0, false, bits.HalfCarryAdd(a, b, result), uint16(a)+uint16(b) > 0xFF)
	return result
}

// adc performs 8-bit addition with the incoming carry flag.
func (c *CPU) adc(a, b uint8) uint8 {
	carry := uint8(0)
	if c.isSet(FlagCarry) {
		carry = 1
	}
	result := a + b + carry
	h := (a&0x0F)+(b&0x0F)+carry > 0x0F
	cy := uint16(a)+uint16(b)+uint16(carry) > 0xFF
	c.setFlags(result == 0, false, h, cy)
	return result
}

// sub performs 8-bit subtraction, using the explicit borrow formula
// (a & 0x0F) < (b & 0x0F) + carry_in rather than the XOR oracle:
// the two are not interchangeable under borrow.
func (c *CPU) sub(a, b uint8) uint8 {
	result := a - b
	c.setFlags(result == 0, true, bits.HalfCarrySub(a, b, 0), a < b)
	return result
}

// sbc performs 8-bit subtraction with the incoming carry flag.
func (c *CPU) sbc(a, b uint8) uint8 {
	carry := uint8(0)
	if c.isSet(FlagCarry) {
		carry = 1
	}
	result := a - b - carry
	h := bits.HalfCarrySub(a, b, carry)
	cy := uint16(a) < uint16(b)+uint16(carry)
	c.setFlags(result == 0, true, h, cy)
	return result
}

// inc performs 8-bit increment; C is preserved.
func (c *CPU) inc(v uint8) uint8 {
	result := v + 1
	c.setFlag(FlagZero, result == 0)
	c.setFlag(FlagSubtract, false)
	c.setFlag(FlagHalfCarry, v&0x0F == 0x0F)
	return result
}

// dec performs 8-bit decrement; C is preserved.
func (c *CPU) dec(v uint8) uint8 {
	result := v - 1
	c.setFlag(FlagZero, result == 0)
	c.setFlag(FlagSubtract, true)
	c.setFlag(FlagHalfCarry, v&0x0F == 0x00)
	return result
}

// addHL16 adds rr to HL: Z preserved, N cleared, H from bit
// 11, C from bit 15.
func (c *CPU) addHL16(hl, rr uint16) uint16 {
	result := hl + rr
	c.setFlag(FlagSubtract, false)
	c.setFlag(FlagHalfCarry, bits.HalfCarryAdd16(hl, rr))
	c.setFlag(FlagCarry, uint32(hl)+uint32(rr) > 0xFFFF)
	return result
}

// addSPSigned computes SP + a signed 8-bit offset, shared by ADD
// SP,i8 and LD HL,SP+i8: Z and N cleared, H/C derived from
// the low-byte unsigned add (bit 3/bit 7), not the 16-bit add.
func (c *CPU) addSPSigned(offset uint8) uint16 {
	signed := int16(int8(offset))
	result := uint16(int32(c.SP) + int32(signed))
	h := (c.SP&0x0F)+(uint16(offset)&0x0F) > 0x0F
	cy := (c.SP&0xFF)+uint16(offset) > 0xFF
	c.setFlags(false, false, h, cy)
	return result
}
