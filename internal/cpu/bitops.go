package cpu

import "sm83/pkg/bits"

// swap swaps the nibbles of value (CB SWAP).
func (c *CPU) swap(value uint8) uint8 {
	result := value<<4 | value>>4
	c.setFlags(result == 0, false, false, false)
	return result
}

// testBit implements CB BIT b,r: Z is the complement of the tested
// bit, N cleared, H set, C preserved.
func (c *CPU) testBit(value, position uint8) {
	c.setFlag(FlagZero, !bits.Test(value, position))
	c.setFlag(FlagSubtract, false)
	c.setFlag(FlagHalfCarry, true)
}

// resBit clears the given bit; no flags affected.
func (c *CPU) resBit(value, position uint8) uint8 {
	return bits.Reset(value, position)
}

// setBit sets the given bit; no flags affected.
func (c *CPU) setBit(value, position uint8) uint8 {
	return bits.Set(value, position)
}
