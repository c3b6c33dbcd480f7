package cpu

// Registers holds the SM83's eight 8-bit general registers, addressed
// individually or paired as AF/BC/DE/HL.
type Registers struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8
}

// BC returns the BC register pair as a 16-bit value.
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }

// SetBC stores a 16-bit value into the BC register pair.
func (r *Registers) SetBC(v uint16) { r.B, r.C = uint8(v>>8), uint8(v) }

// DE returns the DE register pair as a 16-bit value.
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }

// SetDE stores a 16-bit value into the DE register pair.
func (r *Registers) SetDE(v uint16) { r.D, r.E = uint8(v>>8), uint8(v) }

// HL returns the HL register pair as a 16-bit value.
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// SetHL stores a 16-bit value into the HL register pair.
func (r *Registers) SetHL(v uint16) { r.H, r.L = uint8(v>>8), uint8(v) }

// AF returns the AF register pair as a 16-bit value. The low nibble
// of F always reads as zero.
func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }

// SetAF stores a 16-bit value into the AF register pair, masking the
// low nibble of F since it is never meaningful (POP AF relies on
// this).
func (r *Registers) SetAF(v uint16) { r.A, r.F = uint8(v>>8), uint8(v)&0xF0 }
