// Package interrupts implements the Game Boy's interrupt controller:
// the IF/IE registers, the IME master-enable flag, and the five fixed
// service vectors.
package interrupts

import "sm83/pkg/bits"

// Flag identifies one of the five interrupt sources. The numeric
// value is both the bit position in IF/IE and the priority order used
// when more than one is pending (lower value wins).
type Flag = uint8

const (
	VBlank Flag = iota
	LCD
	Timer
	Serial
	Joypad
)

// Vector returns the fixed service address for the given interrupt
// flag.
func Vector(f Flag) uint16 {
	return vectors[f]
}

var vectors = [5]uint16{
	VBlank: 0x0040,
	LCD:    0x0048,
	Timer:  0x0050,
	Serial: 0x0058,
	Joypad: 0x0060,
}

const (
	// FlagRegister is the address of IF, the interrupt flag register.
	FlagRegister uint16 = 0xFF0F
	// EnableRegister is the address of IE, the interrupt enable register.
	EnableRegister uint16 = 0xFFFF
)

// Service holds the live state of the interrupt controller: the
// pending flags, the enable mask, and the two-stage IME state needed
// to model EI's one-instruction-delayed enable.
type Service struct {
	IF uint8 // pending interrupt requests
	IE uint8 // enabled interrupt sources

	// IME is the interrupt master enable flag.
	IME bool
	// Enabling is set by EI and committed to IME by the service pass
	// that follows EI's execution; that pass dispatches nothing, so
	// the earliest dispatch comes after the next instruction.
	Enabling bool
}

// NewService returns an interrupt controller in its post-boot state:
// no interrupts pending, none enabled, IME off.
func NewService() *Service {
	return &Service{}
}

// Request raises the given interrupt's pending flag. Safe to call
// regardless of IME or IE; the flag latches until serviced or
// cleared.
func (s *Service) Request(f Flag) {
	s.IF = bits.Set(s.IF, f)
}

// Clear lowers the given interrupt's pending flag.
func (s *Service) Clear(f Flag) {
	s.IF = bits.Reset(s.IF, f)
}

// Pending reports whether the given interrupt is both requested and
// enabled.
func (s *Service) Pending(f Flag) bool {
	return bits.Test(s.IF, f) && bits.Test(s.IE, f)
}

// HasPending reports whether any enabled interrupt is currently
// requested, independent of IME.
func (s *Service) HasPending() bool {
	return s.IF&s.IE&0x1F != 0
}

// NextPending returns the lowest-numbered interrupt that is both
// requested and enabled, in priority order VBlank..Joypad, and true
// if one exists.
func (s *Service) NextPending() (Flag, bool) {
	for f := VBlank; f <= Joypad; f++ {
		if s.Pending(f) {
			return f, true
		}
	}
	return 0, false
}

// Read returns the value of IF or IE as seen by the guest; the top
// three bits of IF always read back as 1.
func (s *Service) Read(addr uint16) uint8 {
	switch addr {
	case FlagRegister:
		return s.IF | 0xE0
	case EnableRegister:
		return s.IE
	}
	return 0xFF
}

// Write updates IF or IE from a guest write.
func (s *Service) Write(addr uint16, value uint8) {
	switch addr {
	case FlagRegister:
		s.IF = value
	case EnableRegister:
		s.IE = value
	}
}
