// Package cartridge implements cartridge-header parsing and the
// MBC0 and MBC1 memory bank controllers, plus the ROM loader. Guest
// addresses arrive here already restricted to cartridge ROM/SRAM
// ranges by the bus; the MBC never sees an
// address outside [0x0000,0x7FFF] or [0x0000,0x1FFF] (SRAM offset).
package cartridge

import "sm83/pkg/log"

// MBC is the shared operation set every cartridge variant implements.
// Variants are a small closed set, not a class hierarchy, so a switch
// over the type stays exhaustiveness-checkable.
type MBC interface {
	ReadROM(addr uint16) uint8
	WriteROM(addr uint16, value uint8)
	ReadSRAM(offset uint16) uint8
	WriteSRAM(offset uint16, value uint8)
}

// romMaskTable maps ROM bank count to the bank-select mask; smaller
// ROMs decode fewer select bits.
var romMaskTable = map[int]uint8{
	2: 0b0000_0001, 4: 0b0000_0011, 8: 0b0000_0111, 16: 0b0000_1111,
	32: 0b0001_1111, 64: 0b0001_1111, 128: 0b0001_1111,
}

// MBC0 is the simplest cartridge: a single fixed ROM image with no
// banking and (usually) no SRAM. ROM writes and SRAM access beyond
// the raw array are legal no-ops, logged as anomalies.
type MBC0 struct {
	rom []byte
	log log.Logger
}

// NewMBC0 returns an MBC0 wrapping the given ROM image.
func NewMBC0(rom []byte, logger log.Logger) *MBC0 {
	return &MBC0{rom: rom, log: logger}
}

func (m *MBC0) ReadROM(addr uint16) uint8 { return m.rom[addr] }

func (m *MBC0) WriteROM(addr uint16, value uint8) {
	m.log.Debugf("cartridge: ignored ROM write 0x%02X to 0x%04X (MBC0)", value, addr)
}

func (m *MBC0) ReadSRAM(uint16) uint8 { return 0xFF }

func (m *MBC0) WriteSRAM(offset uint16, value uint8) {
	m.log.Debugf("cartridge: ignored SRAM write 0x%02X to offset 0x%04X (MBC0, no SRAM)", value, offset)
}

// MBC1 implements the MBC1 banking registers: a 5-bit ROM bank select,
// a 2-bit register that doubles as upper ROM bits or the RAM bank
// depending on mode, and the mode latch itself.
type MBC1 struct {
	rom []byte
	ram []byte
	log log.Logger

	ramEnabled    bool
	romBankSelect uint8 // 5-bit, never 0
	ramBankSelect uint8 // 2-bit
	mode          uint8 // 0 = ROM banking, 1 = RAM banking

	romBankCount int
	ramBankCount int
	romMask      uint8
}

// NewMBC1 returns an MBC1 wrapping the given ROM image and sized for
// the given bank counts.
func NewMBC1(rom []byte, romBankCount, ramBankCount int, logger log.Logger) *MBC1 {
	ramSize := ramBankCount * 0x2000
	return &MBC1{
		rom:           rom,
		ram:           make([]byte, ramSize),
		log:           logger,
		romBankSelect: 1,
		romBankCount:  romBankCount,
		ramBankCount:  ramBankCount,
		romMask:       romMaskTable[romBankCount],
	}
}

func (m *MBC1) ReadROM(addr uint16) uint8 {
	if addr < 0x4000 {
		bank := uint32(0)
		if m.mode == 1 {
			bank = (uint32(m.ramBankSelect) << 5) % uint32(m.romBankCount)
		}
		return m.rom[bank*0x4000+uint32(addr)]
	}
	bank := (uint32(m.ramBankSelect)<<5)%uint32(m.romBankCount) | uint32(m.romBankSelect)
	return m.rom[bank*0x4000+uint32(addr-0x4000)]
}

func (m *MBC1) WriteROM(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case addr < 0x4000:
		sel := value & m.romMask
		if sel == 0 {
			sel = 1
		}
		m.romBankSelect = sel
	case addr < 0x6000:
		m.ramBankSelect = value & 0x03
	default:
		m.mode = value & 0x01
	}
}

func (m *MBC1) ReadSRAM(offset uint16) uint8 {
	if !m.ramEnabled || m.ramBankCount == 0 {
		return 0xFF
	}
	bank := 0
	if m.mode == 1 {
		bank = int(m.ramBankSelect) % m.ramBankCount
	}
	return m.ram[bank*0x2000+int(offset)]
}

func (m *MBC1) WriteSRAM(offset uint16, value uint8) {
	if !m.ramEnabled || m.ramBankCount == 0 {
		m.log.Debugf("cartridge: dropped SRAM write 0x%02X to offset 0x%04X (RAM disabled)", value, offset)
		return
	}
	bank := 0
	if m.mode == 1 {
		bank = int(m.ramBankSelect) % m.ramBankCount
	}
	m.ram[bank*0x2000+int(offset)] = value
}

// SaveRAM returns a copy of the cartridge's battery-backed RAM. The
// core does no save-state persistence of its own; this accessor
// exists purely so a host can snapshot RAM for its own persistence.
func (m *MBC1) SaveRAM() []byte {
	out := make([]byte, len(m.ram))
	copy(out, m.ram)
	return out
}
