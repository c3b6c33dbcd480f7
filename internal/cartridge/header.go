package cartridge

import (
	"fmt"
	"strings"
)

// Type identifies the MBC variant declared at ROM offset 0x0147.
// Only the values the core actually supports get a banking
// implementation; the rest are recognised so the loader can report a
// precise FatalLoad error instead of silently mis-banking a cartridge
// it doesn't understand.
type Type uint8

const (
	TypeROM         Type = 0x00
	TypeMBC1        Type = 0x01
	TypeMBC1RAM     Type = 0x02
	TypeMBC1RAMBatt Type = 0x03
	TypeMBC2        Type = 0x05
	TypeMBC2Batt    Type = 0x06
	TypeMBC3        Type = 0x11
	TypeMBC5        Type = 0x19
)

func (t Type) String() string {
	switch t {
	case TypeROM:
		return "ROM"
	case TypeMBC1, TypeMBC1RAM, TypeMBC1RAMBatt:
		return "MBC1"
	case TypeMBC2, TypeMBC2Batt:
		return "MBC2"
	case TypeMBC3:
		return "MBC3"
	case TypeMBC5:
		return "MBC5"
	default:
		return fmt.Sprintf("unknown(0x%02X)", uint8(t))
	}
}

// romBankCounts maps the ROM-size byte at 0x0148 to a bank count.
var romBankCounts = map[uint8]int{
	0: 2, 1: 4, 2: 8, 3: 16, 4: 32, 5: 64, 6: 128, 7: 256, 8: 512,
}

// ramBankCounts maps the RAM-size byte at 0x0149 to a bank count
// (each bank 8 KiB). Code 1 is invalid and has no entry.
var ramBankCounts = map[uint8]int{
	0: 0, 2: 1, 3: 4, 4: 16, 5: 8,
}

// Header is the parsed cartridge header (0x0100-0x014F). Only the
// fields consumed by the loader and MBC banking logic are kept; the
// rest of the Nintendo header (publisher names, licensee tables,
// destination code) is human-readable metadata explicitly out of
// scope for the core.
type Header struct {
	Title         string
	CartridgeType Type
	ROMBanks      int
	RAMBanks      int
	ChecksumByte  uint8
}

// parseHeader extracts the fields the core needs from the 0x0100-0x014F
// window of a ROM image. It does not validate anything; validation is
// the loader's job, so that each failure can be reported with its own
// FatalLoad cause.
func parseHeader(rom []byte) Header {
	h := Header{
		Title:         strings.TrimRight(string(rom[0x134:0x144]), "\x00"),
		CartridgeType: Type(rom[0x147]),
		ROMBanks:      romBankCounts[rom[0x148]],
		RAMBanks:      ramBankCounts[rom[0x149]],
		ChecksumByte:  rom[0x14D],
	}
	return h
}

// headerChecksum computes the declared header checksum over
// offsets 0x0134..=0x014C of the ROM.
func headerChecksum(rom []byte) uint8 {
	var chk uint8
	for addr := 0x0134; addr <= 0x014C; addr++ {
		chk = chk - rom[addr] - 1
	}
	return chk
}
