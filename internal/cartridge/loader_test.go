package cartridge

import (
	"testing"

	"sm83/pkg/log"
)

// validROM builds a minimal, checksum-correct MBC0 image of the given
// bank count so loader tests don't need a real ROM fixture on disk.
func validROM(banks int) []byte {
	rom := make([]byte, banks*0x4000)
	rom[0x147] = 0x00 // MBC0
	for code, n := range romBankCounts {
		if n == banks {
			rom[0x148] = code
			break
		}
	}
	rom[0x149] = 0x00 // no RAM
	rom[0x14D] = headerChecksum(rom)
	return rom
}

func TestLoad_ValidMBC0(t *testing.T) {
	cart, err := Load(validROM(2), log.Null())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Header().CartridgeType != TypeROM {
		t.Errorf("expected TypeROM, got %v", cart.Header().CartridgeType)
	}
	if cart.Digest() == 0 {
		t.Errorf("expected a non-zero digest")
	}
}

func TestLoad_TooSmall(t *testing.T) {
	_, err := Load(make([]byte, 0x10), log.Null())
	if err == nil {
		t.Fatal("expected an error for a too-small image")
	}
}

func TestLoad_BankCountMismatch(t *testing.T) {
	rom := validROM(2)
	rom[0x148] = 1 // declares 4 banks but image has 2
	rom[0x14D] = headerChecksum(rom)
	_, err := Load(rom, log.Null())
	if err == nil {
		t.Fatal("expected a bank-count mismatch error")
	}
}

func TestLoad_BadChecksum(t *testing.T) {
	rom := validROM(2)
	rom[0x14D] ^= 0xFF
	_, err := Load(rom, log.Null())
	if err == nil {
		t.Fatal("expected a checksum mismatch error")
	}
}

func TestLoad_InvalidRAMSizeCode(t *testing.T) {
	rom := validROM(2)
	rom[0x149] = 1
	rom[0x14D] = headerChecksum(rom)
	_, err := Load(rom, log.Null())
	if err == nil {
		t.Fatal("expected an invalid RAM size error")
	}
}

func TestLoad_UnsupportedType(t *testing.T) {
	rom := validROM(2)
	rom[0x147] = 0x1B // unsupported (MBC5+RAM+BATT, not wired)
	rom[0x14D] = headerChecksum(rom)
	_, err := Load(rom, log.Null())
	if err == nil {
		t.Fatal("expected an unsupported cartridge type error")
	}
}

func TestMBC0_ROMWritesAreNoOps(t *testing.T) {
	cart, err := Load(validROM(2), log.Null())
	if err != nil {
		t.Fatal(err)
	}
	before := cart.ReadROM(0x0150)
	cart.WriteROM(0x0150, before^0xFF)
	if got := cart.ReadROM(0x0150); got != before {
		t.Errorf("ROM write should be a no-op, ROM mutated from %02x to %02x", before, got)
	}
}
