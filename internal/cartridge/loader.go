package cartridge

import (
	"fmt"

	"sm83/pkg/log"
)

// LoadError reports a fatal problem discovered while parsing or
// validating a ROM image. The emulator is never constructed when
// this is returned.
type LoadError struct {
	Reason string
	Detail string
}

func (e *LoadError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("cartridge: %s", e.Reason)
	}
	return fmt.Sprintf("cartridge: %s: %s", e.Reason, e.Detail)
}

// Load parses and validates a ROM image and returns the Cartridge it
// describes, or a *LoadError for any of: invalid RAM-size code,
// ROM/bank-count mismatch, header checksum mismatch, or an
// unsupported cartridge type.
func Load(rom []byte, logger log.Logger) (*Cartridge, error) {
	if logger == nil {
		logger = log.Null()
	}
	if len(rom) < 0x150 {
		return nil, &LoadError{Reason: "ROM image too small to contain a header"}
	}

	header := parseHeader(rom)

	if header.RAMBanks == 0 && rom[0x149] == 1 {
		return nil, &LoadError{Reason: "invalid RAM size code", Detail: "0x01"}
	}

	declaredBanks := header.ROMBanks
	actualBanks := len(rom) / 0x4000
	if declaredBanks != actualBanks {
		return nil, &LoadError{
			Reason: "ROM bank count mismatch",
			Detail: fmt.Sprintf("header declares %d banks, image has %d", declaredBanks, actualBanks),
		}
	}

	want := headerChecksum(rom)
	if want != header.ChecksumByte {
		return nil, &LoadError{
			Reason: "header checksum mismatch",
			Detail: fmt.Sprintf("computed 0x%02X, header says 0x%02X", want, header.ChecksumByte),
		}
	}

	mbc, err := newMBC(rom, header, logger)
	if err != nil {
		return nil, err
	}

	return newCartridge(header, mbc, rom), nil
}
