package cartridge

import (
	"github.com/cespare/xxhash"
	"sm83/pkg/log"
)

// Cartridge is a loaded ROM image bound to its MBC and parsed header.
// It is the cartridge-side collaborator the bus dispatches ROM/SRAM
// reads and writes to.
type Cartridge struct {
	MBC
	header Header
	digest uint64
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header { return c.header }

// Title returns the cartridge's declared title.
func (c *Cartridge) Title() string { return c.header.Title }

// Digest returns a content hash of the raw ROM image, stable across
// loads of the same ROM file. An identity fingerprint, not a security
// boundary, so a fast non-cryptographic hash is enough.
func (c *Cartridge) Digest() uint64 { return c.digest }

// newCartridge constructs a Cartridge from a parsed header, a freshly built
// MBC, and the raw ROM bytes used for the digest. Internal to the
// package; external callers go through Load.
func newCartridge(header Header, mbc MBC, rom []byte) *Cartridge {
	return &Cartridge{
		MBC:    mbc,
		header: header,
		digest: xxhash.Sum64(rom),
	}
}

// newMBC dispatches on header.CartridgeType to build the matching
// banking implementation.
func newMBC(rom []byte, header Header, logger log.Logger) (MBC, error) {
	switch header.CartridgeType {
	case TypeROM:
		return NewMBC0(rom, logger), nil
	case TypeMBC1, TypeMBC1RAM, TypeMBC1RAMBatt:
		return NewMBC1(rom, header.ROMBanks, header.RAMBanks, logger), nil
	default:
		return nil, &LoadError{Reason: "unsupported cartridge type", Detail: header.CartridgeType.String()}
	}
}
