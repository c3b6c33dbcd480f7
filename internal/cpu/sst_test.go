package cpu

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"sm83/internal/bus"
	"sm83/internal/cartridge"
	"sm83/internal/interrupts"
	"sm83/internal/timer"
	"sm83/pkg/log"
)

// sstVector mirrors one SingleStepTests case (the sm83-test-data v1
// JSON schema): an initial register/RAM snapshot, and the expected
// snapshot after executing one instruction.
type sstVector struct {
	Name    string   `json:"name"`
	Initial sstState `json:"initial"`
	Final   sstState `json:"final"`
}

type sstState struct {
	PC, SP                 int
	A, B, C, D, E, F, H, L int
	RAM                    [][]int
}

func Test_SingleStepTests(t *testing.T) {
	for i := 0; i < 256; i++ {
		if i == 0xCB || illegalOpcodes[uint8(i)] {
			continue
		}
		runSSTOpcode(t, uint8(i))
	}
}

func runSSTOpcode(t *testing.T, opcode uint8) {
	path := fmt.Sprintf("testdata/sm83-test-data/v1/%02x.json", opcode)

	t.Run(fmt.Sprintf("%02x", opcode), func(t *testing.T) {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Skipf("no fixture for opcode 0x%02X", opcode)
		}
		vectors, err := loadSSTVectors(path)
		if err != nil {
			t.Fatal(err)
		}
		for _, v := range vectors {
			c, b := newSSTCPU()

			c.A, c.B, c.C, c.D = uint8(v.Initial.A), uint8(v.Initial.B), uint8(v.Initial.C), uint8(v.Initial.D)
			c.E, c.F, c.H, c.L = uint8(v.Initial.E), uint8(v.Initial.F), uint8(v.Initial.H), uint8(v.Initial.L)
			c.PC, c.SP = uint16(v.Initial.PC), uint16(v.Initial.SP)
			for _, row := range v.Initial.RAM {
				b.Set(uint16(row[0]), uint8(row[1]))
			}

			if _, err := c.Execute(); err != nil {
				t.Fatalf("%s: %v", v.Name, err)
			}

			checkReg(t, v.Name, "A", v.Final.A, c.A)
			checkReg(t, v.Name, "B", v.Final.B, c.B)
			checkReg(t, v.Name, "C", v.Final.C, c.C)
			checkReg(t, v.Name, "D", v.Final.D, c.D)
			checkReg(t, v.Name, "E", v.Final.E, c.E)
			checkReg(t, v.Name, "F", v.Final.F, c.F)
			checkReg(t, v.Name, "H", v.Final.H, c.H)
			checkReg(t, v.Name, "L", v.Final.L, c.L)
			if c.PC != uint16(v.Final.PC) {
				t.Errorf("%s: PC expecting %04x, was %04x", v.Name, v.Final.PC, c.PC)
			}
			if c.SP != uint16(v.Final.SP) {
				t.Errorf("%s: SP expecting %04x, was %04x", v.Name, v.Final.SP, c.SP)
			}
			for _, row := range v.Final.RAM {
				if got := b.Get(uint16(row[0])); got != uint8(row[1]) {
					t.Errorf("%s: RAM[%04x] expecting %02x, was %02x", v.Name, row[0], row[1], got)
				}
			}
		}
	})
}

func checkReg(t *testing.T, name, reg string, want int, got uint8) {
	t.Helper()
	if got != uint8(want) {
		t.Errorf("%s: %s expecting %02x, was %02x", name, reg, want, got)
	}
}

// sstROM is a minimal, checksum-valid MBC0 image used only to satisfy
// cartridge.Load; test mode makes the bus bypass it entirely in favour
// of the flat backing array; see bus.SetTestMode.
func sstROM() []byte {
	rom := make([]byte, 0x8000)
	rom[0x14D] = headerChecksumOfZeroROM
	return rom
}

// headerChecksumOfZeroROM is the header checksum of a ROM whose header
// window (0x134-0x14C) is all zero bytes: Σ(-rom[addr]-1) over 25 bytes
// is -25 mod 256.
const headerChecksumOfZeroROM = uint8(256 - 25)

func newSSTCPU() (*CPU, *bus.Bus) {
	cart, err := cartridge.Load(sstROM(), log.Null())
	if err != nil {
		panic(err)
	}
	irq := interrupts.NewService()
	tim := timer.NewController(irq)
	b := bus.New(cart, tim, irq, log.Null())
	b.SetTestMode(true)
	return New(b, irq), b
}

func loadSSTVectors(path string) ([]sstVector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var vectors []sstVector
	if err := json.NewDecoder(f).Decode(&vectors); err != nil {
		return nil, err
	}
	return vectors, nil
}
