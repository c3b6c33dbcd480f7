package bus

import (
	"testing"

	"sm83/internal/cartridge"
	"sm83/internal/interrupts"
	"sm83/internal/timer"
	"sm83/pkg/log"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	rom := make([]byte, 2*0x4000)
	rom[0x148] = 0x00
	rom[0x149] = 0x00
	var chk uint8
	for addr := 0x134; addr <= 0x14C; addr++ {
		chk = chk - rom[addr] - 1
	}
	rom[0x14D] = chk

	cart, err := cartridge.Load(rom, log.Null())
	if err != nil {
		t.Fatal(err)
	}
	irq := interrupts.NewService()
	return New(cart, timer.NewController(irq), irq, log.Null())
}

func TestROMIsImmutableThroughTheBus(t *testing.T) {
	b := newTestBus(t)
	before := b.Read(0x0100)
	b.Write(0x0100, before^0xFF)
	if got := b.Read(0x0100); got != before {
		t.Errorf("expected ROM unchanged, was %02x now %02x", before, got)
	}
}

func TestEchoRAMMirrorsWorkRAM(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xC010, 0x77)
	if got := b.Read(0xE010); got != 0x77 {
		t.Errorf("expected echo RAM to mirror WRAM, got %02x", got)
	}
	b.Write(0xE020, 0x99)
	if got := b.Read(0xC020); got != 0x99 {
		t.Errorf("expected write through echo RAM to land in WRAM, got %02x", got)
	}
}

func TestLYStub_DisabledInTestMode(t *testing.T) {
	b := newTestBus(t)
	if got := b.Read(lyRegister); got != lyStub {
		t.Errorf("expected LY stub 0x90, got %02x", got)
	}
	b.SetTestMode(true)
	b.Set(lyRegister, 0x00)
	if got := b.Read(lyRegister); got != 0x00 {
		t.Errorf("expected LY stub disabled in test mode, got %02x", got)
	}
}

func TestSerialSink_FiresOnTransferStart(t *testing.T) {
	b := newTestBus(t)
	var got byte
	b.SetSerialSink(func(v byte) { got = v })

	b.Write(serialData, 'A')
	b.Write(serialControl, 0x81)

	if got != 'A' {
		t.Errorf("expected sink to receive 'A', got %q", got)
	}
}

func TestSerialSink_SuppressedInTestMode(t *testing.T) {
	b := newTestBus(t)
	b.SetTestMode(true)
	fired := false
	b.SetSerialSink(func(v byte) { fired = true })

	b.Write(serialData, 'A')
	b.Write(serialControl, 0x81)

	if fired {
		t.Errorf("expected serial sink suppressed in test mode")
	}
	if got := b.Read(serialControl); got != 0x81 {
		t.Errorf("expected the raw write to still land, got %02x", got)
	}
}
