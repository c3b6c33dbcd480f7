package timer

import (
	"testing"

	"sm83/internal/interrupts"
)

func TestDIV_IncrementsEvery256Cycles(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)

	c.Advance(255)
	if got := c.Read(DivRegister); got != 0 {
		t.Fatalf("expected DIV still 0 after 255 cycles, got %d", got)
	}
	c.Advance(1)
	if got := c.Read(DivRegister); got != 1 {
		t.Fatalf("expected DIV 1 after 256 cycles, got %d", got)
	}
}

func TestDIV_DoubleSpeedHalvesPeriod(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.SetDoubleSpeed(true)

	c.Advance(128)
	if got := c.Read(DivRegister); got != 1 {
		t.Fatalf("expected DIV 1 after 128 cycles in double-speed, got %d", got)
	}
}

func TestDIVWrite_ResetsDivAndAccumulators(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.Write(ControlRegister, 0x05) // enabled, 16-cycle period
	c.Advance(300)

	c.Write(DivRegister, 0xFF) // any write resets, value written is irrelevant
	if got := c.Read(DivRegister); got != 0 {
		t.Fatalf("expected DIV reset to 0, got %d", got)
	}

	// accumulators reset too: the 300 cycles left 12 in the TIMA
	// accumulator, so 4 more would complete a 16-cycle period had it
	// not been reset.
	before := c.Read(CounterRegister)
	c.Advance(4)
	if got := c.Read(CounterRegister); got != before {
		t.Fatalf("expected TIMA accumulator reset, TIMA changed from %d to %d after 4 cycles", before, got)
	}
}

func TestTIMA_OverflowReloadsFromTMAAndRequestsInterrupt(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.Write(ModuloRegister, 0x42)
	c.Write(ControlRegister, 0x05) // enabled, period 16
	c.Write(CounterRegister, 0xFF)

	c.Advance(16)

	if got := c.Read(CounterRegister); got != 0x42 {
		t.Fatalf("expected TIMA reloaded to 0x42, got %02x", got)
	}
	if irq.IF&(1<<interrupts.Timer) == 0 {
		t.Fatalf("expected the Timer interrupt to have been requested")
	}
}

func TestTIMA_DisabledByTACDoesNotAdvance(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.Write(ControlRegister, 0x01) // period 16, but enable bit clear

	c.Advance(1000)
	if got := c.Read(CounterRegister); got != 0 {
		t.Fatalf("expected TIMA to stay 0 while disabled, got %d", got)
	}
}

func TestTAC_FrequencyChangeResetsTimaCounter(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.Write(ControlRegister, 0x06) // enabled, period 64
	c.Advance(63)                  // one cycle shy of a tick

	c.Write(ControlRegister, 0x07) // frequency bits change (2 -> 3): resets accumulator
	c.Advance(193)                 // 63 + 193 would complete a 256-cycle period without the reset
	if got := c.Read(CounterRegister); got != 0 {
		t.Fatalf("expected TIMA still 0 after accumulator reset, got %d", got)
	}
}

func TestTAC_SameFrequencyWriteDoesNotResetAccumulator(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.Write(ControlRegister, 0x06) // enabled, period 64
	c.Advance(63)

	c.Write(ControlRegister, 0x06) // same frequency bits, no reset
	c.Advance(1)
	if got := c.Read(CounterRegister); got != 1 {
		t.Fatalf("expected TIMA to tick once the 64-cycle period completes, got %d", got)
	}
}
