// Package emulator wires the cartridge, bus, timer, interrupt service
// and CPU core into the host-facing surface: a constructor taking a
// ROM image and options, a single Step, and the read-only accessors
// debuggers and test harnesses need.
package emulator

import (
	"fmt"

	"sm83/internal/bus"
	"sm83/internal/cartridge"
	"sm83/internal/cpu"
	"sm83/internal/interrupts"
	"sm83/internal/timer"
	"sm83/pkg/log"
)

// Breakpoint is a PC value the emulator will report as hit after a
// Step lands on it; the host decides what to do (pause, inspect).
type Breakpoint = uint16

// Emulator is the assembled core: cartridge, bus, timer, interrupts
// and CPU, stepped one instruction at a time by the host.
type Emulator struct {
	CPU        *cpu.CPU
	Bus        *bus.Bus
	Timer      *timer.Controller
	Interrupts *interrupts.Service
	Cartridge  *cartridge.Cartridge

	log log.Logger

	cgbMode      bool
	testMode     bool
	panicOnStuck bool
	breakpoints  map[Breakpoint]bool
}

// Option configures an Emulator at construction time.
type Option func(*Emulator)

// WithCGBMode enables CGB-specific behaviour: double-speed switching
// via STOP/KEY1.
func WithCGBMode() Option {
	return func(e *Emulator) { e.cgbMode = true }
}

// WithTestMode turns the bus into flat memory (no banking, no I/O
// side effects, no LY stub, no serial sink) so SingleStepTests
// vectors round-trip exactly.
func WithTestMode() Option {
	return func(e *Emulator) { e.testMode = true }
}

// WithPanicOnStuck makes Step panic instead of returning a *cpu.StuckError
// or *cpu.DecodeError when the CPU gets stuck.
func WithPanicOnStuck() Option {
	return func(e *Emulator) { e.panicOnStuck = true }
}

// WithBreakpoints seeds the initial breakpoint set; Step reports a hit
// whenever PC lands on one of these addresses after an instruction.
func WithBreakpoints(addrs ...Breakpoint) Option {
	return func(e *Emulator) {
		for _, a := range addrs {
			e.breakpoints[a] = true
		}
	}
}

// WithLogger overrides the emulator's own no-op logger, which receives
// step-fault warnings. The cartridge and bus are built before options
// apply and keep the no-op logger.
func WithLogger(logger log.Logger) Option {
	return func(e *Emulator) { e.log = logger }
}

// WithSerialSink installs a callback for the Blargg-style serial-output
// test convention.
func WithSerialSink(sink bus.SerialSink) Option {
	return func(e *Emulator) {
		e.Bus.SetSerialSink(sink)
	}
}

// New loads rom and assembles an Emulator from it. A *cartridge.LoadError
// surfaces any of the fatal header-validation conditions; the
// emulator is never constructed in that case.
func New(rom []byte, opts ...Option) (*Emulator, error) {
	logger := log.Null()

	cart, err := cartridge.Load(rom, logger)
	if err != nil {
		return nil, err
	}

	irq := interrupts.NewService()
	tim := timer.NewController(irq)
	memBus := bus.New(cart, tim, irq, logger)
	core := cpu.New(memBus, irq)

	e := &Emulator{
		CPU:         core,
		Bus:         memBus,
		Timer:       tim,
		Interrupts:  irq,
		Cartridge:   cart,
		log:         logger,
		breakpoints: make(map[Breakpoint]bool),
	}

	for _, opt := range opts {
		opt(e)
	}

	core.SetBootState()
	core.CGBMode = e.cgbMode
	memBus.SetTestMode(e.testMode)

	return e, nil
}

// StepResult reports what happened during one Step call: the cycles
// consumed, and whether PC landed on a registered breakpoint.
type StepResult struct {
	Cycles        uint8
	BreakpointHit bool
}

// Step ticks the core through exactly one CPU instruction:
// fetch/decode/execute, advance the timer, then service interrupts.
// A CPU that is already stopped or stuck only pays the bookkeeping
// floor of 4 cycles. If the host opted into panic-on-stuck, a
// *cpu.StuckError or *cpu.DecodeError panics instead of returning.
func (e *Emulator) Step() (StepResult, error) {
	if e.CPU.Stopped || e.CPU.Stuck {
		return StepResult{Cycles: 4}, nil
	}

	cycles, err := e.stepCPU()
	if err != nil {
		e.log.Warnf("emulator: step fault: %v", err)
		if e.panicOnStuck {
			panic(fmt.Sprintf("emulator: %v", err))
		}
		return StepResult{Cycles: cycles}, err
	}

	e.Timer.SetDoubleSpeed(e.CPU.DoubleSpeed)
	e.Timer.Advance(uint16(cycles))
	cycles += e.CPU.Service()

	return StepResult{Cycles: cycles, BreakpointHit: e.breakpoints[e.CPU.PC]}, nil
}

// stepCPU runs the instruction half of a tick: either a halted no-op
// tick or a full instruction execute.
func (e *Emulator) stepCPU() (uint8, error) {
	if e.CPU.Halted {
		return 4, nil
	}
	return e.CPU.Execute()
}

// Registers returns a snapshot of the register file for debuggers and
// tests.
func (e *Emulator) Registers() cpu.Registers {
	return e.CPU.Registers
}

// PC returns the current program counter.
func (e *Emulator) PC() uint16 { return e.CPU.PC }

// SP returns the current stack pointer.
func (e *Emulator) SP() uint16 { return e.CPU.SP }

// MemoryRead exposes a raw bus read for test harnesses only.
func (e *Emulator) MemoryRead(addr uint16) uint8 { return e.Bus.Read(addr) }

// MemoryWrite exposes a raw bus write for test harnesses only.
func (e *Emulator) MemoryWrite(addr uint16, v uint8) { e.Bus.Write(addr, v) }

// SetBreakpoint adds addr to the breakpoint set at runtime.
func (e *Emulator) SetBreakpoint(addr uint16) { e.breakpoints[addr] = true }

// ClearBreakpoint removes addr from the breakpoint set.
func (e *Emulator) ClearBreakpoint(addr uint16) { delete(e.breakpoints, addr) }
