// Command gomeboy drives the core headlessly: it loads a ROM, steps
// the emulator, and either runs until the CPU gets stuck (reporting
// any serial output along the way, the Blargg test-ROM convention) or
// prints a static disassembly.
package main

import (
	"flag"
	"fmt"
	"os"

	"sm83/internal/cartridge"
	"sm83/internal/disasm"
	"sm83/internal/emulator"
	"sm83/pkg/log"
)

func main() {
	romFile := flag.String("rom", "", "the ROM file to load")
	cgb := flag.Bool("cgb", false, "emulate in CGB mode")
	maxSteps := flag.Uint64("max-steps", 50_000_000, "stop after this many instructions")
	disasmMode := flag.Bool("disasm", false, "print a static disassembly of the ROM instead of running it")
	disasmLen := flag.Int("disasm-len", 0x4000, "bytes to disassemble, from address 0")
	flag.Parse()

	if *romFile == "" {
		fmt.Fprintln(os.Stderr, "gomeboy: -rom is required")
		os.Exit(2)
	}

	rom, err := cartridge.ReadROMFile(*romFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gomeboy: %v\n", err)
		os.Exit(1)
	}

	if *disasmMode {
		lines := disasm.Disassemble(rom, 0x0000, *disasmLen)
		fmt.Print(disasm.String(lines))
		return
	}

	logger := log.New()

	var opts []emulator.Option
	if *cgb {
		opts = append(opts, emulator.WithCGBMode())
	}
	opts = append(opts,
		emulator.WithLogger(logger),
		emulator.WithSerialSink(func(b byte) { fmt.Print(string(rune(b))) }),
	)

	emu, err := emulator.New(rom, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gomeboy: %v\n", err)
		os.Exit(1)
	}

	logger.Infof("loaded %q (%d ROM banks)", emu.Cartridge.Title(), emu.Cartridge.Header().ROMBanks)

	for i := uint64(0); i < *maxSteps; i++ {
		if _, err := emu.Step(); err != nil {
			logger.Warnf("halted after %d steps: %v", i, err)
			return
		}
	}
}
