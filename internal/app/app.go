// Package app provides the main application helper for the emulator.
package app

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Name is the application name shown in the banner and window titles.
const Name = "retrochip8"

// PrintInfo prints information about the ROM and the chosen frontend.
func PrintInfo(logger *log.Logger, opts options.Program, rom []byte, frontend string) {
	if opts.Quiet {
		return
	}

	entry := "unknown"
	if ins, err := vm.Decode(firstWord(rom)); err == nil {
		entry = ins.String()
	}
	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(rom)),
		log.String("frontend", frontend),
		log.String("entry", entry),
	)

	if frontend != options.FrontendHeadless {
		logger.Info("Controls",
			log.String("quit", "escape"),
			log.String("reset", "F5"),
			log.String("layout", layoutName(opts)),
		)
	}

	if len(rom)%vm.InstructionSize != 0 {
		logger.Debug("ROM size is odd, the last instruction is incomplete")
	}
}

func firstWord(rom []byte) uint16 {
	if len(rom) < vm.InstructionSize {
		return 0
	}
	return uint16(rom[0])<<8 | uint16(rom[1])
}

func layoutName(opts options.Program) string {
	if opts.Keys != "" {
		return opts.Keys
	}
	return opts.Layout
}
