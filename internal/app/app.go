// Package app provides the banner and ROM information output of the emulator.
package app

import (
	"fmt"
	"strings"

	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Name is the program name used in the banner and window title.
const Name = "chip8emu"

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info(Name, log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo prints the information about the ROM and the emulation settings.
func PrintInfo(logger *log.Logger, opts options.Program, romSize int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", romSize),
		log.Int("clock_hz", opts.ClockHz),
		log.String("frontend", opts.Frontend),
	)

	var quirks []string
	if opts.LegacyIndex {
		quirks = append(quirks, "legacy-index")
	}
	if opts.WaitKey {
		quirks = append(quirks, "wait-key")
	}
	if len(quirks) > 0 {
		logger.Info("Compatibility options", log.String("enabled", strings.Join(quirks, ", ")))
	}
}

// Title returns the window title for a ROM file.
func Title(input string) string {
	if input == "" {
		return Name
	}
	return fmt.Sprintf("%s - %s", Name, input)
}
