// Package main implements the main entry point for the CHIP-8 emulator
package main

import (
	"errors"
	"os"

	"github.com/retroenv/chip8emu/internal/app"
	"github.com/retroenv/chip8emu/internal/cli"
	"github.com/retroenv/chip8emu/internal/config"
	"github.com/retroenv/chip8emu/internal/pipeline"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := retroapp.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		}
		logger.Error("Invalid arguments", log.Err(err))
		os.Exit(1)
	}

	logger := config.CreateLogger(opts)
	app.PrintBanner(logger, opts, version, commit, date)

	if err := pipeline.New(logger).Execute(ctx, opts); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}
