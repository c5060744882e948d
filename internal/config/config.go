// Package config handles application configuration and setup
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/chip8emu/internal/trace"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	if opts.Debug || opts.Trace {
		cfg.Level = log.DebugLevel
	} else if opts.Quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineConfig returns the machine configuration for the program options.
func MachineConfig(opts options.Program) chip8.Config {
	cfg := chip8.Config{
		IndexOverflowThreshold: chip8.IndexThresholdMemory,
		WaitForKey:             opts.WaitKey,
		Seed:                   opts.Seed,
	}
	if opts.LegacyIndex {
		cfg.IndexOverflowThreshold = chip8.IndexThresholdLegacy
	}
	return cfg
}

// CreateTracer returns the instruction tracer selected by the options, which
// can be nil. The returned close function releases an opened trace file.
func CreateTracer(logger *log.Logger, opts options.Program) (chip8.Tracer, func() error, error) {
	var tracers []chip8.Tracer
	if opts.Trace {
		tracers = append(tracers, trace.NewLogger(logger))
	}

	closer := func() error { return nil }
	if opts.TraceFile != "" {
		file, err := os.Create(opts.TraceFile)
		if err != nil {
			return nil, closer, fmt.Errorf("creating trace file '%s': %w", opts.TraceFile, err)
		}
		var writer *trace.Writer
		writer, closer = newTraceWriter(file)
		tracers = append(tracers, writer)
	}

	return trace.Multi(tracers...), closer, nil
}

// newTraceWriter returns a buffered trace writer for the file. The close
// function flushes the buffer, closes the file and returns the first write
// error of the trace.
func newTraceWriter(file io.WriteCloser) (*trace.Writer, func() error) {
	buf := bufio.NewWriter(file)
	writer := trace.NewWriter(buf)

	closeFn := func() error {
		err := writer.Err()
		if err == nil {
			err = buf.Flush()
		}
		if err != nil {
			err = fmt.Errorf("writing trace file: %w", err)
		}
		return errors.Join(err, file.Close())
	}
	return writer, closeFn
}
