package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(options.Program{}))
	assert.NotNil(t, CreateLogger(options.Program{Flags: options.Flags{Quiet: true}}))
	assert.NotNil(t, CreateLogger(options.Program{Flags: options.Flags{Trace: true}}))
}

func TestMachineConfig(t *testing.T) {
	cfg := MachineConfig(options.Program{})
	assert.Equal(t, chip8.IndexThresholdMemory, cfg.IndexOverflowThreshold)
	assert.False(t, cfg.WaitForKey)

	cfg = MachineConfig(options.Program{
		Flags: options.Flags{LegacyIndex: true, WaitKey: true, Seed: 7},
	})
	assert.Equal(t, chip8.IndexThresholdLegacy, cfg.IndexOverflowThreshold)
	assert.True(t, cfg.WaitForKey)
	assert.Equal(t, int64(7), cfg.Seed)
}

func TestCreateTracer(t *testing.T) {
	logger := log.NewTestLogger(t)

	t.Run("no tracing", func(t *testing.T) {
		tracer, closeFn, err := CreateTracer(logger, options.Program{})
		assert.NoError(t, err)
		assert.Nil(t, tracer)
		assert.NoError(t, closeFn())
	})

	t.Run("trace file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "trace.log")
		opts := options.Program{Parameters: options.Parameters{TraceFile: path}}

		tracer, closeFn, err := CreateTracer(logger, opts)
		assert.NoError(t, err)
		assert.NotNil(t, tracer)

		tracer.Trace(chip8.Event{PC: 0x200, Instruction: chip8.Decode(0x00E0)})
		assert.NoError(t, closeFn())

		data, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, "[0200] 00E0 cls\n", string(data))
	})

	t.Run("unwritable trace file", func(t *testing.T) {
		opts := options.Program{Parameters: options.Parameters{TraceFile: filepath.Join(t.TempDir(), "missing", "trace.log")}}

		_, _, err := CreateTracer(logger, opts)
		assert.Error(t, err)
	})
}

type traceFile struct {
	bytes.Buffer
	writeErr error
	closed   bool
}

func (f *traceFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.Buffer.Write(p)
}

func (f *traceFile) Close() error {
	f.closed = true
	return nil
}

func TestNewTraceWriter(t *testing.T) {
	event := chip8.Event{PC: 0x200, Instruction: chip8.Decode(0x00E0)}

	t.Run("flush on close", func(t *testing.T) {
		file := &traceFile{}
		writer, closeFn := newTraceWriter(file)

		writer.Trace(event)
		assert.Empty(t, file.String())

		assert.NoError(t, closeFn())
		assert.True(t, file.closed)
		assert.Equal(t, "[0200] 00E0 cls\n", file.String())
	})

	t.Run("write error", func(t *testing.T) {
		file := &traceFile{writeErr: errors.New("disk full")}
		writer, closeFn := newTraceWriter(file)

		writer.Trace(event)

		err := closeFn()
		assert.ErrorContains(t, err, "writing trace file")
		assert.ErrorIs(t, err, file.writeErr)
		assert.True(t, file.closed)
	})
}
