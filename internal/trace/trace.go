// Package trace provides instruction trace sinks for the CHIP-8 machine.
package trace

import (
	"fmt"
	"io"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/disasm"
	"github.com/retroenv/retrogolib/log"
)

// Compile-time checks to ensure all sinks implement chip8.Tracer.
var (
	_ chip8.Tracer = (*Logger)(nil)
	_ chip8.Tracer = (*Writer)(nil)
	_ chip8.Tracer = (*Recorder)(nil)
)

// Logger writes every executed instruction as debug log entry.
type Logger struct {
	logger *log.Logger
}

// NewLogger returns a tracer that logs to the given logger.
func NewLogger(logger *log.Logger) *Logger {
	return &Logger{
		logger: logger,
	}
}

// Trace implements chip8.Tracer.
func (l *Logger) Trace(event chip8.Event) {
	l.logger.Debug("Executing instruction",
		log.Hex("pc", event.PC),
		log.Hex("opcode", event.Instruction.Opcode),
		log.String("instruction", disasm.Format(event.Instruction.Opcode)))
}

// Writer prints one line per instruction in the format "[0200] 00E0 cls".
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter returns a tracer that prints to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w: w,
	}
}

// Trace implements chip8.Tracer. After the first write error all further
// events are dropped, the error is available from Err.
func (w *Writer) Trace(event chip8.Event) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintln(w.w, FormatEvent(event))
}

// Err returns the first write error.
func (w *Writer) Err() error {
	return w.err
}

// FormatEvent returns the trace line for an event.
func FormatEvent(event chip8.Event) string {
	return fmt.Sprintf("[%04X] %04X %s", event.PC, event.Instruction.Opcode, disasm.Format(event.Instruction.Opcode))
}

// Multi returns a tracer that forwards every event to all given tracers.
// Nil tracers are skipped.
func Multi(tracers ...chip8.Tracer) chip8.Tracer {
	var active multi
	for _, t := range tracers {
		if t != nil {
			active = append(active, t)
		}
	}

	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	default:
		return active
	}
}

type multi []chip8.Tracer

func (m multi) Trace(event chip8.Event) {
	for _, t := range m {
		t.Trace(event)
	}
}
