package chip8

// Event describes an instruction that is about to be executed.
type Event struct {
	PC          uint16
	Instruction Instruction
}

// Tracer observes every fetched instruction before it is executed.
// Tracers are called synchronously from Step and must not modify the machine.
type Tracer interface {
	Trace(event Event)
}

// TracerFunc adapts an ordinary function to the Tracer interface.
type TracerFunc func(event Event)

// Trace calls f(event).
func (f TracerFunc) Trace(event Event) {
	f(event)
}
