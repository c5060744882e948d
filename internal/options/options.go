// Package options contains the program options.
package options

// Default option values.
const (
	DefaultClockHz = 700
	DefaultScale   = 10
)

// Supported frontends.
const (
	FrontendTerminal = "terminal"
	FrontendSDL      = "sdl"
	FrontendHeadless = "headless"
)

// Parameters contains file path options.
type Parameters struct {
	Input     string // ROM file to run
	TraceFile string // file to write the instruction trace to
}

// Flags contains behavior options.
type Flags struct {
	Debug       bool // enable debug logging
	Quiet       bool // only log errors
	Trace       bool // log every executed instruction
	LegacyIndex bool // Fx1E sets VF when I exceeds 0xF00
	WaitKey     bool // Fx0A blocks until a key is pressed
	Seed        int64
}

// Emulation contains the host loop options.
type Emulation struct {
	ClockHz   int    // instructions executed per second
	MaxFrames int    // stop after this many 60 Hz frames, 0 runs until the program ends
	Frontend  string // terminal, sdl or headless
	Scale     int    // pixel scale of the SDL window
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Emulation
}
