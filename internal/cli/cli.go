// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/chip8emu/internal/options"
)

// ParseFlags parses the command line flags of the process.
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args[0], os.Args[1:])
}

func parseArgs(name string, arguments []string) (options.Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	var opts options.Program
	readOptionFlags(flags, &opts)

	if err := flags.Parse(arguments); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	args := flags.Args()
	if len(args) == 0 {
		return opts, &UsageError{flags: flags, msg: "missing ROM file argument"}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage text and all flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8emu [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks that exactly one ROM file is passed as last argument.
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			msg: fmt.Sprintf("only one ROM file can be run, got %d", len(args)),
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)

	if opts.ClockHz <= 0 {
		return fmt.Errorf("invalid clock rate %d, must be positive", opts.ClockHz)
	}
	if opts.MaxFrames < 0 {
		return fmt.Errorf("invalid frame limit %d, must not be negative", opts.MaxFrames)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid scale %d, must be positive", opts.Scale)
	}

	validFrontends := []string{options.FrontendTerminal, options.FrontendSDL, options.FrontendHeadless}
	for _, valid := range validFrontends {
		if opts.Frontend == valid {
			return nil
		}
	}

	return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
		opts.Frontend, strings.Join(validFrontends, ", "))
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.TraceFile, "tracefile", "", "write the instruction trace to the given file")
	flags.StringVar(&opts.Frontend, "f", options.FrontendTerminal, "frontend to display the machine (terminal/sdl/headless)")
	flags.IntVar(&opts.ClockHz, "hz", options.DefaultClockHz, "instructions executed per second")
	flags.IntVar(&opts.MaxFrames, "frames", 0, "stop after the given number of 60 Hz frames, 0 runs until the program ends")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "pixel scale of the SDL window")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses the current time")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, enables debug logging")
	flags.BoolVar(&opts.LegacyIndex, "legacy-index", false, "set VF on index register additions above $F00 instead of $FFF")
	flags.BoolVar(&opts.WaitKey, "wait-key", false, "block on the wait for key instruction until a key is pressed")
}
