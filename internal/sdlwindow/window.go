//go:build sdl

// Package sdlwindow implements an SDL2 window frontend.
package sdlwindow

import (
	"fmt"
	"runtime"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/emulator"
	"github.com/veandco/go-sdl2/sdl"
)

// Compile-time check to ensure Window implements emulator.Frontend.
var _ emulator.Frontend = (*Window)(nil)

// SDL calls have to be made from the main thread.
func init() {
	runtime.LockOSThread()
}

// Window colors as RGB.
var (
	background = [3]uint8{0x10, 0x10, 0x20}
	foreground = [3]uint8{0x40, 0xFF, 0xFF}
)

// Window is a frontend that draws the display scaled into an SDL window.
type Window struct {
	window *sdl.Window
	scale  int32
	keys   [chip8.KeyCount]bool
}

// Open initializes SDL and creates the window.
func Open(title string, scale int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}

	s := int32(scale)
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		chip8.DisplayWidth*s, chip8.DisplayHeight*s, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	return &Window{
		window: window,
		scale:  s,
	}, nil
}

// Close destroys the window and shuts down SDL.
func (w *Window) Close() error {
	err := w.window.Destroy()
	sdl.Quit()
	if err != nil {
		return fmt.Errorf("destroying window: %w", err)
	}
	return nil
}

// PollInput implements emulator.Frontend. Closing the window or pressing
// escape quits.
func (w *Window) PollInput(keys *[chip8.KeyCount]bool) (bool, error) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true, nil

		case *sdl.KeyboardEvent:
			if e.Keysym.Sym == sdl.K_ESCAPE {
				return true, nil
			}
			if e.Keysym.Sym > 0xFF {
				continue
			}
			if key, ok := emulator.KeyForRune(rune(e.Keysym.Sym)); ok {
				w.keys[key] = e.Type == sdl.KEYDOWN
			}
		}
	}

	*keys = w.keys
	return false, nil
}

// Render implements emulator.Frontend.
func (w *Window) Render(fb *emulator.Framebuffer) error {
	surface, err := w.window.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}

	bg := sdl.MapRGB(surface.Format, background[0], background[1], background[2])
	fg := sdl.MapRGB(surface.Format, foreground[0], foreground[1], foreground[2])

	if err := surface.FillRect(nil, bg); err != nil {
		return fmt.Errorf("clearing surface: %w", err)
	}

	for y, row := range fb {
		for x, pixel := range row {
			if pixel == 0 {
				continue
			}
			rect := sdl.Rect{X: int32(x) * w.scale, Y: int32(y) * w.scale, W: w.scale, H: w.scale}
			if err := surface.FillRect(&rect, fg); err != nil {
				return fmt.Errorf("drawing pixel: %w", err)
			}
		}
	}

	if err := w.window.UpdateSurface(); err != nil {
		return fmt.Errorf("updating window: %w", err)
	}
	return nil
}
