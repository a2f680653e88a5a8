package main

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/df07/go-block-raytracer/pkg/renderer"
)

// keyCommands maps SDL keycodes onto camera commands. Arrows orbit, WASD
// pans and the plus/minus keys zoom.
var keyCommands = map[sdl.Keycode]renderer.Command{
	sdl.K_LEFT:     renderer.OrbitLeft,
	sdl.K_RIGHT:    renderer.OrbitRight,
	sdl.K_UP:       renderer.OrbitUp,
	sdl.K_DOWN:     renderer.OrbitDown,
	sdl.K_a:        renderer.PanLeft,
	sdl.K_d:        renderer.PanRight,
	sdl.K_w:        renderer.PanUp,
	sdl.K_s:        renderer.PanDown,
	sdl.K_EQUALS:   renderer.ZoomIn,
	sdl.K_KP_PLUS:  renderer.ZoomIn,
	sdl.K_MINUS:    renderer.ZoomOut,
	sdl.K_KP_MINUS: renderer.ZoomOut,
}

// pollCommands drains the SDL event queue and translates key presses into
// camera commands. Key repeat delivers held keys as further presses, so a
// held arrow keeps orbiting. Returns false when the user quits.
func pollCommands() (bool, []renderer.Command) {
	running := true
	var commands []renderer.Command

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			running = false
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			if e.Keysym.Sym == sdl.K_ESCAPE {
				running = false
				continue
			}
			if cmd, ok := keyCommands[e.Keysym.Sym]; ok {
				commands = append(commands, cmd)
			}
		}
	}

	return running, commands
}
