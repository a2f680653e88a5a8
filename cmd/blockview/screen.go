package main

import (
	"image"

	"github.com/veandco/go-sdl2/sdl"
)

// Timing values for the input/update/render loop
const (
	framesPerSecond uint32 = 30
	msPerFrame      uint32 = 1000 / framesPerSecond
)

// Screen owns the SDL window and its drawing surface
type Screen struct {
	window  *sdl.Window
	surface *sdl.Surface
}

// NewScreen initializes SDL2 and opens a window
func NewScreen(title string, width, height int) (*Screen, error) {
	complete := false

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, err
	}
	defer func() {
		if !complete {
			sdl.Quit() // Only on failure; Close handles the normal path
		}
	}()

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height), sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, err
	}
	defer func() {
		if !complete {
			window.Destroy()
		}
	}()

	surface, err := window.GetSurface()
	if err != nil {
		return nil, err
	}

	complete = true
	return &Screen{window: window, surface: surface}, nil
}

// Present stretches a rendered frame across the window surface with
// nearest-neighbor sampling, so renders can run below window resolution.
func (s *Screen) Present(img *image.RGBA) error {
	srcW := img.Rect.Dx()
	srcH := img.Rect.Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil
	}

	dstW := int(s.surface.W)
	dstH := int(s.surface.H)
	for y := 0; y < dstH; y++ {
		srcY := y * srcH / dstH
		for x := 0; x < dstW; x++ {
			s.surface.Set(x, y, img.RGBAAt(x*srcW/dstW, srcY))
		}
	}

	return s.window.UpdateSurface()
}

// Close destroys the window and shuts SDL down
func (s *Screen) Close() {
	s.window.Destroy()
	sdl.Quit()
}
