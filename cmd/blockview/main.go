package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/df07/go-block-raytracer/pkg/loaders"
	"github.com/df07/go-block-raytracer/pkg/material"
	"github.com/df07/go-block-raytracer/pkg/renderer"
	"github.com/df07/go-block-raytracer/pkg/scene"
)

func main() {
	sceneFlag := flag.String("scene", "diorama", "Scene: 'diorama', 'showcase' or a path to a scene config (.json)")
	width := flag.Int("width", 960, "Window width in pixels")
	height := flag.Int("height", 540, "Window height in pixels")
	scale := flag.Int("scale", 3, "Render scale divisor, higher renders fewer pixels per frame")
	workers := flag.Int("workers", 0, "Number of render workers, 0 uses all CPUs")
	depth := flag.Int("depth", 0, "Maximum recursion depth, 0 uses the default")
	texturesDir := flag.String("textures", "", "Directory of texture images to load into the atlas")
	script := flag.String("script", "", "Comma-separated camera commands applied before the first frame")
	flag.Parse()

	if err := run(*sceneFlag, *width, *height, *scale, *workers, *depth, *texturesDir, *script); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sceneFlag string, width, height, scale, workers, depth int, texturesDir, script string) error {
	var atlas *material.Atlas
	if texturesDir != "" {
		loaded, skipped, err := loaders.LoadAtlas(texturesDir)
		if err != nil {
			return err
		}
		for _, name := range skipped {
			fmt.Printf("Skipping unreadable texture: %s\n", name)
		}
		atlas = loaded
	}

	selectedScene, err := buildScene(sceneFlag, atlas)
	if err != nil {
		return err
	}

	// Give the zoom range room to take in the whole scene when the config
	// leaves it open
	camCfg := selectedScene.CameraConfig
	if camCfg.MaxDistance == 0 {
		if bounds, ok := selectedScene.WorldBounds(); ok {
			camCfg.MaxDistance = 2 * bounds.Max.Subtract(bounds.Min).Length()
		}
	}

	camera, err := renderer.NewCamera(camCfg)
	if err != nil {
		return err
	}
	if script != "" {
		if err := applyScript(camera, script); err != nil {
			return err
		}
	}

	config := renderer.DefaultConfig()
	if depth > 0 {
		config.MaxDepth = depth
	}
	if workers > 0 {
		config.NumWorkers = workers
	}
	r := renderer.NewRenderer(selectedScene, config, renderer.NewDefaultLogger())

	if scale < 1 {
		scale = 1
	}
	renderW := max(width/scale, 1)
	renderH := max(height/scale, 1)

	screen, err := NewScreen("Block Raytracer", width, height)
	if err != nil {
		return err
	}
	defer screen.Close()

	fmt.Println("Arrows orbit, WASD pans, +/- zooms, ESC quits")

	// Input/update/render loop. Frames without camera movement skip the
	// render and just pace the event polling.
	dirty := true
	for running := true; running; {
		frameStart := sdl.GetTicks()

		var commands []renderer.Command
		running, commands = pollCommands()
		for _, cmd := range commands {
			camera.Apply(cmd)
			dirty = true
		}

		if dirty {
			img, _, err := r.Render(camera, renderW, renderH)
			if err != nil {
				return err
			}
			if err := screen.Present(img); err != nil {
				return err
			}
			dirty = false
		}

		// If there's still time before the next frame, wait
		elapsed := sdl.GetTicks() - frameStart
		if elapsed < msPerFrame {
			sdl.Delay(msPerFrame - elapsed)
		}
	}

	return nil
}

// applyScript applies a comma-separated list of camera command names, the
// same names the interactive keys produce
func applyScript(camera *renderer.Camera, script string) error {
	for _, name := range strings.Split(script, ",") {
		cmd, err := renderer.ParseCommand(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		camera.Apply(cmd)
	}
	return nil
}

// buildScene resolves the scene flag the same way the render CLI does
func buildScene(name string, atlas *material.Atlas) (*scene.Scene, error) {
	switch {
	case name == "diorama":
		return scene.NewDioramaScene(atlas)
	case name == "showcase":
		return scene.NewShowcaseScene()
	case strings.HasSuffix(strings.ToLower(name), ".json"):
		cfg, err := scene.LoadConfig(name)
		if err != nil {
			return nil, err
		}
		s, issues, err := cfg.Build(atlas)
		for _, issue := range issues {
			fmt.Println(issue)
		}
		return s, err
	default:
		return nil, fmt.Errorf("unknown scene %q", name)
	}
}
