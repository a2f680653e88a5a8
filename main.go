package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-block-raytracer/pkg/loaders"
	"github.com/df07/go-block-raytracer/pkg/material"
	"github.com/df07/go-block-raytracer/pkg/renderer"
	"github.com/df07/go-block-raytracer/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneFlag := flag.String("scene", "diorama", "Scene: 'diorama', 'showcase' or a path to a scene config (.json)")
	width := flag.Int("width", 640, "Output width in pixels")
	height := flag.Int("height", 360, "Output height in pixels")
	workers := flag.Int("workers", 0, "Number of render workers, 0 uses all CPUs")
	depth := flag.Int("depth", 0, "Maximum recursion depth, 0 uses the default")
	tileSize := flag.Int("tile", 0, "Tile edge length in pixels, 0 uses the default")
	texturesDir := flag.String("textures", "", "Directory of texture images to load into the atlas")
	outFile := flag.String("out", "", "Output PNG path, empty saves to output/<scene>/render_<timestamp>.png")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Block Raytracer")
		fmt.Println("Usage: blockray [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  diorama  - Terrain diorama with glass, lamp and sphere")
		fmt.Println("  showcase - Material test with matte and glass blocks")
		fmt.Println("  <path>   - Scene config file ending in .json")
		fmt.Println("  list     - List scenes, including configs under scenes/")
		return
	}

	// List scenes instead of rendering
	if *sceneFlag == "list" {
		for _, info := range scene.ListScenes("scenes") {
			kind := "config"
			if info.Builtin {
				kind = "builtin"
			}
			fmt.Printf("  %-20s %-8s %s\n", info.ID, kind, info.Description)
		}
		return
	}

	fmt.Println("Starting Block Raytracer...")

	// Load the texture atlas when a directory was given. Scenes fall back
	// to procedural textures for any sheet the atlas does not carry.
	var atlas *material.Atlas
	if *texturesDir != "" {
		loaded, skipped, err := loaders.LoadAtlas(*texturesDir)
		if err != nil {
			fmt.Printf("Error loading textures: %v\n", err)
			os.Exit(1)
		}
		for _, name := range skipped {
			fmt.Printf("Skipping unreadable texture: %s\n", name)
		}
		fmt.Printf("Loaded %d textures from %s\n", loaded.Len(), *texturesDir)
		atlas = loaded
	}

	// Create scene based on command line argument
	selectedScene, sceneName, issues, err := createScene(*sceneFlag, atlas)
	for _, issue := range issues {
		fmt.Println(issue)
	}
	if err != nil {
		fmt.Printf("Error building scene: %v\n", err)
		os.Exit(1)
	}

	camera, err := renderer.NewCamera(selectedScene.CameraConfig)
	if err != nil {
		fmt.Printf("Error creating camera: %v\n", err)
		os.Exit(1)
	}

	config := renderer.DefaultConfig()
	if *depth > 0 {
		config.MaxDepth = *depth
	}
	if *tileSize > 0 {
		config.TileSize = *tileSize
	}
	if *workers > 0 {
		config.NumWorkers = *workers
	}

	r := renderer.NewRenderer(selectedScene, config, renderer.NewDefaultLogger())
	img, stats, err := r.Render(camera, *width, *height)
	if err != nil {
		fmt.Printf("Error rendering: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render completed in %v (%d tiles on %d workers)\n",
		stats.Duration, stats.TotalTiles, stats.NumWorkers)

	// Create timestamped filename unless an explicit path was given
	filename := *outFile
	if filename == "" {
		outputDir := filepath.Join("output", sceneName)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			fmt.Printf("Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	if err := savePNG(img, filename); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// createScene resolves the scene flag into a built scene. Known names pick
// the bundled scenes; values ending in .json load a scene config file. The
// returned name is used for the output directory, and any config issues
// are returned for reporting.
func createScene(name string, atlas *material.Atlas) (*scene.Scene, string, []scene.Issue, error) {
	switch {
	case name == "diorama":
		s, err := scene.NewDioramaScene(atlas)
		return s, "diorama", nil, err
	case name == "showcase":
		s, err := scene.NewShowcaseScene()
		return s, "showcase", nil, err
	case strings.HasSuffix(strings.ToLower(name), ".json"):
		cfg, err := scene.LoadConfig(name)
		if err != nil {
			return nil, "", nil, err
		}
		s, issues, err := cfg.Build(atlas)
		if err != nil {
			return nil, "", issues, err
		}
		base := filepath.Base(name)
		return s, strings.TrimSuffix(base, filepath.Ext(base)), issues, nil
	default:
		return nil, "", nil, fmt.Errorf("unknown scene %q", name)
	}
}

// savePNG writes the rendered image to disk
func savePNG(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
