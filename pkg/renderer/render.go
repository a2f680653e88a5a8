package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/df07/go-block-raytracer/pkg/core"
	"github.com/df07/go-block-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains render pass configuration
type Config struct {
	MaxDepth   int // Maximum recursion depth for reflection and refraction
	TileSize   int // Edge length of the square work tiles
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:   3,
		TileSize:   64,
		NumWorkers: 0,
	}
}

// Renderer produces frames of a scene. Each call to Render runs one full
// pass over a fresh worker pool; the scene and camera are read-only for
// the duration of the pass, so camera mutations must happen between
// calls.
type Renderer struct {
	scene  *scene.Scene
	config Config
	logger core.Logger
}

// NewRenderer creates a renderer for the given scene, filling config
// defaults for non-positive values
func NewRenderer(s *scene.Scene, config Config, logger core.Logger) *Renderer {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultConfig().MaxDepth
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Renderer{
		scene:  s,
		config: config,
		logger: logger,
	}
}

// Render produces one frame at the given resolution. The frame content
// depends only on the scene, camera and resolution, never on the worker
// count or scheduling order.
func (r *Renderer) Render(camera *Camera, width, height int) (*image.RGBA, RenderStats, error) {
	if camera == nil {
		return nil, RenderStats{}, fmt.Errorf("camera is required")
	}
	if width <= 0 || height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid resolution %dx%d", width, height)
	}

	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	tiles := NewTileGrid(width, height, r.config.TileSize)

	pool := NewWorkerPool(r.scene, camera, width, height, r.config)
	pool.Start()

	for id, tile := range tiles {
		pool.Submit(TileTask{Tile: tile, Image: img, TaskID: id})
	}

	totalPixels := 0
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		totalPixels += result.Pixels
	}
	pool.Stop()

	stats := RenderStats{
		TotalPixels: totalPixels,
		TotalTiles:  len(tiles),
		NumWorkers:  pool.GetNumWorkers(),
		Duration:    time.Since(start),
	}

	r.logger.Printf("Rendered %dx%d: %d tiles on %d workers in %v\n",
		width, height, stats.TotalTiles, stats.NumWorkers, stats.Duration)

	return img, stats, nil
}

// Tile is one rectangular unit of render work
type Tile struct {
	ID     int
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultConfig().TileSize
	}

	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     tileID,
				Bounds: image.Rect(x0, y0, x1, y1),
			})
			tileID++
		}
	}

	return tiles
}
