package renderer

import "time"

// RenderStats contains statistics about one render pass
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	TotalTiles  int           // Number of tiles the image was split into
	NumWorkers  int           // Workers used for the pass
	Duration    time.Duration // Wall clock time for the pass
}
