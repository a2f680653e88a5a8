package renderer

import (
	"image"
	"runtime"
	"sync"

	"github.com/df07/go-block-raytracer/pkg/scene"
)

// TileTask is one tile of render work for the worker pool
type TileTask struct {
	Tile   *Tile
	Image  *image.RGBA // Shared frame buffer to write to
	TaskID int
}

// TileResult reports one completed tile
type TileResult struct {
	TaskID int
	Pixels int
}

// WorkerPool renders tiles in parallel across a bounded set of workers.
// The pool lives for a single render pass and is never reused.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders individual tiles
type Worker struct {
	ID          int
	raytracer   *Raytracer
	camera      *Camera
	width       int
	height      int
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool for one render pass. A non-positive
// worker count uses the CPU count.
func NewWorkerPool(s *scene.Scene, camera *Camera, width, height int, config Config) *WorkerPool {
	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}

	// Buffer both queues for every tile the pass can produce so neither
	// submission nor collection can deadlock
	maxTiles := ((width + config.TileSize - 1) / config.TileSize) *
		((height + config.TileSize - 1) / config.TileSize)

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   NewRaytracer(s, config.MaxDepth),
			camera:      camera,
			width:       width,
			height:      height,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop shuts down all workers after the submitted tasks drain
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// Submit queues a tile task
func (wp *WorkerPool) Submit(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. Tasks run to completion; there is no
// mid-pass cancellation.
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.resultQueue <- TileResult{
			TaskID: task.TaskID,
			Pixels: w.renderTile(task),
		}
	}
}

// renderTile traces one primary ray per pixel in the tile. Tiles never
// overlap, so writes to the shared frame buffer need no locking.
func (w *Worker) renderTile(task TileTask) int {
	bounds := task.Tile.Bounds
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ray := w.camera.GetRay(i, j, w.width, w.height)
			task.Image.SetRGBA(i, j, vec3ToColor(w.raytracer.rayColor(ray)))
		}
	}
	return bounds.Dx() * bounds.Dy()
}
