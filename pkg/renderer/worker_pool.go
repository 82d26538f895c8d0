package renderer

import (
	"image"
	"runtime"
	"sync"
)

// TileTask describes one tile of one frame for the worker pool.
type TileTask struct {
	Bounds image.Rectangle // Pixel bounds of the tile
	Frame  int             // Frame index being rendered
	Weight float64         // Blend weight toward the previous frame
	TaskID int             // For deterministic result accounting
}

// TileResult carries the statistics from one rendered tile.
type TileResult struct {
	TaskID int
	Stats  TileStats
}

// renderFunc renders one tile task and returns its statistics.
type renderFunc func(TileTask) TileStats

// WorkerPool fans tile tasks out to parallel workers. Tiles cover disjoint
// pixel ranges and every pixel seeds its own generator, so workers share the
// framebuffer without locks and the image is identical for any worker count.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	render      renderFunc
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool that renders tiles with the given function.
// A non-positive worker count selects one worker per CPU.
func NewWorkerPool(render renderFunc, numWorkers, maxTiles int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		render:      render,
		numWorkers:  numWorkers,
	}
}

// Start launches the workers.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop signals that no more tasks will arrive and waits for the workers to
// drain the queue.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask queues a tile task.
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result.
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool.
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop.
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.resultQueue <- TileResult{
			TaskID: task.TaskID,
			Stats:  wp.render(task),
		}
	}
}

// NewTileGrid covers a width x height image with tiles of at most tileSize
// on each side. Edge tiles shrink to fit.
func NewTileGrid(width, height, tileSize int) []image.Rectangle {
	var tiles []image.Rectangle

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)
			tiles = append(tiles, image.Rect(x0, y0, x1, y1))
		}
	}

	return tiles
}
