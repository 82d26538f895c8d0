package renderer

import (
	"sort"
	"testing"
)

func TestNewTileGrid(t *testing.T) {
	// A 400x225 image with 64x64 tiles needs a 7x4 grid.
	width, height, tileSize := 400, 225, 64
	tiles := NewTileGrid(width, height, tileSize)

	expectedTilesX := (width + tileSize - 1) / tileSize
	expectedTilesY := (height + tileSize - 1) / tileSize
	if len(tiles) != expectedTilesX*expectedTilesY {
		t.Errorf("Expected %d tiles, got %d", expectedTilesX*expectedTilesY, len(tiles))
	}

	// Tiles must cover the image exactly once, with no gaps or overlaps.
	covered := make([][]bool, height)
	for y := range covered {
		covered[y] = make([]bool, width)
	}

	for id, tile := range tiles {
		for y := tile.Min.Y; y < tile.Max.Y; y++ {
			for x := tile.Min.X; x < tile.Max.X; x++ {
				if x >= width || y >= height {
					t.Fatalf("Tile %d extends beyond image bounds at (%d,%d)", id, x, y)
				}
				if covered[y][x] {
					t.Fatalf("Pixel (%d,%d) is covered by multiple tiles", x, y)
				}
				covered[y][x] = true
			}
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !covered[y][x] {
				t.Fatalf("Pixel (%d,%d) is not covered by any tile", x, y)
			}
		}
	}
}

func TestNewTileGrid_SmallImage(t *testing.T) {
	// An image smaller than a tile gets exactly one shrunk tile.
	tiles := NewTileGrid(10, 7, 64)

	if len(tiles) != 1 {
		t.Fatalf("Expected 1 tile, got %d", len(tiles))
	}
	if tiles[0].Dx() != 10 || tiles[0].Dy() != 7 {
		t.Errorf("Expected 10x7 tile, got %dx%d", tiles[0].Dx(), tiles[0].Dy())
	}
}

func TestWorkerPool_ProcessesAllTasks(t *testing.T) {
	tiles := NewTileGrid(128, 128, 32)

	render := func(task TileTask) TileStats {
		return TileStats{Pixels: task.Bounds.Dx() * task.Bounds.Dy()}
	}

	pool := NewWorkerPool(render, 4, len(tiles))
	pool.Start()

	for id, bounds := range tiles {
		pool.SubmitTask(TileTask{Bounds: bounds, Frame: 0, TaskID: id})
	}

	var taskIDs []int
	totalPixels := 0
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			t.Fatal("Result queue closed early")
		}
		taskIDs = append(taskIDs, result.TaskID)
		totalPixels += result.Stats.Pixels
	}
	pool.Stop()

	if totalPixels != 128*128 {
		t.Errorf("Expected %d pixels across all tiles, got %d", 128*128, totalPixels)
	}

	// Every task must come back exactly once, in any order.
	sort.Ints(taskIDs)
	for i, id := range taskIDs {
		if id != i {
			t.Fatalf("Expected task %d at position %d, got %d", i, i, id)
		}
	}
}

func TestWorkerPool_DefaultWorkerCount(t *testing.T) {
	pool := NewWorkerPool(func(TileTask) TileStats { return TileStats{} }, 0, 1)
	if pool.GetNumWorkers() < 1 {
		t.Errorf("Expected at least one worker, got %d", pool.GetNumWorkers())
	}
}
