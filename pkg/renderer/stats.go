package renderer

import (
	"math"
	"time"

	"github.com/lumen-render/lumen/pkg/core"
)

// TileStats accumulates per-pixel luminance statistics while a tile renders.
// Tiles never share instances, so accumulation needs no synchronization.
type TileStats struct {
	Pixels         int     // Pixels rendered in this tile
	Samples        int     // Camera rays traced in this tile
	LuminanceSum   float64 // Sum of blended pixel luminance
	LuminanceSqSum float64 // Sum of squared luminance for variance
}

// AddPixel records one finished pixel and the samples it consumed.
func (ts *TileStats) AddPixel(c core.Vec3, samples int) {
	luminance := c.Luminance()
	ts.Pixels++
	ts.Samples += samples
	ts.LuminanceSum += luminance
	ts.LuminanceSqSum += luminance * luminance
}

// Merge folds another tile's statistics into this one.
func (ts *TileStats) Merge(other TileStats) {
	ts.Pixels += other.Pixels
	ts.Samples += other.Samples
	ts.LuminanceSum += other.LuminanceSum
	ts.LuminanceSqSum += other.LuminanceSqSum
}

// FrameStats summarizes a completed frame.
type FrameStats struct {
	Frame             int           // Frame index, starting at 0
	Pixels            int           // Pixels rendered
	Samples           int           // Camera rays traced
	MeanLuminance     float64       // Mean luminance of the blended image
	LuminanceVariance float64       // Variance of pixel luminance
	RenderTime        time.Duration // Wall-clock time for the frame
}

// Summarize converts accumulated tile statistics into frame statistics.
func (ts TileStats) Summarize(frame int, elapsed time.Duration) FrameStats {
	stats := FrameStats{
		Frame:      frame,
		Pixels:     ts.Pixels,
		Samples:    ts.Samples,
		RenderTime: elapsed,
	}
	if ts.Pixels == 0 {
		return stats
	}

	mean := ts.LuminanceSum / float64(ts.Pixels)
	meanSq := ts.LuminanceSqSum / float64(ts.Pixels)
	stats.MeanLuminance = mean
	stats.LuminanceVariance = math.Max(0, meanSq-mean*mean)
	return stats
}
