package renderer

import (
	"image"
	"time"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/integrator"
)

// RenderConfig contains configuration for frame rendering.
type RenderConfig struct {
	SamplesPerPixel int     // Camera rays per pixel per frame
	MaxBounces      int     // Bounce budget per ray
	TileSize        int     // Tile edge length in pixels
	NumWorkers      int     // Parallel workers (0 = use CPU count)
	BlendWeight     float64 // Weight toward the previous frame; negative = running average
}

// DefaultRenderConfig returns sensible default values.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		SamplesPerPixel: 4,
		MaxBounces:      integrator.DefaultMaxBounces,
		TileSize:        64,
		NumWorkers:      0,
		BlendWeight:     -1,
	}
}

// Raytracer renders frames of a scene into a persistent framebuffer,
// blending each new frame into the accumulated history.
type Raytracer struct {
	world  *geometry.Scene
	camera *Camera
	tracer *integrator.PathTracer
	frames *Framebuffer
	config RenderConfig
	tiles  []image.Rectangle
}

// NewRaytracer creates a raytracer for the given scene and camera.
// Non-positive samples or tile sizes fall back to the defaults.
func NewRaytracer(world *geometry.Scene, camera *Camera, config RenderConfig) (*Raytracer, error) {
	if world == nil {
		return nil, ErrSceneNotDefined
	}
	if camera == nil {
		return nil, ErrCameraNotDefined
	}
	if config.BlendWeight > 1 {
		return nil, ErrBadBlendWeight
	}
	if config.SamplesPerPixel < 1 {
		config.SamplesPerPixel = DefaultRenderConfig().SamplesPerPixel
	}
	if config.TileSize < 1 {
		config.TileSize = DefaultRenderConfig().TileSize
	}

	frames, err := NewFramebuffer(camera.Width(), camera.Height())
	if err != nil {
		return nil, err
	}

	return &Raytracer{
		world:  world,
		camera: camera,
		tracer: integrator.NewPathTracer(config.MaxBounces),
		frames: frames,
		config: config,
		tiles:  NewTileGrid(camera.Width(), camera.Height(), config.TileSize),
	}, nil
}

// Framebuffer returns the accumulation buffer the raytracer renders into.
func (rt *Raytracer) Framebuffer() *Framebuffer {
	return rt.frames
}

// Config returns the active render configuration.
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// blendWeightForFrame resolves the blend weight for a frame. A configured
// weight in [0, 1] is used verbatim; a negative weight selects the running
// average frame/(frame+1), which weights every frame rendered so far equally.
func (rt *Raytracer) blendWeightForFrame(frame int) float64 {
	if rt.config.BlendWeight >= 0 {
		return rt.config.BlendWeight
	}
	return float64(frame) / float64(frame+1)
}

// RenderFrame renders one frame into the framebuffer and returns its
// statistics. The frame index drives both per-pixel seeding and the running
// average weight, so rendering the same frame twice blends identical samples.
func (rt *Raytracer) RenderFrame(frame int) FrameStats {
	start := time.Now()
	weight := rt.blendWeightForFrame(frame)

	pool := NewWorkerPool(rt.renderTile, rt.config.NumWorkers, len(rt.tiles))
	pool.Start()

	for id, bounds := range rt.tiles {
		pool.SubmitTask(TileTask{
			Bounds: bounds,
			Frame:  frame,
			Weight: weight,
			TaskID: id,
		})
	}

	var total TileStats
	for range rt.tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		total.Merge(result.Stats)
	}
	pool.Stop()

	return total.Summarize(frame, time.Since(start))
}

// renderTile renders every pixel in the task bounds. Each pixel averages
// its jittered samples and blends the average with the stored value.
func (rt *Raytracer) renderTile(task TileTask) TileStats {
	var stats TileStats

	for y := task.Bounds.Min.Y; y < task.Bounds.Max.Y; y++ {
		for x := task.Bounds.Min.X; x < task.Bounds.Max.X; x++ {
			rng := core.NewPixelRNG(x, y, task.Frame)

			sum := core.NewVec3(0, 0, 0)
			for s := 0; s < rt.config.SamplesPerPixel; s++ {
				ray := rt.camera.RayForPixel(x, y, rng)
				color, _ := rt.tracer.RayColor(ray, rt.world, rng)
				sum = sum.Add(color)
			}
			avg := sum.Multiply(1.0 / float64(rt.config.SamplesPerPixel))

			blended := avg.Lerp(rt.frames.At(x, y), task.Weight)
			rt.frames.Set(x, y, blended)

			stats.AddPixel(blended, rt.config.SamplesPerPixel)
		}
	}

	return stats
}
