package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/lumen-render/lumen/pkg/renderer"
	"github.com/lumen-render/lumen/pkg/scene"
)

// buildRaytracer assembles the render pipeline from a scene and the command
// line overrides. Zero-valued dimension overrides keep the scene defaults.
func buildRaytracer(ctx *cli.Context, width, height int) (*renderer.Raytracer, error) {
	sceneObj, err := scene.CreateScene(ctx.String("scene"))
	if err != nil {
		return nil, err
	}

	cameraConfig := sceneObj.Camera
	if width > 0 {
		cameraConfig.Width = width
	}
	if height > 0 {
		cameraConfig.Height = height
	}
	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return nil, err
	}

	renderConfig := sceneObj.Render
	if spp := ctx.Int("spp"); spp > 0 {
		renderConfig.SamplesPerPixel = spp
	}
	if bounces := ctx.Int("max-bounces"); bounces > 0 {
		renderConfig.MaxBounces = bounces
	}
	if workers := ctx.Int("workers"); workers > 0 {
		renderConfig.NumWorkers = workers
	}
	renderConfig.BlendWeight = ctx.Float64("weight")

	return renderer.NewRaytracer(sceneObj.World, camera, renderConfig)
}

// RenderScene renders a session headless and writes the final image.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	format := ctx.String("format")
	if format != "png" && format != "tiff" {
		return fmt.Errorf("unknown output format %q, expected png or tiff", format)
	}

	width, height := ctx.Int("width"), ctx.Int("height")
	checkpointPath := ctx.String("checkpoint")

	// Resuming restores the previous accumulation and continues its frame
	// numbering. Unset dimensions adopt the checkpoint's.
	var resumed *renderer.Checkpoint
	startFrame := 0
	if ctx.Bool("resume") {
		if checkpointPath == "" {
			return errors.New("resume requires --checkpoint")
		}
		cp, err := renderer.ReadCheckpointFile(checkpointPath)
		if err != nil {
			return err
		}
		resumed = cp
		startFrame = cp.NextFrame
		if width == 0 {
			width = cp.Width
		}
		if height == 0 {
			height = cp.Height
		}
	}

	raytracer, err := buildRaytracer(ctx, width, height)
	if err != nil {
		return err
	}
	if resumed != nil {
		if err := resumed.Restore(raytracer.Framebuffer()); err != nil {
			return err
		}
		logger.Noticef("resumed accumulation at frame %d from %s", startFrame, checkpointPath)
	}

	session, err := renderer.NewSession(raytracer, renderer.SessionConfig{
		MaxFrames:  ctx.Int("frames"),
		StartFrame: startFrame,
	}, sessionLogger{})
	if err != nil {
		return err
	}

	// Interrupting with Ctrl-C stops between frames; the checkpoint below
	// still captures everything rendered so far.
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, errs := session.Run(sigCtx)

	framesDone := 0
	var last renderer.FrameStats
	var total time.Duration
	for result := range results {
		framesDone++
		last = result.Stats
		total += result.Stats.RenderTime
	}
	if err := <-errs; err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Noticef("render interrupted after %d of %d frames", framesDone, ctx.Int("frames"))
	}

	if checkpointPath != "" {
		next := startFrame + framesDone
		if err := renderer.WriteCheckpointFile(checkpointPath, raytracer.Framebuffer(), next); err != nil {
			return err
		}
		logger.Noticef("checkpoint saved to %s (next frame %d)", checkpointPath, next)
	}

	if framesDone == 0 && resumed == nil {
		logger.Noticef("nothing rendered, skipping image output")
		return nil
	}

	out := ctx.String("out")
	if err := writeImage(raytracer.Framebuffer(), format, out); err != nil {
		return err
	}
	logger.Noticef("image saved to %s", out)

	displayRenderStats(ctx.String("scene"), raytracer, framesDone, last, total)
	return nil
}

// writeImage encodes the framebuffer to the named file.
func writeImage(fb *renderer.Framebuffer, format, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch format {
	case "png":
		err = fb.EncodePNG(f)
	case "tiff":
		err = fb.EncodeTIFF(f)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// displayRenderStats prints a one-row summary of the finished session.
func displayRenderStats(sceneName string, rt *renderer.Raytracer, frames int, last renderer.FrameStats, total time.Duration) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Resolution", "Frames", "Samples/px/frame", "Mean luminance", "Variance", "Total time"})
	table.Append([]string{
		sceneName,
		fmt.Sprintf("%dx%d", rt.Framebuffer().Width(), rt.Framebuffer().Height()),
		fmt.Sprintf("%d", frames),
		fmt.Sprintf("%d", rt.Config().SamplesPerPixel),
		fmt.Sprintf("%.4f", last.MeanLuminance),
		fmt.Sprintf("%.6f", last.LuminanceVariance),
		total.Round(time.Millisecond).String(),
	})
	table.Render()

	logger.Noticef("session statistics\n%s", buf.String())
}
