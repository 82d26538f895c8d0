package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/lumen-render/lumen/pkg/renderer"
)

// BenchScene renders a fixed number of frames back to back and reports
// per-frame timing and convergence numbers.
func BenchScene(ctx *cli.Context) error {
	setupLogging(ctx)

	raytracer, err := buildRaytracer(ctx, ctx.Int("width"), ctx.Int("height"))
	if err != nil {
		return err
	}

	frames := ctx.Int("frames")
	if frames < 1 {
		frames = renderer.DefaultSessionConfig().MaxFrames
	}

	fb := raytracer.Framebuffer()
	logger.Noticef("benchmarking %q at %dx%d for %d frames",
		ctx.String("scene"), fb.Width(), fb.Height(), frames)

	stats := make([]renderer.FrameStats, 0, frames)
	start := time.Now()
	for frame := 0; frame < frames; frame++ {
		stats = append(stats, raytracer.RenderFrame(frame))
	}
	total := time.Since(start)

	displayBenchStats(stats, total)
	return nil
}

func displayBenchStats(stats []renderer.FrameStats, total time.Duration) {
	buf := bytes.Buffer{}
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Samples", "Mean luminance", "Variance", "Render time"})

	for _, fs := range stats {
		table.Append([]string{
			fmt.Sprintf("%d", fs.Frame),
			fmt.Sprintf("%d", fs.Samples),
			fmt.Sprintf("%.4f", fs.MeanLuminance),
			fmt.Sprintf("%.6f", fs.LuminanceVariance),
			fs.RenderTime.Round(time.Microsecond).String(),
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", total.Round(time.Microsecond).String()})
	table.Render()

	logger.Noticef("benchmark results\n%s", buf.String())
}
