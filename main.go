package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/lumen-render/lumen/cmd"
)

func sceneFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "scene",
			Value: "two-spheres",
			Usage: "name of the scene to render",
		},
		cli.IntFlag{
			Name:  "width",
			Value: 0,
			Usage: "frame width (0 uses the scene default)",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 0,
			Usage: "frame height (0 uses the scene default)",
		},
		cli.IntFlag{
			Name:  "spp",
			Value: 0,
			Usage: "samples per pixel per frame (0 uses the scene default)",
		},
		cli.IntFlag{
			Name:  "frames",
			Value: 16,
			Usage: "number of frames to accumulate",
		},
		cli.IntFlag{
			Name:  "max-bounces",
			Value: 0,
			Usage: "ray bounce budget per sample (0 uses the scene default)",
		},
		cli.Float64Flag{
			Name:  "weight",
			Value: -1,
			Usage: "temporal blend weight in [0,1]; negative keeps a running average",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "worker goroutines per frame (0 uses all CPUs)",
		},
	}
}

func buildApp() *cli.App {
	app := cli.NewApp()
	app.Name = "lumen"
	app.Usage = "progressive path tracer with temporal frame accumulation"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Render a scene by accumulating a number of progressively refined frames
and write the blended result to a png or tiff file. An interrupted render
can save its state to a checkpoint file and be resumed later with --resume.`,
			Flags: append(sceneFlags(),
				cli.StringFlag{
					Name:  "format",
					Value: "png",
					Usage: "output image format (png or tiff)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.png",
					Usage: "image filename for the rendered frame",
				},
				cli.StringFlag{
					Name:  "checkpoint",
					Value: "",
					Usage: "checkpoint file to save accumulation state to",
				},
				cli.BoolFlag{
					Name:  "resume",
					Usage: "resume accumulation from the checkpoint file",
				},
			),
			Action: cmd.RenderScene,
		},
		{
			Name:  "serve",
			Usage: "serve the interactive web viewer",
			Description: `
Start an http server that streams progressively refined frames to the
browser over server-sent events.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "addr",
					Value: "localhost",
					Usage: "address to listen on",
				},
				cli.IntFlag{
					Name:  "port",
					Value: 8080,
					Usage: "port to listen on",
				},
			},
			Action: cmd.ServeViewer,
		},
		{
			Name:        "bench",
			Usage:       "benchmark frame rendering for a scene",
			Description: `Render frames back to back and report per-frame timing and convergence.`,
			Flags:       sceneFlags(),
			Action:      cmd.BenchScene,
		},
	}
	return app
}

func main() {
	if err := buildApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
