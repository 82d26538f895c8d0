package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/lumen-render/lumen/web/server"
)

// ServeViewer starts the SSE web viewer and blocks.
func ServeViewer(ctx *cli.Context) error {
	setupLogging(ctx)

	addr := fmt.Sprintf("%s:%d", ctx.String("addr"), ctx.Int("port"))
	return server.NewServer(addr).Start()
}
