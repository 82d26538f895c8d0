package cmd

import (
	"strings"

	"github.com/urfave/cli"

	"github.com/lumen-render/lumen/log"
)

var logger = log.New("lumen")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// sessionLogger adapts the leveled logger to the render session's
// Printf-style progress interface.
type sessionLogger struct{}

func (sessionLogger) Printf(format string, args ...interface{}) {
	logger.Infof(strings.TrimSuffix(format, "\n"), args...)
}
