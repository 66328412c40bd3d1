// Package main is the rotconv command itself.
package main

import (
	"os"

	"github.com/spatialkit/rotation/cli"
	"github.com/spatialkit/rotation/logging"
)

func main() {
	logger := logging.NewLogger("rotconv", logging.ERROR, logging.NewWriterAppender(os.Stderr))
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logger.Errorw("rotconv failed", "error", err)
		logger.Sync() //nolint:errcheck
		os.Exit(1)
	}
}
