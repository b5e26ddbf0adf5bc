// Command babelink runs the Babelink command backend on the loopback
// interface for the desktop front end.
package main

import (
	"context"
	"os"

	"github.com/kbukum/babelink/app"
	"github.com/kbukum/babelink/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := app.Load()
	if err != nil {
		logger.Error("Failed to load configuration", logger.Fields(logger.FieldError, err.Error()))
		os.Exit(1)
	}

	b, err := app.New(ctx, cfg)
	if err != nil {
		logger.GetGlobalLogger().Fatal("Failed to assemble backend", logger.Fields(logger.FieldError, err.Error()))
	}

	if err := b.Run(ctx); err != nil {
		b.Logger.Fatal("Backend stopped with error", logger.Fields(logger.FieldError, err.Error()))
	}
}
