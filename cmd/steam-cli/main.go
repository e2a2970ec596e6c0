package main

import (
	"context"
	"os"
	"time"

	"github.com/bdu-steam/steam-cli/internal/cli/command"
	"github.com/bdu-steam/steam-cli/internal/infra/shutdown"
	"github.com/bdu-steam/steam-cli/internal/telemetry/logger"
)

// shutdownTimeout bounds the exit hooks (metrics export, shell history).
const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	handler := shutdown.NewHandler(shutdownTimeout)
	app := command.App(command.Options{Shutdown: handler})

	err := app.RunContext(ctx, os.Args)
	if hookErr := handler.Shutdown(); hookErr != nil {
		logger.L(ctx).Warn("exit hooks failed", "error", hookErr)
	}

	if err != nil {
		command.PrintError(os.Stderr, err)
		return 1
	}
	return 0
}
