package main

import (
	"context"
	"os"

	"go.uber.org/fx"

	"github.com/thegab/tiktok-scraper/internal/app"
	"github.com/thegab/tiktok-scraper/pkg/logger"
)

func main() {
	log := logger.New(logger.Opts{})

	application := fx.New(
		fx.Logger(log),
		app.Module,
	)

	if err := application.Start(context.Background()); err != nil {
		log.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	// Done unblocks on SIGINT/SIGTERM, or when a one-shot run finishes and
	// asks the app to shut itself down.
	<-application.Done()

	if err := application.Stop(context.Background()); err != nil {
		log.Error("Failed to stop application", "error", err)
		os.Exit(1)
	}
}
