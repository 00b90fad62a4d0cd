package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/storefront/internal/client/cli"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = logging.Sync(logger) }()

	st, closeStorage, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := closeStorage(); err != nil {
			logger.Error(ctx, "closing storage", "error", err)
		}
	}()

	app, err := cli.NewApp(cfg, logger, st)
	if err != nil {
		logger.Error(ctx, "starting storefront", "error", err)
		return
	}

	logger.Info(ctx, "storefront started", "api", cfg.APIBaseURL, "environment", cfg.Environment, "storage", cfg.StorageDriver)
	app.Run(ctx)

}
