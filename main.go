package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/llehouerou/dctransit/internal/app"
	"github.com/llehouerou/dctransit/internal/config"
	"github.com/llehouerou/dctransit/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dctransit: %v\n", err)
		return 1
	}

	lc := cfg.GetLogConfig()
	sink, err := logging.New(logging.Options{
		File:     lc.File,
		RingSize: lc.RingSize,
		Debug:    cfg.UI.Development,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "dctransit: log file unavailable, logging to memory: %v\n", err)
		sink = logging.NewMemory(lc.RingSize, cfg.UI.Development)
	}
	defer sink.Close()

	sink.Logger.Info().Msg("starting")
	if err := app.Run(ctx, cfg, sink); err != nil {
		sink.Logger.Error().Err(err).Msg("exited with error")
		fmt.Fprintf(os.Stderr, "dctransit: %v\n", err)
		return 1
	}
	return 0
}
