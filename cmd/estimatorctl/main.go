package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/cleberrangel/project-estimator-api/internal/cli"
	"github.com/cleberrangel/project-estimator-api/internal/config"
	"github.com/cleberrangel/project-estimator-api/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// logs vão para stderr para não misturar com a saída do comando
	logger.InitWithWriter(cfg.LogLevel, cfg.LogJSON, os.Stderr)
	logger.InitAudit()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand(cfg).Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
