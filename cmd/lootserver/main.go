// Package main runs the loot terminal over Telnet and the JSON API over
// HTTP in one process.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/rowolff/bb-character-sheet/internal/config"
	"github.com/rowolff/bb-character-sheet/internal/observability"
	"github.com/rowolff/bb-character-sheet/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	contentDir := flag.String("content", "", "content directory; overrides generator.content_dir")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentDir != "" {
		cfg.Generator.ContentDir = *contentDir
	}

	logger, err := observability.NewLogger(cfg.Logging, "lootserver")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting loot server",
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.String("http_addr", cfg.HTTP.Addr()),
	)

	stack, err := server.NewStack(cfg.Generator, logger)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}
	lifecycle := stack.Lifecycle(cfg)

	logger.Info("loot server initialized", zap.Duration("startup", time.Since(start)))

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
