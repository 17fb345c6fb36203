package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rowolff/bb-character-sheet/internal/config"
	"github.com/rowolff/bb-character-sheet/internal/observability"
	"github.com/rowolff/bb-character-sheet/internal/server"
)

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the loot terminal over Telnet and the JSON API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger, err := observability.NewLogger(cfg.Logging, "bbgen")
			if err != nil {
				return err
			}
			defer logger.Sync()

			stack, err := server.NewStack(cfg.Generator, logger)
			if err != nil {
				return err
			}
			lifecycle := stack.Lifecycle(cfg)
			logger.Info("bbgen serve initialized",
				zap.Duration("startup", time.Since(start)),
				zap.String("telnet_addr", cfg.Telnet.Addr()),
				zap.String("http_addr", cfg.HTTP.Addr()),
			)
			return lifecycle.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "configs/dev.yaml", "path to configuration file")
	return cmd
}
