// Command idnad serves the IDNA conversion API over HTTP.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/idnakit/internal/api"
	"github.com/dmitrymomot/idnakit/internal/config"
	"github.com/dmitrymomot/idnakit/internal/server"
	"github.com/dmitrymomot/idnakit/pkg/logger"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "idnad",
		Short:         "Serve the IDNA conversion API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configPath == "" {
				configPath = os.Getenv("IDNAD_CONFIG")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			log, err := logger.New(cmd.OutOrStdout(), cfg.Log, api.RequestIDExtractor())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := setup(ctx, cfg, log)
			if err != nil {
				log.Error("startup failed", "error", err)
				_ = a.shutdown(context.WithoutCancel(ctx))
				return err
			}

			opts := []server.Option{
				server.Address(cfg.Server.Address),
				server.Logger(log),
				server.ShutdownTimeout(cfg.Server.ShutdownTimeout),
			}
			for _, hook := range a.hooks {
				opts = append(opts, server.ShutdownHook(hook))
			}
			return server.Run(ctx, a.handler, opts...)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (env IDNAD_CONFIG)")
	return cmd
}
