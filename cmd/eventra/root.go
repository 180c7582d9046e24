package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/eventra/eventra-api/internal/app"
	"github.com/eventra/eventra-api/internal/infrastructure/config"
	"github.com/eventra/eventra-api/pkg/logger"
)

const serviceName = "eventra-api"

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "eventra",
		Short:        "Eventra authentication and event API",
		SilenceUsage: true,
	}

	root.AddCommand(
		ServeCmd(),
		CreateAdminCmd(),
		SeedCmd(),
	)

	return root
}

// bootstrap loads configuration, initialises the logger and wires the app.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, *app.App, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to initialise application")
		return nil, log, nil, err
	}
	return cfg, log, a, nil
}
