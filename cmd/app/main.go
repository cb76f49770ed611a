package main

import (
	"context"

	"courtbook/config"
	"courtbook/di"
	"courtbook/helper"
	"courtbook/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	app, err := di.InitializeApp()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	app.HTTP.Serve(func(shutdownCtx context.Context) {
		cancel()
		app.Stop(shutdownCtx)
	})
}
