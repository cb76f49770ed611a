package di

import (
	"context"
	"fmt"

	"courtbook/config"
	"courtbook/infras/kafka"
	"courtbook/infras/otel"
	"courtbook/infras/postgres"
	"courtbook/infras/scheduler"
	"courtbook/internal/events"
	"courtbook/internal/state"
	"courtbook/transport/http"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const snapshotRefreshJob = "snapshot_refresh"

// App bundles the long-lived components a process runs.
type App struct {
	Config    *config.Config
	HTTP      *http.HTTP
	DB        *postgres.Connection
	Redis     *goRedis.Client
	Store     *state.Store
	Events    *events.Bus
	Kafka     kafka.Client
	Scheduler scheduler.Scheduler
	Otel      otel.Otel
}

// Start loads the initial snapshot and starts the background workers.
// Listening for peer events stops when ctx is done.
func (a *App) Start(ctx context.Context) error {
	if err := a.Store.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load initial state: %w", err)
	}

	if _, err := a.Scheduler.AddJob(snapshotRefreshJob, a.Config.App.Booking.SnapshotRefreshCron, a.Store.Refresh); err != nil {
		return fmt.Errorf("failed to schedule snapshot refresh: %w", err)
	}

	a.Scheduler.Start()

	go a.Events.Listen(ctx, a.Store)

	return nil
}

// Stop releases the workers started by Start.
func (a *App) Stop(ctx context.Context) {
	if err := a.Scheduler.Stop(); err != nil {
		log.Error().Err(err).Msg("failed to stop scheduler")
	}

	if err := a.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close kafka client")
	}

	if err := a.Redis.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close redis client")
	}

	if err := a.DB.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}

	if err := a.Otel.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to flush traces")
	}
}
