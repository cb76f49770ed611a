package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"courtbook/config"
)

const pingTimeout = 3 * time.Second

// New connects to the primary node and pings it, retrying with the same
// budget as the database connection.
func New(cfg *config.Config) (*goRedis.Client, error) {
	primary := cfg.Cache.Redis.Primary

	client := goRedis.NewClient(Options(cfg))

	attempts := max(cfg.DB.Postgres.MaxRetry, 1)
	wait := time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second

	var err error

	for attempt := range attempts {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		err = client.Ping(ctx).Err()
		cancel()

		if err == nil {
			log.Info().
				Int("db", primary.DB).
				Str("host", primary.Host).
				Str("port", primary.Port).
				Msg("Connected to Redis")

			return client, nil
		}

		log.Warn().Err(err).Int("attempt", attempt+1).Msg("Failed connecting to Redis")

		if attempt+1 < attempts {
			time.Sleep(wait)
		}
	}

	_ = client.Close()

	return nil, fmt.Errorf("failed to connect to redis: %w", err)
}

// Options maps the primary node settings onto client options.
func Options(cfg *config.Config) *goRedis.Options {
	primary := cfg.Cache.Redis.Primary

	return &goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	}
}
