package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtbook/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 300, cfg.App.Booking.LockTTLSeconds)
	assert.Equal(t, "*/5 * * * *", cfg.App.Booking.SnapshotRefreshCron)
	assert.Equal(t, "courtbook.bookings", cfg.Kafka.Topic)
	assert.Equal(t, 300, cfg.Cache.TTL)
}

func TestLoadFromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("APP_TIMEZONE=Asia/Jakarta\nAPP_BOOKING_LOCK_STORE=memory\n"), 0o600))

	t.Setenv("KAFKA_BROKERS", "b1:9092,b2:9092")

	// godotenv exports into the process and never overrides.
	t.Cleanup(func() {
		os.Unsetenv("APP_TIMEZONE")
		os.Unsetenv("APP_BOOKING_LOCK_STORE")
	})

	cfg, err := config.Load(envFile)

	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", cfg.App.Timezone)
	assert.Equal(t, "memory", cfg.App.Booking.LockStore)
	assert.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.Kafka.Brokers)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		cfg := &config.Config{}
		cfg.App.Booking.LockTTLSeconds = 300

		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{
			name:    "production without secrets",
			mutate:  func(cfg *config.Config) { cfg.Server.Env = "production" },
			wantErr: config.ErrMissingSecret,
		},
		{
			name: "production with secrets",
			mutate: func(cfg *config.Config) {
				cfg.Server.Env = "production"
				cfg.JWT.AccessSecret = "a"
				cfg.JWT.RefreshSecret = "r"
			},
		},
		{
			name:    "rate limiter without budget",
			mutate:  func(cfg *config.Config) { cfg.App.RateLimiter.Enable = true },
			wantErr: config.ErrInvalidValue,
		},
		{
			name:    "zero lock ttl",
			mutate:  func(cfg *config.Config) { cfg.App.Booking.LockTTLSeconds = 0 },
			wantErr: config.ErrInvalidValue,
		},
		{
			name:    "kafka without brokers",
			mutate:  func(cfg *config.Config) { cfg.Kafka.Enable = true },
			wantErr: config.ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}
