package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtbook/config"
	"courtbook/shared/logger"
)

// keepGlobals restores the zerolog globals a test mutates.
func keepGlobals(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()
	timeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = timeFormat
	})
}

func TestInitLogger(t *testing.T) {
	keepGlobals(t)

	logger.InitLogger(&config.Config{})

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestNew(t *testing.T) {
	t.Run("json tagged with service", func(t *testing.T) {
		var buf bytes.Buffer

		cfg := &config.Config{}
		cfg.App.Name = "courtbook-test"

		l := logger.New(cfg, &buf)
		l.Info().Str("court", "c1").Msg("booked")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

		assert.Equal(t, "courtbook-test", line["service"])
		assert.Equal(t, "c1", line["court"])
		assert.Equal(t, "booked", line["message"])
	})

	t.Run("default service name", func(t *testing.T) {
		var buf bytes.Buffer

		l := logger.New(&config.Config{}, &buf)
		l.Info().Msg("hello")

		assert.Contains(t, buf.String(), `"service":"courtbook"`)
	})

	t.Run("development is human readable", func(t *testing.T) {
		var buf bytes.Buffer

		cfg := &config.Config{}
		cfg.Server.Env = "development"

		l := logger.New(cfg, &buf)
		l.Info().Msg("hello")

		assert.Contains(t, buf.String(), "hello")
		assert.False(t, json.Valid(buf.Bytes()))
	})
}

func TestErrorWithStack(t *testing.T) {
	keepGlobals(t)
	logger.InitLogger(&config.Config{})

	var buf bytes.Buffer
	log.Logger = logger.New(&config.Config{}, &buf)

	logger.ErrorWithStack(errors.New("slot lock lost"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "slot lock lost", line["error"])
	assert.NotEmpty(t, line["stack"])
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{input: "debug", expected: zerolog.DebugLevel},
		{input: "info", expected: zerolog.InfoLevel},
		{input: "warn", expected: zerolog.WarnLevel},
		{input: "error", expected: zerolog.ErrorLevel},
		{input: "", expected: zerolog.TraceLevel},
		{input: "loud", expected: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			keepGlobals(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.input

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}
