package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"courtbook/config"
	"courtbook/shared/failure"
)

func newRecordingOtel(t *testing.T) (*otelImpl, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	return &otelImpl{provider: provider, shutdown: provider.Shutdown}, recorder
}

func TestNewWithoutEndpoint(t *testing.T) {
	o := New(&config.Config{})

	_, scope := o.NewScope(context.Background(), "courtbook.test", "noop")
	scope.SetAttribute("court.id", "c1")
	scope.End()

	assert.NoError(t, o.Shutdown(context.Background()))
}

func TestScope_TraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
		wantEvents int
	}{
		{name: "nil error", err: nil, wantStatus: codes.Unset, wantEvents: 0},
		{name: "client error", err: failure.ConflictWithReason(failure.ReasonSlotTaken, "taken"), wantStatus: codes.Unset, wantEvents: 1},
		{name: "server error", err: errors.New("database error"), wantStatus: codes.Error, wantEvents: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, recorder := newRecordingOtel(t)

			_, scope := o.NewScope(context.Background(), "courtbook.test", tt.name)
			err := tt.err
			scope.TraceIfError(&err)
			scope.End()

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantStatus, spans[0].Status().Code)
			assert.Len(t, spans[0].Events(), tt.wantEvents)
		})
	}
}

func TestScope_TraceIfErrorDeferred(t *testing.T) {
	o, recorder := newRecordingOtel(t)

	run := func() (err error) {
		_, scope := o.NewScope(context.Background(), "courtbook.test", "deferred")
		defer scope.End()
		defer scope.TraceIfError(&err)

		err = errors.New("database error")

		return err
	}

	require.Error(t, run())

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestScope_SetAttributes(t *testing.T) {
	o, recorder := newRecordingOtel(t)

	_, scope := o.NewScope(context.Background(), "courtbook.test", "attributes")
	scope.SetAttributes(map[string]any{
		"booking.cost":     1250,
		"peak.multiplier":  1.5,
		"feature.waitlist": true,
		"booking.items":    []string{"racket"},
		"court.id":         "c1",
		"other":            struct{}{},
	})
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	got := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		got[string(kv.Key)] = kv.Value.Type().String()
	}

	assert.Equal(t, "INT64", got["booking.cost"])
	assert.Equal(t, "FLOAT64", got["peak.multiplier"])
	assert.Equal(t, "BOOL", got["feature.waitlist"])
	assert.Equal(t, "STRINGSLICE", got["booking.items"])
	assert.Equal(t, "STRING", got["court.id"])
	assert.Equal(t, "STRING", got["other"])

	require.NoError(t, o.Shutdown(context.Background()))
}
