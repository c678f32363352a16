package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Animesh-Ghosh/parking-lot/internal/config"
)

func TestNewTelemetryProviderReturnsProvider(t *testing.T) {
	ctx := context.Background()
	// Nothing listens on the endpoint; exporters fail lazily, not at init.
	tp, err := NewTelemetryProvider(ctx, config.OTelConfig{
		ServiceName:  "test-service",
		OTLPEndpoint: "http://localhost:4318",
	})
	require.NoError(t, err)
	assert.NotNil(t, tp.Tracer())
	assert.NotNil(t, tp.Meter())
	assert.NotNil(t, tp.tracerProvider)
	assert.NotNil(t, tp.meterProvider)
	assert.NotNil(t, tp.loggerProvider)

	shutdownCtx, cancel := context.WithCancel(ctx)
	cancel()
	_ = tp.Shutdown(shutdownCtx)
}

func TestDisabledTelemetryIsNoop(t *testing.T) {
	tp, err := NewTelemetryProvider(context.Background(), config.OTelConfig{Disabled: true})
	require.NoError(t, err)

	_, span := tp.Tracer().Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	counter, err := tp.Meter().Int64Counter("noop_total")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	assert.NoError(t, tp.Shutdown(context.Background()))
}
