package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderDisabled(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.NotNil(t, p.Metrics())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestDisabledMetricsAreNoOps(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)

	ctx := context.Background()
	m := p.Metrics()

	// None of these must panic on the zero recorder.
	m.AddTranscriptsFetched(ctx, 5)
	m.IncDocumentsCreated(ctx)
	m.AddTrackingRowsAppended(ctx, 3)
	m.AddTrackingRowsUpdated(ctx, 1)
	m.IncAnalysesCompleted(ctx)
	m.IncAnalysesSkipped(ctx, "schema")
	m.RecordExternalCall(ctx, "sheets", 120*time.Millisecond)
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	m.AddTranscriptsFetched(ctx, 1)
	m.IncAnalysesCompleted(ctx)
}

func TestNewProviderEnabled(t *testing.T) {
	ctx := context.Background()
	p, err := NewProvider(ctx, Config{
		Enabled:        true,
		ServiceName:    "transcriptsync-test",
		ServiceVersion: "0.0.0",
	})
	require.NoError(t, err)

	assert.True(t, p.Enabled())
	require.NotNil(t, p.Metrics())

	p.Metrics().AddTranscriptsFetched(ctx, 2)
	p.Metrics().RecordExternalCall(ctx, "fireflies", 10*time.Millisecond)

	assert.NoError(t, p.Shutdown(ctx))
}
