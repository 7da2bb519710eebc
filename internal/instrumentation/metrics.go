package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency
const (
	attrService = "service"
	attrReason  = "reason"
)

// Metrics provides methods for recording the run counters. A zero Metrics is
// a no-op recorder, used when instrumentation is disabled.
type Metrics struct {
	transcriptsFetched   metric.Int64Counter
	documentsCreated     metric.Int64Counter
	trackingRowsAppended metric.Int64Counter
	trackingRowsUpdated  metric.Int64Counter
	analysesCompleted    metric.Int64Counter
	analysesSkipped      metric.Int64Counter
	externalCallDuration metric.Float64Histogram
}

// NewMetrics creates a Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.transcriptsFetched, err = meter.Int64Counter(
		"transcripts_fetched_total",
		metric.WithDescription("Total number of transcripts fetched from the source API"),
		metric.WithUnit("{transcript}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcripts_fetched_total counter: %w", err)
	}

	m.documentsCreated, err = meter.Int64Counter(
		"documents_created_total",
		metric.WithDescription("Total number of transcript documents created"),
		metric.WithUnit("{document}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create documents_created_total counter: %w", err)
	}

	m.trackingRowsAppended, err = meter.Int64Counter(
		"tracking_rows_appended_total",
		metric.WithDescription("Total number of rows appended to the tracking sheet"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracking_rows_appended_total counter: %w", err)
	}

	m.trackingRowsUpdated, err = meter.Int64Counter(
		"tracking_rows_updated_total",
		metric.WithDescription("Total number of tracking sheet rows updated in place"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracking_rows_updated_total counter: %w", err)
	}

	m.analysesCompleted, err = meter.Int64Counter(
		"analyses_completed_total",
		metric.WithDescription("Total number of transcripts successfully analyzed"),
		metric.WithUnit("{analysis}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyses_completed_total counter: %w", err)
	}

	m.analysesSkipped, err = meter.Int64Counter(
		"analyses_skipped_total",
		metric.WithDescription("Total number of transcripts skipped during analysis"),
		metric.WithUnit("{analysis}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyses_skipped_total counter: %w", err)
	}

	m.externalCallDuration, err = meter.Float64Histogram(
		"external_call_duration_seconds",
		metric.WithDescription("External API call duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create external_call_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// AddTranscriptsFetched records transcripts fetched from the source.
func (m *Metrics) AddTranscriptsFetched(ctx context.Context, n int) {
	if m == nil || m.transcriptsFetched == nil {
		return
	}
	m.transcriptsFetched.Add(ctx, int64(n))
}

// IncDocumentsCreated records one transcript document creation.
func (m *Metrics) IncDocumentsCreated(ctx context.Context) {
	if m == nil || m.documentsCreated == nil {
		return
	}
	m.documentsCreated.Add(ctx, 1)
}

// AddTrackingRowsAppended records rows appended to the tracking sheet.
func (m *Metrics) AddTrackingRowsAppended(ctx context.Context, n int) {
	if m == nil || m.trackingRowsAppended == nil {
		return
	}
	m.trackingRowsAppended.Add(ctx, int64(n))
}

// AddTrackingRowsUpdated records tracking rows updated in place.
func (m *Metrics) AddTrackingRowsUpdated(ctx context.Context, n int) {
	if m == nil || m.trackingRowsUpdated == nil {
		return
	}
	m.trackingRowsUpdated.Add(ctx, int64(n))
}

// IncAnalysesCompleted records one successful analysis.
func (m *Metrics) IncAnalysesCompleted(ctx context.Context) {
	if m == nil || m.analysesCompleted == nil {
		return
	}
	m.analysesCompleted.Add(ctx, 1)
}

// IncAnalysesSkipped records one skipped analysis with the skip reason.
func (m *Metrics) IncAnalysesSkipped(ctx context.Context, reason string) {
	if m == nil || m.analysesSkipped == nil {
		return
	}
	m.analysesSkipped.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrReason, reason),
	))
}

// RecordExternalCall records the duration of one external API call.
func (m *Metrics) RecordExternalCall(ctx context.Context, service string, duration time.Duration) {
	if m == nil || m.externalCallDuration == nil {
		return
	}
	m.externalCallDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(attrService, service),
	))
}
