package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records hook dispatch metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordTrigger records one filter or action trigger with its duration
	// and error status.
	RecordTrigger(ctx context.Context, kind, tag string, duration time.Duration, err error)

	// RecordCallback records one callback invocation.
	RecordCallback(ctx context.Context, kind, tag string)

	// RecordSort records a priority sort of a tag's levels.
	RecordSort(ctx context.Context, tag string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	triggers       metric.Int64Counter
	triggerLatency metric.Float64Histogram
	triggerErrors  metric.Int64Counter
	callbacks      metric.Int64Counter
	sorts          metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("taghooks")

	triggers, err := meter.Int64Counter("taghooks.trigger.count",
		metric.WithDescription("Number of filter and action triggers"),
	)
	if err != nil {
		return nil, err
	}

	triggerLatency, err := meter.Float64Histogram("taghooks.trigger.latency_ms",
		metric.WithDescription("Trigger latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	triggerErrors, err := meter.Int64Counter("taghooks.trigger.errors",
		metric.WithDescription("Number of triggers aborted by a callback error"),
	)
	if err != nil {
		return nil, err
	}

	callbacks, err := meter.Int64Counter("taghooks.callback.invocations",
		metric.WithDescription("Number of callback invocations"),
	)
	if err != nil {
		return nil, err
	}

	sorts, err := meter.Int64Counter("taghooks.sort.count",
		metric.WithDescription("Number of priority sorts"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		triggers:       triggers,
		triggerLatency: triggerLatency,
		triggerErrors:  triggerErrors,
		callbacks:      callbacks,
		sorts:          sorts,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordTrigger records a trigger.
func (m *otelMetrics) RecordTrigger(ctx context.Context, kind, tag string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("hook.kind", kind),
		attribute.String("hook.tag", tag),
	}

	m.triggers.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.triggerLatency.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))

	if err != nil {
		m.triggerErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordCallback records a callback invocation.
func (m *otelMetrics) RecordCallback(ctx context.Context, kind, tag string) {
	m.callbacks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("hook.kind", kind),
		attribute.String("hook.tag", tag),
	))
}

// RecordSort records a priority sort.
func (m *otelMetrics) RecordSort(ctx context.Context, tag string) {
	m.sorts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("hook.tag", tag),
	))
}
