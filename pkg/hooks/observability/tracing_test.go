package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("taghooks")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestStartTriggerSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	t.Run("creates span with kind and tag in name", func(t *testing.T) {
		_, span := StartTriggerSpan(context.Background(), "inst-1", "filter", "the_title", 1)
		require.NotNil(t, span)
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, "taghooks.filter.the_title", s.Name)

		got := map[attribute.Key]attribute.Value{}
		for _, attr := range s.Attributes {
			got[attr.Key] = attr.Value
		}
		assert.Equal(t, "inst-1", got["hooks.id"].AsString())
		assert.Equal(t, "filter", got["hook.kind"].AsString())
		assert.Equal(t, "the_title", got["hook.tag"].AsString())
		assert.Equal(t, int64(1), got["hook.depth"].AsInt64())
	})

	t.Run("nested triggers are children", func(t *testing.T) {
		exporter.Reset()

		ctx, outer := StartTriggerSpan(context.Background(), "inst-1", "action", "outer", 1)
		_, inner := StartTriggerSpan(ctx, "inst-1", "filter", "inner", 2)
		inner.End()
		outer.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 2)
		assert.Equal(t, "taghooks.filter.inner", spans[0].Name)
		assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	})
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	t.Run("records error status", func(t *testing.T) {
		_, span := StartTriggerSpan(context.Background(), "inst", "action", "fail", 1)
		EndSpanWithError(span, errors.New("callback failed"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, "callback failed", spans[0].Status.Description)
		assert.NotEmpty(t, spans[0].Events)
	})

	t.Run("records ok status", func(t *testing.T) {
		exporter.Reset()

		_, span := StartTriggerSpan(context.Background(), "inst", "action", "ok", 1)
		EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("nil span is ignored", func(t *testing.T) {
		assert.NotPanics(t, func() {
			EndSpanWithError(nil, errors.New("x"))
		})
	})
}

func TestSpanManager(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()
	ctx, span := sm.StartTriggerSpan(context.Background(), "inst", "filter", "content", 1)
	sm.AddSpanEvent(ctx, "callback", attribute.String("callback", "upper"))
	sm.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "callback", spans[0].Events[0].Name)
}
