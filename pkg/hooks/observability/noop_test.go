package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordTrigger(ctx, "filter", "t", time.Second, errors.New("x"))
		m.RecordCallback(ctx, "filter", "t")
		m.RecordSort(ctx, "t")
	})
}

func TestNoopSpanManager(t *testing.T) {
	sm := NoopSpanManager{}
	ctx := context.Background()

	newCtx, span := sm.StartTriggerSpan(ctx, "inst", "filter", "t", 1)
	assert.Equal(t, ctx, newCtx)
	assert.False(t, span.IsRecording())

	assert.NotPanics(t, func() {
		sm.AddSpanEvent(ctx, "event", attribute.String("k", "v"))
		sm.EndSpanWithError(span, errors.New("x"))
	})
}
