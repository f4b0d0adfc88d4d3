package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// appendFn returns a filter that appends suffix to its string argument.
func appendFn(suffix string) Func {
	return func(_ context.Context, args ...any) (any, error) {
		return args[0].(string) + suffix, nil
	}
}

// countFn returns an action that increments *n.
func countFn(n *int) Func {
	return func(_ context.Context, _ ...any) (any, error) {
		*n++
		return nil, nil
	}
}

// recordingMetrics counts recorder calls for assertions.
type recordingMetrics struct {
	mu        sync.Mutex
	triggers  int
	errors    int
	callbacks map[string]int
	sorts     map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		callbacks: make(map[string]int),
		sorts:     make(map[string]int),
	}
}

func (r *recordingMetrics) RecordTrigger(_ context.Context, _, _ string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggers++
	if err != nil {
		r.errors++
	}
}

func (r *recordingMetrics) RecordCallback(_ context.Context, _, tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks[tag]++
}

func (r *recordingMetrics) RecordSort(_ context.Context, tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sorts[tag]++
}

func (r *recordingMetrics) sortCount(tag string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorts[tag]
}

// captureHandler collects JSON log records.
type captureHandler struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func newCaptureLogger() (*slog.Logger, *captureHandler) {
	h := &captureHandler{}
	return slog.New(slog.NewJSONHandler(&lockedWriter{h: h}, &slog.HandlerOptions{Level: slog.LevelDebug})), h
}

type lockedWriter struct {
	h *captureHandler
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.h.mu.Lock()
	defer w.h.mu.Unlock()
	return w.h.buf.Write(p)
}

// records returns every captured record.
func (h *captureHandler) records() []map[string]any {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(h.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err == nil {
			out = append(out, rec)
		}
	}
	return out
}

// messages returns the msg field of every captured record.
func (h *captureHandler) messages() []string {
	var msgs []string
	for _, rec := range h.records() {
		if m, ok := rec["msg"].(string); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
