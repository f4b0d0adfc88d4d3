// Package observability provides logging, metrics, and tracing for hook
// dispatch.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds the registry instance id to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, h.ID())
//	enriched.Info("registered") // includes hooks_id
func EnrichLogger(logger *slog.Logger, instanceID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("hooks_id", instanceID))
}

// LogTrigger logs the start of a filter or action trigger.
func LogTrigger(logger *slog.Logger, kind, tag string, depth int) {
	if logger == nil {
		return
	}
	logger.Debug("hook triggered",
		slog.String("kind", kind),
		slog.String("tag", tag),
		slog.Int("depth", depth),
	)
}

// LogTriggerComplete logs a trigger that ran to completion.
func LogTriggerComplete(logger *slog.Logger, kind, tag string, callbacks int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("hook completed",
		slog.String("kind", kind),
		slog.String("tag", tag),
		slog.Int("callbacks", callbacks),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogTriggerError logs a trigger aborted by a callback error.
func LogTriggerError(logger *slog.Logger, kind, tag string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("hook failed",
		slog.String("kind", kind),
		slog.String("tag", tag),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogFilterStep logs the value before and after one filter callback.
func LogFilterStep(logger *slog.Logger, tag, key string, before, after any) {
	if logger == nil {
		return
	}
	logger.Debug("filter applied",
		slog.String("tag", tag),
		slog.String("callback", key),
		slog.Any("before", before),
		slog.Any("after", after),
	)
}

// LogRegister logs a callback registration.
func LogRegister(logger *slog.Logger, tag, key string, priority, acceptedArgs int) {
	if logger == nil {
		return
	}
	logger.Debug("callback registered",
		slog.String("tag", tag),
		slog.String("callback", key),
		slog.Int("priority", priority),
		slog.Int("accepted_args", acceptedArgs),
	)
}

// LogRemove logs a callback removal attempt.
func LogRemove(logger *slog.Logger, tag, key string, priority int, removed bool) {
	if logger == nil {
		return
	}
	logger.Debug("callback removed",
		slog.String("tag", tag),
		slog.String("callback", key),
		slog.Int("priority", priority),
		slog.Bool("removed", removed),
	)
}

// LogRejected logs a registration call that was refused.
func LogRejected(logger *slog.Logger, op, tag, callable string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("callback rejected",
		slog.String("operation", op),
		slog.String("tag", tag),
		slog.String("callable", callable),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
