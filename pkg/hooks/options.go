package hooks

import (
	"log/slog"

	"github.com/randalmurphal/taghooks/pkg/hooks/observability"
)

// hooksConfig holds instance-wide settings.
type hooksConfig struct {
	logger              *slog.Logger
	metrics             observability.MetricsRecorder
	spans               observability.SpanManager
	metricsEnabled      bool
	tracingEnabled      bool
	defaultPriority     int
	defaultAcceptedArgs int
}

// defaultHooksConfig returns the settings used when no option is given.
func defaultHooksConfig() hooksConfig {
	return hooksConfig{
		metrics:             observability.NoopMetrics{},
		spans:               observability.NoopSpanManager{},
		defaultPriority:     10,
		defaultAcceptedArgs: 1,
	}
}

// Option configures a Hooks instance.
type Option func(*hooksConfig)

// WithLogger sets the structured logger. A nil logger disables logging.
// The instance id is attached to every record as hooks_id.
func WithLogger(logger *slog.Logger) Option {
	return func(c *hooksConfig) {
		c.logger = logger
	}
}

// WithMetrics enables or disables OpenTelemetry metrics.
// When enabled, triggers record counts, latency, and callback invocations
// through the global MeterProvider.
func WithMetrics(enabled bool) Option {
	return func(c *hooksConfig) {
		c.metricsEnabled = enabled
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithMetricsRecorder installs a custom recorder and enables metrics.
func WithMetricsRecorder(r observability.MetricsRecorder) Option {
	return func(c *hooksConfig) {
		if r == nil {
			return
		}
		c.metricsEnabled = true
		c.metrics = r
	}
}

// WithTracing enables or disables a span per trigger through the global
// TracerProvider.
func WithTracing(enabled bool) Option {
	return func(c *hooksConfig) {
		c.tracingEnabled = enabled
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithSpanManager installs a custom span manager and enables tracing.
func WithSpanManager(m observability.SpanManager) Option {
	return func(c *hooksConfig) {
		if m == nil {
			return
		}
		c.tracingEnabled = true
		c.spans = m
	}
}

// WithDefaultPriority sets the priority used when AddFilter is called
// without WithPriority. Default: 10
func WithDefaultPriority(p int) Option {
	return func(c *hooksConfig) {
		c.defaultPriority = p
	}
}

// WithDefaultAcceptedArgs sets the argument cap used when AddFilter is
// called without WithAcceptedArgs. Negative values are ignored. Default: 1
func WithDefaultAcceptedArgs(n int) Option {
	return func(c *hooksConfig) {
		if n >= 0 {
			c.defaultAcceptedArgs = n
		}
	}
}

// entryConfig holds per-registration settings.
type entryConfig struct {
	priority     int
	acceptedArgs int
}

// EntryOption configures a single registration or removal.
type EntryOption func(*entryConfig)

// WithPriority sets the entry's priority. Lower runs first; negative
// values are allowed.
func WithPriority(p int) EntryOption {
	return func(c *entryConfig) {
		c.priority = p
	}
}

// WithAcceptedArgs caps how many positional arguments the callback receives.
// Zero means none. Negative values are ignored.
//
// Example:
//
//	h.AddFilter("title", hooks.Named("wrap", wrap), hooks.WithAcceptedArgs(2))
func WithAcceptedArgs(n int) EntryOption {
	return func(c *entryConfig) {
		if n >= 0 {
			c.acceptedArgs = n
		}
	}
}

func (h *Hooks) entryConfig(opts []EntryOption) entryConfig {
	ec := entryConfig{
		priority:     h.cfg.defaultPriority,
		acceptedArgs: h.cfg.defaultAcceptedArgs,
	}
	for _, opt := range opts {
		opt(&ec)
	}
	return ec
}
