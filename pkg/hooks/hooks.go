package hooks

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/randalmurphal/taghooks/pkg/hooks/config"
	"github.com/randalmurphal/taghooks/pkg/hooks/identity"
	"github.com/randalmurphal/taghooks/pkg/hooks/observability"
)

// AllTag is the reserved tag whose callbacks observe every trigger.
const AllTag = "all"

// Hooks is a registry of prioritized callbacks keyed by tag.
//
// All methods are safe for concurrent use. The registry lock is never held
// while a callback runs, so callbacks may register, remove, and trigger
// freely. The invocation stack is per instance; CurrentFilter is only
// meaningful when triggers do not run concurrently.
type Hooks struct {
	id  string
	cfg hooksConfig

	mu     sync.RWMutex
	tags   map[string]*tagTable
	sorted map[string]bool
	stack  []string
	fired  map[string]int
	ids    *identity.Table
}

// New creates an independent Hooks instance.
//
// Example:
//
//	h := hooks.New(hooks.WithLogger(logger), hooks.WithMetrics(true))
//	h.AddFilter("title", hooks.Named("strings.ToUpper", upper))
//	title, err := h.ApplyFilters(ctx, "title", "hello")
func New(opts ...Option) *Hooks {
	cfg := defaultHooksConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	id := uuid.New().String()
	cfg.logger = observability.EnrichLogger(cfg.logger, id)

	return &Hooks{
		id:     id,
		cfg:    cfg,
		tags:   make(map[string]*tagTable),
		sorted: make(map[string]bool),
		fired:  make(map[string]int),
		ids:    identity.NewTable(),
	}
}

// NewFromConfig creates a Hooks instance from loaded settings. A non-empty
// log level installs a text logger on stderr. Options are applied after the
// settings and override them.
func NewFromConfig(s config.Settings, opts ...Option) (*Hooks, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	base := []Option{
		WithDefaultPriority(s.DefaultPriority),
		WithDefaultAcceptedArgs(s.DefaultAcceptedArgs),
	}
	if s.Metrics {
		base = append(base, WithMetrics(true))
	}
	if s.Tracing {
		base = append(base, WithTracing(true))
	}
	if level, ok := s.Level(); ok {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		base = append(base, WithLogger(slog.New(handler)))
	}

	return New(append(base, opts...)...), nil
}

var (
	defaultHooks     *Hooks
	defaultHooksOnce sync.Once
)

// Default returns the process-wide instance, creating it on first use.
// Prefer passing an explicit *Hooks where possible.
func Default() *Hooks {
	defaultHooksOnce.Do(func() {
		defaultHooks = New()
	})
	return defaultHooks
}

// ID returns the instance id attached to logs, spans, and snapshots.
func (h *Hooks) ID() string { return h.id }

// String implements fmt.Stringer.
func (h *Hooks) String() string {
	return fmt.Sprintf("hooks(%s, %d entries)", h.id, h.Len())
}
