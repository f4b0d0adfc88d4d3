// Package hooks provides a registry of prioritized callbacks attached to
// named tags, in the style of filter and action hooks.
//
// # Filters and Actions
//
// A filter threads a value through its callbacks; each callback receives the
// current value and returns the next one. An action runs its callbacks for
// side effects. Both share one registry: AddAction is AddFilter under
// another name.
//
//	h := hooks.New()
//	h.AddFilter("title", hooks.Named("upper", func(ctx context.Context, args ...any) (any, error) {
//	    return strings.ToUpper(args[0].(string)), nil
//	}))
//	title, err := h.ApplyFilters(ctx, "title", "hello") // "HELLO"
//
// # Ordering
//
// Callbacks run in ascending priority (default 10, negative allowed) and,
// within a priority, in registration order. Registering the same callable
// twice at one priority updates it in place.
//
// # Callable Identity
//
// Go functions cannot be compared, so each callback is wrapped in a Callable
// that carries its identity:
//
//	hooks.Named("trim", fn)             // by function name
//	hooks.Static("Post", "Save", fn)    // by "Post::Save"
//	hooks.Bound(post, "Save", fn)       // by receiver object and method
//	hooks.Closure(fn)                   // fresh identity per call
//
// Keep the Callable value to remove a closure later.
//
// # Observers
//
// Callbacks registered under AllTag ("all") run before every trigger and
// receive the tag name followed by the trigger's arguments.
//
// # Re-entrancy
//
// Callbacks may register, remove, and trigger hooks, including the tag
// currently running. CurrentFilter, CurrentFilters, and DoingFilter expose
// the stack of running tags.
//
// # Observability
//
// WithLogger, WithMetrics, and WithTracing attach slog logging and
// OpenTelemetry metrics and spans to every trigger. Dump writes the registry
// as YAML for debugging.
package hooks
