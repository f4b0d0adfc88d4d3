package hooks

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/taghooks/pkg/hooks/identity"
	"github.com/randalmurphal/taghooks/pkg/hooks/observability"
)

const (
	kindFilter = "filter"
	kindAction = "action"
)

// live is a copy of an entry's fields taken under the lock.
type live struct {
	key          Key
	fn           Func
	acceptedArgs int
}

// visitFunc runs one callback. A non-nil error stops the trigger.
type visitFunc func(ctx context.Context, e live) error

// ApplyFilters passes value through every callback registered under tag and
// returns the final value. Each callback receives the current value followed
// by extra, capped at its accepted-args count. A tag without callbacks
// returns value unchanged.
//
// On error, the value produced by the last successful callback is returned
// along with the callback's error.
func (h *Hooks) ApplyFilters(ctx context.Context, tag string, value any, extra ...any) (any, error) {
	args := make([]any, 0, len(extra)+1)
	args = append(args, value)
	args = append(args, extra...)

	current := value
	_, err := h.trigger(ctx, kindFilter, tag, args, func(ctx context.Context, e live) error {
		args[0] = current
		out, err := e.fn(ctx, slices.Clone(window(args, e.acceptedArgs))...)
		if err != nil {
			return err
		}
		observability.LogFilterStep(h.cfg.logger, tag, e.key.String(), current, out)
		current = out
		return nil
	})
	return current, err
}

// ApplyFiltersRefArray is ApplyFilters with the arguments supplied as one
// slice. Callbacks see a window of args itself, so writes to positional
// slots are visible to later callbacks and to the caller. args[0] holds the
// current value after every callback. Empty args behaves like [nil].
func (h *Hooks) ApplyFiltersRefArray(ctx context.Context, tag string, args []any) (any, error) {
	if len(args) == 0 {
		args = []any{nil}
	}

	_, err := h.trigger(ctx, kindFilter, tag, args, func(ctx context.Context, e live) error {
		before := args[0]
		out, err := e.fn(ctx, window(args, e.acceptedArgs)...)
		if err != nil {
			return err
		}
		observability.LogFilterStep(h.cfg.logger, tag, e.key.String(), before, out)
		args[0] = out
		return nil
	})
	return args[0], err
}

// DoAction runs every callback registered under tag for its side effects.
// The fire count for tag is incremented first, even when nothing is
// registered. It reports whether tag had callbacks.
//
// When the only argument is a one-element []any holding a pointer, map, or
// chan, callbacks receive that value directly and share it.
func (h *Hooks) DoAction(ctx context.Context, tag string, args ...any) (bool, error) {
	h.countFire(tag)

	callArgs := args
	if len(args) == 1 {
		if wrapped, ok := args[0].([]any); ok && len(wrapped) == 1 {
			if _, object := identity.RefOf(wrapped[0]); object {
				callArgs = []any{wrapped[0]}
			}
		}
	}

	return h.trigger(ctx, kindAction, tag, args, func(ctx context.Context, e live) error {
		_, err := e.fn(ctx, slices.Clone(window(callArgs, e.acceptedArgs))...)
		return err
	})
}

// DoActionRefArray is DoAction with the arguments supplied as one slice.
// Callbacks see a window of args itself. No unwrapping is applied.
func (h *Hooks) DoActionRefArray(ctx context.Context, tag string, args []any) (bool, error) {
	h.countFire(tag)

	return h.trigger(ctx, kindAction, tag, args, func(ctx context.Context, e live) error {
		_, err := e.fn(ctx, window(args, e.acceptedArgs)...)
		return err
	})
}

func (h *Hooks) countFire(tag string) {
	h.mu.Lock()
	h.fired[tag]++
	h.mu.Unlock()
}

// trigger runs the all-hook observers and then the tag's callbacks.
// args is what the observers receive after the tag name. It reports whether
// the tag had callbacks once the observers finished.
func (h *Hooks) trigger(ctx context.Context, kind, tag string, args []any, visit visitFunc) (found bool, err error) {
	// depth is the stack depth while this trigger runs. A trigger with
	// nothing to call pushes nothing and reports its caller's depth.
	h.mu.Lock()
	observe := h.hasEntriesLocked(AllTag)
	pushed := false
	if observe || h.hasEntriesLocked(tag) {
		h.pushLocked(tag)
		pushed = true
	}
	depth := len(h.stack)
	h.mu.Unlock()

	defer func() {
		if pushed {
			h.pop()
		}
	}()

	done := observability.TimedOperation()
	observability.LogTrigger(h.cfg.logger, kind, tag, depth)

	ctx, span := h.cfg.spans.StartTriggerSpan(ctx, h.id, kind, tag, depth)
	callbacks := 0
	defer func() {
		elapsed := done()
		h.cfg.spans.EndSpanWithError(span, err)
		h.cfg.metrics.RecordTrigger(ctx, kind, tag, elapsed, err)
		durationMs := float64(elapsed.Microseconds()) / 1000
		if err != nil {
			observability.LogTriggerError(h.cfg.logger, kind, tag, err, durationMs)
		} else {
			observability.LogTriggerComplete(h.cfg.logger, kind, tag, callbacks, durationMs)
		}
	}()

	if observe {
		allArgs := make([]any, 0, len(args)+1)
		allArgs = append(allArgs, tag)
		allArgs = append(allArgs, args...)

		n, err := h.walk(ctx, kind, AllTag, func(ctx context.Context, e live) error {
			_, err := e.fn(ctx, slices.Clone(allArgs)...)
			return err
		})
		callbacks += n
		if err != nil {
			return false, err
		}
		h.cfg.spans.AddSpanEvent(ctx, "observers.done", attribute.Int("hook.observers", n))
	}

	h.mu.Lock()
	found = h.hasEntriesLocked(tag)
	if found && !pushed {
		h.pushLocked(tag)
		pushed = true
	}
	h.mu.Unlock()

	if !found {
		return false, nil
	}

	n, err := h.walk(ctx, kind, tag, visit)
	callbacks += n
	return true, err
}

// walk visits tag's live entries in ascending priority, each level in
// insertion order. Each level is snapshotted when the walk reaches it, so
// entries added to that level are not visited in this pass while levels
// added above the cursor are. Entries removed before their turn and
// tombstones are skipped.
func (h *Hooks) walk(ctx context.Context, kind, tag string, visit visitFunc) (int, error) {
	var cur cursor
	calls := 0

	for {
		h.mu.Lock()
		t, ok := h.tags[tag]
		if !ok {
			h.mu.Unlock()
			return calls, nil
		}
		h.ensureSortedLocked(ctx, tag, t)
		p, l, ok := t.next(cur)
		if !ok {
			h.mu.Unlock()
			return calls, nil
		}
		batch := slices.Clone(l.entries)
		h.mu.Unlock()

		cur = cursor{prev: p, started: true}

		for _, e := range batch {
			h.mu.RLock()
			removed := e.removed
			v := live{key: e.key, fn: e.callable.fn, acceptedArgs: e.acceptedArgs}
			h.mu.RUnlock()

			if removed || v.fn == nil {
				continue
			}

			h.cfg.metrics.RecordCallback(ctx, kind, tag)
			calls++
			if err := visit(ctx, v); err != nil {
				return calls, err
			}
		}
	}
}
