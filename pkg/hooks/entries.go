package hooks

import (
	"context"
	"slices"
)

// Entry is a read-only view of one registration.
type Entry struct {
	Key          Key
	Callable     Callable
	Priority     int
	AcceptedArgs int
}

// Call invokes the entry's callback with args capped at AcceptedArgs.
// Tombstones return (nil, nil).
func (e Entry) Call(ctx context.Context, args []any) (any, error) {
	if e.Callable.fn == nil {
		return nil, nil
	}
	return e.Callable.fn(ctx, slices.Clone(window(args, e.AcceptedArgs))...)
}

// Entries returns the entries of tag in dispatch order. Tombstones are
// included. The registry's sort state is left untouched.
func (h *Hooks) Entries(tag string) []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	t, ok := h.tags[tag]
	if !ok {
		return nil
	}

	out := make([]Entry, 0, t.len())
	for _, p := range t.ascending() {
		for _, e := range t.levels[p].entries {
			out = append(out, Entry{
				Key:          e.key,
				Callable:     e.callable,
				Priority:     p,
				AcceptedArgs: e.acceptedArgs,
			})
		}
	}
	return out
}

// Tags returns every tag with at least one entry, sorted.
func (h *Hooks) Tags() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	tags := make([]string, 0, len(h.tags))
	for tag := range h.tags {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Len returns the total number of entries across all tags.
func (h *Hooks) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, t := range h.tags {
		n += t.len()
	}
	return n
}
