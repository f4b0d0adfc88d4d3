package hooks

import "slices"

// pushLocked enters tag and returns the new depth. h.mu must be held.
func (h *Hooks) pushLocked(tag string) int {
	h.stack = append(h.stack, tag)
	return len(h.stack)
}

// pop leaves the innermost trigger.
func (h *Hooks) pop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := len(h.stack); n > 0 {
		h.stack = h.stack[:n-1]
	}
}

// CurrentFilter returns the innermost tag being triggered, or "" when no
// trigger is running.
func (h *Hooks) CurrentFilter() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if n := len(h.stack); n > 0 {
		return h.stack[n-1]
	}
	return ""
}

// CurrentFilters returns a copy of the invocation stack, innermost last.
func (h *Hooks) CurrentFilters() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.stack)
}

// DoingFilter reports whether tag is anywhere on the invocation stack.
func (h *Hooks) DoingFilter(tag string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Contains(h.stack, tag)
}

// DoingAction is DoingFilter for action tags.
func (h *Hooks) DoingAction(tag string) bool {
	return h.DoingFilter(tag)
}
