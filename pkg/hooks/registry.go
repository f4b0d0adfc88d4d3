package hooks

import (
	"github.com/randalmurphal/taghooks/pkg/hooks/observability"
)

// validate checks a registration request before it touches the registry.
func validate(tag string, c Callable) error {
	if tag == "" {
		return ErrEmptyTag
	}
	return c.Validate()
}

// AddFilter registers c under tag. Registering the same callable again at
// the same priority updates its accepted-args count in place and keeps its
// position. It returns false when the tag is empty or c cannot be keyed.
//
// Example:
//
//	h.AddFilter("the_title", hooks.Named("trim", trim), hooks.WithPriority(5))
func (h *Hooks) AddFilter(tag string, c Callable, opts ...EntryOption) bool {
	if err := validate(tag, c); err != nil {
		observability.LogRejected(h.cfg.logger, "add", tag, c.String(), err)
		return false
	}
	ec := h.entryConfig(opts)

	h.mu.Lock()
	key, _ := h.keyFor(c, true)
	t, ok := h.tags[tag]
	if !ok {
		t = newTagTable()
		h.tags[tag] = t
	}
	t.upsert(ec.priority, key, c, ec.acceptedArgs)
	h.invalidateLocked(tag)
	h.mu.Unlock()

	observability.LogRegister(h.cfg.logger, tag, key.String(), ec.priority, ec.acceptedArgs)
	return true
}

// AddAction is AddFilter for action tags.
func (h *Hooks) AddAction(tag string, c Callable, opts ...EntryOption) bool {
	return h.AddFilter(tag, c, opts...)
}

// RemoveFilter removes c from tag at the given priority (default priority
// when WithPriority is omitted). It reports whether an entry was removed.
func (h *Hooks) RemoveFilter(tag string, c Callable, opts ...EntryOption) bool {
	ec := h.entryConfig(opts)

	h.mu.Lock()
	key, ok := h.keyFor(c, false)
	removed := false
	if t, exists := h.tags[tag]; ok && exists {
		removed = t.remove(ec.priority, key)
		switch {
		case t.empty():
			delete(h.tags, tag)
			delete(h.sorted, tag)
		case removed:
			h.invalidateLocked(tag)
		}
	}
	h.mu.Unlock()

	observability.LogRemove(h.cfg.logger, tag, key.String(), ec.priority, removed)
	return removed
}

// RemoveAction is RemoveFilter for action tags.
func (h *Hooks) RemoveAction(tag string, c Callable, opts ...EntryOption) bool {
	return h.RemoveFilter(tag, c, opts...)
}

// RemoveAllFilters removes every entry registered under tag.
// It always returns true.
func (h *Hooks) RemoveAllFilters(tag string) bool {
	h.mu.Lock()
	if t, ok := h.tags[tag]; ok {
		t.clear()
		delete(h.tags, tag)
	}
	delete(h.sorted, tag)
	h.mu.Unlock()

	observability.LogRemove(h.cfg.logger, tag, "*", 0, true)
	return true
}

// RemoveAllFiltersAt removes the level at priority p from tag, leaving the
// other levels in place. It always returns true.
func (h *Hooks) RemoveAllFiltersAt(tag string, p int) bool {
	h.mu.Lock()
	if t, ok := h.tags[tag]; ok {
		t.dropLevel(p)
		if t.empty() {
			delete(h.tags, tag)
		}
	}
	delete(h.sorted, tag)
	h.mu.Unlock()

	observability.LogRemove(h.cfg.logger, tag, "*", p, true)
	return true
}

// RemoveAllActions is RemoveAllFilters for action tags.
func (h *Hooks) RemoveAllActions(tag string) bool {
	return h.RemoveAllFilters(tag)
}

// RemoveAllActionsAt is RemoveAllFiltersAt for action tags.
func (h *Hooks) RemoveAllActionsAt(tag string, p int) bool {
	return h.RemoveAllFiltersAt(tag, p)
}

// HasFilter reports whether tag has any registered entries.
func (h *Hooks) HasFilter(tag string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.hasEntriesLocked(tag)
}

// HasFilterCallback returns the lowest priority at which c is registered
// under tag. Priority 0 is a valid result; use ok to detect absence.
// Querying never allocates an identity for an unseen object.
func (h *Hooks) HasFilterCallback(tag string, c Callable) (priority int, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	key, keyed := h.keyFor(c, false)
	t, exists := h.tags[tag]
	if !keyed || !exists {
		return 0, false
	}
	return t.lowest(key)
}

// HasAction is HasFilter for action tags.
func (h *Hooks) HasAction(tag string) bool {
	return h.HasFilter(tag)
}

// HasActionCallback is HasFilterCallback for action tags.
func (h *Hooks) HasActionCallback(tag string, c Callable) (int, bool) {
	return h.HasFilterCallback(tag, c)
}

// DidAction returns how many times DoAction or DoActionRefArray has been
// called for tag, including calls that found no callbacks.
func (h *Hooks) DidAction(tag string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.fired[tag]
}
