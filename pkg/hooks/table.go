package hooks

import (
	"context"
	"slices"
)

// entry is one registered callback. removed is set when the entry leaves
// the registry so in-flight snapshots can skip it.
type entry struct {
	key          Key
	callable     Callable
	acceptedArgs int
	removed      bool
}

// level holds the entries of one priority in insertion order.
type level struct {
	entries []*entry
	index   map[Key]*entry
}

func newLevel() *level {
	return &level{index: make(map[Key]*entry)}
}

func (l *level) remove(key Key) bool {
	e, ok := l.index[key]
	if !ok {
		return false
	}
	e.removed = true
	delete(l.index, key)
	l.entries = slices.DeleteFunc(l.entries, func(x *entry) bool { return x == e })
	return true
}

// tagTable holds the priority levels of one tag. priorities lists every
// level exactly once and is ascending whenever the tag's sort flag is set.
type tagTable struct {
	levels     map[int]*level
	priorities []int
}

func newTagTable() *tagTable {
	return &tagTable{levels: make(map[int]*level)}
}

// upsert adds key at priority p or updates it in place.
func (t *tagTable) upsert(p int, key Key, c Callable, acceptedArgs int) {
	l, ok := t.levels[p]
	if !ok {
		l = newLevel()
		t.levels[p] = l
		t.priorities = append(t.priorities, p)
	}
	if e, ok := l.index[key]; ok {
		e.callable = c
		e.acceptedArgs = acceptedArgs
		return
	}
	e := &entry{key: key, callable: c, acceptedArgs: acceptedArgs}
	l.index[key] = e
	l.entries = append(l.entries, e)
}

// remove deletes key at priority p and drops the level if it empties.
func (t *tagTable) remove(p int, key Key) bool {
	l, ok := t.levels[p]
	if !ok || !l.remove(key) {
		return false
	}
	if len(l.entries) == 0 {
		t.dropLevel(p)
	}
	return true
}

// dropLevel removes level p and marks its entries removed.
func (t *tagTable) dropLevel(p int) {
	l, ok := t.levels[p]
	if !ok {
		return
	}
	for _, e := range l.entries {
		e.removed = true
	}
	delete(t.levels, p)
	t.priorities = slices.DeleteFunc(t.priorities, func(x int) bool { return x == p })
}

// clear marks every entry removed.
func (t *tagTable) clear() {
	for _, l := range t.levels {
		for _, e := range l.entries {
			e.removed = true
		}
	}
}

func (t *tagTable) empty() bool { return len(t.levels) == 0 }

func (t *tagTable) len() int {
	n := 0
	for _, l := range t.levels {
		n += len(l.entries)
	}
	return n
}

// lowest returns the lowest priority at which key is registered.
func (t *tagTable) lowest(key Key) (int, bool) {
	found := false
	best := 0
	for p, l := range t.levels {
		if _, ok := l.index[key]; !ok {
			continue
		}
		if !found || p < best {
			best = p
			found = true
		}
	}
	return best, found
}

// ascending returns a sorted copy of the priorities without touching the
// table's own ordering.
func (t *tagTable) ascending() []int {
	ps := slices.Clone(t.priorities)
	slices.Sort(ps)
	return ps
}

// cursor tracks the last priority visited by a walk.
type cursor struct {
	prev    int
	started bool
}

// next returns the first level after the cursor. priorities must be sorted.
func (t *tagTable) next(c cursor) (int, *level, bool) {
	for _, p := range t.priorities {
		if c.started && p <= c.prev {
			continue
		}
		return p, t.levels[p], true
	}
	return 0, nil, false
}

// invalidateLocked marks tag as needing a sort before the next walk.
func (h *Hooks) invalidateLocked(tag string) {
	h.sorted[tag] = false
}

// ensureSortedLocked sorts the tag's priorities if a mutation happened
// since the last walk. h.mu must be held for writing.
func (h *Hooks) ensureSortedLocked(ctx context.Context, tag string, t *tagTable) {
	if h.sorted[tag] {
		return
	}
	slices.Sort(t.priorities)
	h.sorted[tag] = true
	h.cfg.metrics.RecordSort(ctx, tag)
}

// hasEntriesLocked reports whether tag has at least one entry.
func (h *Hooks) hasEntriesLocked(tag string) bool {
	t, ok := h.tags[tag]
	return ok && !t.empty()
}
