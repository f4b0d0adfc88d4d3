package hooks

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// Snapshot is a point-in-time copy of a registry for debugging.
type Snapshot struct {
	Instance string         `yaml:"instance"`
	Tags     []TagSnapshot  `yaml:"tags"`
	Fired    map[string]int `yaml:"fired,omitempty"`
	Stack    []string       `yaml:"stack,omitempty"`
}

// TagSnapshot describes one tag.
type TagSnapshot struct {
	Tag    string          `yaml:"tag"`
	Sorted bool            `yaml:"sorted"`
	Levels []LevelSnapshot `yaml:"levels"`
}

// LevelSnapshot describes one priority level.
type LevelSnapshot struct {
	Priority int             `yaml:"priority"`
	Entries  []EntrySnapshot `yaml:"entries"`
}

// EntrySnapshot describes one entry.
type EntrySnapshot struct {
	Key          string `yaml:"key"`
	Callable     string `yaml:"callable"`
	Kind         string `yaml:"kind"`
	AcceptedArgs int    `yaml:"accepted_args"`
	Tombstone    bool   `yaml:"tombstone,omitempty"`
}

// Snapshot copies the registry state. Levels are listed ascending even when
// the tag is awaiting a sort; the registry itself is not modified.
func (h *Hooks) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	tags := slices.Sorted(maps.Keys(h.tags))
	snap := Snapshot{
		Instance: h.id,
		Tags:     make([]TagSnapshot, 0, len(tags)),
		Fired:    maps.Clone(h.fired),
		Stack:    slices.Clone(h.stack),
	}

	for _, tag := range tags {
		t := h.tags[tag]
		ts := TagSnapshot{Tag: tag, Sorted: h.sorted[tag]}
		for _, p := range t.ascending() {
			ls := LevelSnapshot{Priority: p}
			for _, e := range t.levels[p].entries {
				ls.Entries = append(ls.Entries, EntrySnapshot{
					Key:          e.key.String(),
					Callable:     e.callable.String(),
					Kind:         e.callable.kind.String(),
					AcceptedArgs: e.acceptedArgs,
					Tombstone:    e.callable.fn == nil,
				})
			}
			ts.Levels = append(ts.Levels, ls)
		}
		snap.Tags = append(snap.Tags, ts)
	}
	return snap
}

// Dump writes the snapshot to w as YAML.
func (h *Hooks) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(h.Snapshot()); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}
