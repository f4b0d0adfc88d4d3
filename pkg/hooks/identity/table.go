package identity

import (
	"reflect"
	"sync"
)

// Ref identifies a single referenced object by dynamic type and address.
// The zero Ref identifies nothing.
type Ref struct {
	Type reflect.Type
	Addr uintptr
}

// IsZero reports whether r is the zero Ref.
func (r Ref) IsZero() bool {
	return r.Type == nil && r.Addr == 0
}

// RefOf returns the Ref for v. It reports false when v is nil, a nil
// reference, a pointer to a zero-size type, or a value kind that carries no
// identity. Distinct zero-size objects may share one address, so pointers to
// them cannot tell the objects apart.
func RefOf(v any) (Ref, bool) {
	if v == nil {
		return Ref{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return Ref{}, false
		}
		if rv.Kind() == reflect.Pointer && rv.Type().Elem().Size() == 0 {
			return Ref{}, false
		}
		return Ref{Type: rv.Type(), Addr: rv.Pointer()}, true
	default:
		return Ref{}, false
	}
}

// Table interns Refs to sequential ids. Safe for concurrent use.
type Table struct {
	mu   sync.RWMutex
	ids  map[Ref]uint64
	next uint64
}

// NewTable creates an empty table. The first minted id is 1.
func NewTable() *Table {
	return &Table{
		ids: make(map[Ref]uint64),
	}
}

// Intern returns the id for r, minting a new one if r has not been seen.
// The zero Ref always maps to 0 and is never stored.
func (t *Table) Intern(r Ref) uint64 {
	if r.IsZero() {
		return 0
	}

	// Fast path: already interned
	t.mu.RLock()
	id, ok := t.ids[r]
	t.mu.RUnlock()
	if ok {
		return id
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Double-check after acquiring write lock
	if id, ok := t.ids[r]; ok {
		return id
	}

	t.next++
	t.ids[r] = t.next
	return t.next
}

// Lookup returns the id for r without minting one.
func (t *Table) Lookup(r Ref) (uint64, bool) {
	if r.IsZero() {
		return 0, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.ids[r]
	return id, ok
}

// Len returns the number of interned refs.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.ids)
}
