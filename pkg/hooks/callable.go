package hooks

import (
	"context"
	"fmt"
	"reflect"

	"github.com/randalmurphal/taghooks/pkg/hooks/identity"
)

// Func is the shape of every callback. A filter's first return value becomes
// the current value; an action's is discarded. A non-nil error stops the
// trigger and is returned to the caller unchanged.
type Func func(ctx context.Context, args ...any) (any, error)

// Kind identifies which constructor built a Callable.
type Kind int

const (
	// KindInvalid is the zero Callable.
	KindInvalid Kind = iota
	// KindNamed is a free function registered by name.
	KindNamed
	// KindStatic is a type-level method registered by "Type::method".
	KindStatic
	// KindBound is a method bound to a receiver object.
	KindBound
	// KindClosure is an anonymous function.
	KindClosure
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindStatic:
		return "static"
	case KindBound:
		return "bound"
	case KindClosure:
		return "closure"
	default:
		return "invalid"
	}
}

// Callable pairs a Func with the identity used to register and remove it.
//
// Go func values are not comparable, so identity is carried separately:
// a name for Named and Static, a receiver object for Bound, and a private
// token allocated by Closure. Copies of a Callable share its identity.
type Callable struct {
	kind     Kind
	name     string
	method   string
	receiver any
	fn       Func
}

// closureToken gives each Closure its own address. It must not be zero-size.
type closureToken struct {
	fn Func
}

// Named builds a callable identified by a global function name.
func Named(name string, fn Func) Callable {
	return Callable{kind: KindNamed, name: name, fn: fn}
}

// Static builds a callable identified by "typeName::method".
// It keys identically to Named(typeName + "::" + method). The separator is
// kept on purpose: plain concatenation would make Static("ab", "c") and
// Static("a", "bc") the same callback.
func Static(typeName, method string, fn Func) Callable {
	return Callable{kind: KindStatic, name: typeName, method: method, fn: fn}
}

// Bound builds a callable identified by a receiver object and a method name.
// The receiver must be a non-nil pointer, map, or chan. Two Bound callables
// with the same receiver and method are the same callback. Pointers to
// zero-size types are rejected with ErrUnidentifiable, since distinct
// zero-size objects may share an address; give such a type a field or
// register it with Named.
func Bound(receiver any, method string, fn Func) Callable {
	return Callable{kind: KindBound, receiver: receiver, method: method, fn: fn}
}

// Closure builds a callable with a fresh identity. Keep the returned value
// to remove or query the callback later.
func Closure(fn Func) Callable {
	return Callable{kind: KindClosure, receiver: &closureToken{fn: fn}, fn: fn}
}

// Kind reports which constructor built c.
func (c Callable) Kind() Kind { return c.kind }

// Func returns the callback, or nil for a tombstone.
func (c Callable) Func() Func { return c.fn }

// IsTombstone reports whether c has no callback. Tombstones register and
// remove like any other callable but are never invoked.
func (c Callable) IsTombstone() bool { return c.fn == nil }

// Validate reports whether c has a shape that can be keyed.
func (c Callable) Validate() error {
	switch c.kind {
	case KindNamed:
		if c.name == "" {
			return fmt.Errorf("%w: empty function name", ErrUnidentifiable)
		}
	case KindStatic:
		if c.name == "" || c.method == "" {
			return fmt.Errorf("%w: static callable needs type and method", ErrUnidentifiable)
		}
	case KindBound, KindClosure:
		if _, ok := identity.RefOf(c.receiver); !ok {
			return fmt.Errorf("%w: receiver %T is not a reference", ErrUnidentifiable, c.receiver)
		}
	default:
		return fmt.Errorf("%w: zero callable", ErrUnidentifiable)
	}
	return nil
}

// String describes c for logs and dumps.
func (c Callable) String() string {
	switch c.kind {
	case KindNamed:
		return c.name
	case KindStatic:
		return c.name + "::" + c.method
	case KindBound:
		if c.receiver == nil {
			return "(<nil>)." + c.method
		}
		return "(" + reflect.TypeOf(c.receiver).String() + ")." + c.method
	case KindClosure:
		return "closure"
	default:
		return "invalid"
	}
}

// Key is the comparable identity of a registered callable.
// Named and static callables have Object == 0.
type Key struct {
	Name   string
	Object uint64
}

// String renders the key as "name", "#id", or "#id.name".
func (k Key) String() string {
	switch {
	case k.Object == 0:
		return k.Name
	case k.Name == "":
		return fmt.Sprintf("#%d", k.Object)
	default:
		return fmt.Sprintf("#%d.%s", k.Object, k.Name)
	}
}

// keyFor computes the key of c. With mint false, an object that has never
// been registered yields no key and no id is allocated.
func (h *Hooks) keyFor(c Callable, mint bool) (Key, bool) {
	if c.Validate() != nil {
		return Key{}, false
	}

	switch c.kind {
	case KindNamed:
		return Key{Name: c.name}, true
	case KindStatic:
		return Key{Name: c.name + "::" + c.method}, true
	}

	ref, _ := identity.RefOf(c.receiver)
	var id uint64
	if mint {
		id = h.ids.Intern(ref)
	} else {
		var ok bool
		if id, ok = h.ids.Lookup(ref); !ok {
			return Key{}, false
		}
	}

	if c.kind == KindClosure {
		return Key{Object: id}, true
	}
	return Key{Name: c.method, Object: id}, true
}

// window returns the first n elements of args, sharing its backing array.
func window(args []any, n int) []any {
	if n < len(args) {
		return args[:n]
	}
	return args
}
