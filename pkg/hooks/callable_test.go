package hooks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type post struct {
	title string
}

// stateless has no fields, so pointers to distinct values may be equal.
type stateless struct{}

func noop(_ context.Context, _ ...any) (any, error) { return nil, nil }

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindInvalid, "invalid"},
		{KindNamed, "named"},
		{KindStatic, "static"},
		{KindBound, "bound"},
		{KindClosure, "closure"},
		{Kind(99), "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestCallable_Validate(t *testing.T) {
	p := &post{}
	var nilPost *post

	tests := []struct {
		name    string
		c       Callable
		wantErr bool
	}{
		{name: "named", c: Named("trim", noop)},
		{name: "static", c: Static("Post", "Save", noop)},
		{name: "bound pointer", c: Bound(p, "Save", noop)},
		{name: "bound map", c: Bound(map[string]int{}, "Get", noop)},
		{name: "closure", c: Closure(noop)},
		{name: "named tombstone", c: Named("gone", nil)},
		{name: "zero callable", c: Callable{}, wantErr: true},
		{name: "empty name", c: Named("", noop), wantErr: true},
		{name: "static missing method", c: Static("Post", "", noop), wantErr: true},
		{name: "static missing type", c: Static("", "Save", noop), wantErr: true},
		{name: "bound nil receiver", c: Bound(nil, "Save", noop), wantErr: true},
		{name: "bound nil pointer", c: Bound(nilPost, "Save", noop), wantErr: true},
		{name: "bound struct value", c: Bound(post{}, "Save", noop), wantErr: true},
		{name: "bound string", c: Bound("Post", "Save", noop), wantErr: true},
		{name: "bound zero-size pointer", c: Bound(&stateless{}, "Handle", noop), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnidentifiable)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCallable_String(t *testing.T) {
	assert.Equal(t, "trim", Named("trim", noop).String())
	assert.Equal(t, "Post::Save", Static("Post", "Save", noop).String())
	assert.Equal(t, "(*hooks.post).Save", Bound(&post{}, "Save", noop).String())
	assert.Equal(t, "(<nil>).Save", Bound(nil, "Save", noop).String())
	assert.Equal(t, "closure", Closure(noop).String())
	assert.Equal(t, "invalid", Callable{}.String())
}

func TestCallable_Accessors(t *testing.T) {
	c := Named("trim", noop)
	assert.Equal(t, KindNamed, c.Kind())
	assert.NotNil(t, c.Func())
	assert.False(t, c.IsTombstone())

	tomb := Named("trim", nil)
	assert.True(t, tomb.IsTombstone())
	assert.Nil(t, tomb.Func())
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "trim", Key{Name: "trim"}.String())
	assert.Equal(t, "#3", Key{Object: 3}.String())
	assert.Equal(t, "#3.Save", Key{Name: "Save", Object: 3}.String())
}

func TestKeyFor(t *testing.T) {
	h := New()

	t.Run("named keys by name", func(t *testing.T) {
		a, ok := h.keyFor(Named("trim", noop), true)
		require.True(t, ok)
		b, _ := h.keyFor(Named("trim", appendFn("x")), true)
		assert.Equal(t, Key{Name: "trim"}, a)
		assert.Equal(t, a, b)
	})

	t.Run("static matches named with separator", func(t *testing.T) {
		s, ok := h.keyFor(Static("Post", "Save", noop), true)
		require.True(t, ok)
		n, _ := h.keyFor(Named("Post::Save", noop), true)
		assert.Equal(t, n, s)
	})

	t.Run("bound keys by receiver and method", func(t *testing.T) {
		p1, p2 := &post{title: "a"}, &post{title: "a"}

		k1, ok := h.keyFor(Bound(p1, "Save", noop), true)
		require.True(t, ok)
		again, _ := h.keyFor(Bound(p1, "Save", noop), true)
		other, _ := h.keyFor(Bound(p1, "Load", noop), true)
		k2, _ := h.keyFor(Bound(p2, "Save", noop), true)

		assert.Equal(t, k1, again)
		assert.Equal(t, "Save", k1.Name)
		assert.NotZero(t, k1.Object)
		assert.Equal(t, k1.Object, other.Object)
		assert.NotEqual(t, k1, other)
		assert.NotEqual(t, k1, k2)
		assert.Equal(t, p1.title, p2.title)
	})

	t.Run("closures get fresh identities", func(t *testing.T) {
		c1 := Closure(noop)
		c2 := Closure(noop)
		copied := c1

		k1, ok := h.keyFor(c1, true)
		require.True(t, ok)
		k2, _ := h.keyFor(c2, true)
		kc, _ := h.keyFor(copied, true)

		assert.Empty(t, k1.Name)
		assert.NotEqual(t, k1, k2)
		assert.Equal(t, k1, kc)
	})

	t.Run("lookup does not mint", func(t *testing.T) {
		fresh := New()
		c := Bound(&post{}, "Save", noop)

		_, ok := fresh.keyFor(c, false)
		assert.False(t, ok)
		assert.Equal(t, 0, fresh.ids.Len())

		minted, ok := fresh.keyFor(c, true)
		require.True(t, ok)
		found, ok := fresh.keyFor(c, false)
		require.True(t, ok)
		assert.Equal(t, minted, found)
	})

	t.Run("malformed shapes yield no key", func(t *testing.T) {
		_, ok := h.keyFor(Callable{}, true)
		assert.False(t, ok)
		_, ok = h.keyFor(Bound(42, "m", noop), true)
		assert.False(t, ok)
	})
}

func TestWindow(t *testing.T) {
	args := []any{1, 2, 3}

	assert.Empty(t, window(args, 0))
	assert.Equal(t, []any{1, 2}, window(args, 2))
	assert.Equal(t, args, window(args, 5))
}
