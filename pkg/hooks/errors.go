package hooks

import "errors"

// Sentinel errors for registration.
var (
	// ErrEmptyTag indicates a registration call named no tag.
	ErrEmptyTag = errors.New("tag cannot be empty")

	// ErrUnidentifiable indicates a callable that cannot be keyed: a zero
	// Callable, an empty name, or a receiver without reference identity.
	ErrUnidentifiable = errors.New("callable has no identity")
)
