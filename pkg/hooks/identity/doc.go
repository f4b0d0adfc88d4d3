// Package identity assigns stable numeric ids to object references.
//
// Go values have no portable identity hash, and func values cannot be
// compared at all. The hooks registry still needs to recognise "the same
// receiver" across separate registration and removal calls, so it keys bound
// methods and closures by an id minted from this package.
//
// # Refs
//
// A Ref captures the dynamic type and address of a reference value (pointer,
// map, chan, or unsafe.Pointer). Two Refs are equal exactly when they were
// built from the same object:
//
//	a := &Service{}
//	r1, _ := identity.RefOf(a)
//	r2, _ := identity.RefOf(a)
//	// r1 == r2
//
// Values that are not references (structs, strings, ints, nil) have no
// identity and RefOf reports false for them. Pointers to zero-size types
// (struct{}, [0]int) are rejected too: the runtime may hand every such
// allocation the same address.
//
// # Tables
//
// A Table interns Refs into sequential ids starting at 1:
//
//	t := identity.NewTable()
//	id := t.Intern(r1)          // mints on first sight
//	same, ok := t.Lookup(r1)    // never mints
//
// Lookup is the read-only path. Use it where checking for an object must not
// have the side effect of registering it.
//
// The Go garbage collector does not move heap objects, so an address stays
// valid for as long as the object is reachable. Callers that hold a Ref's
// object elsewhere (as the hooks registry does through its entries) get a
// stable id for the object's whole lifetime.
//
// A Table only grows. Ids are never reclaimed, so a process that interns a
// fresh object per registration (closures, short-lived receivers) holds one
// map entry per object ever seen.
package identity
