// Package shortcode expands bracketed text tags using handlers registered
// in a hooks registry.
//
// Supported forms:
//
//	[name]                       self-closing
//	[name a=1 b="two" three]     with attributes
//	[name /]                     explicit self-closing
//	[name]content[/name]         enclosing
//	[[name]]                     escaped, renders as [name]
//
// Handlers receive the parsed Attrs, the enclosed content, and the name.
// Unregistered names pass through unchanged.
package shortcode
