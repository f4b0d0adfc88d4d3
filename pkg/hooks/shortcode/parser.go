package shortcode

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/randalmurphal/taghooks/pkg/hooks"
)

// invalidName matches characters a shortcode name may not contain.
var invalidName = regexp.MustCompile(`[<>&/\[\]\x00-\x20=]`)

// Parser expands bracketed shortcodes using handlers stored in a hooks
// registry. Each shortcode is a filter tag named prefix+name holding
// exactly one entry.
//
// Parser is safe for concurrent use.
type Parser struct {
	hooks  *hooks.Hooks
	prefix string

	mu    sync.Mutex
	names map[string]struct{}
}

// New creates a Parser that stores handlers in h.
//
// Example:
//
//	p := shortcode.New(h)
//	p.Add("year", hooks.Named("year", shortcode.Func(renderYear)))
//	out, err := p.Run(ctx, "(c) [year]")
func New(h *hooks.Hooks, opts ...Option) *Parser {
	p := &Parser{
		hooks:  h,
		prefix: DefaultTagPrefix,
		names:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Add registers c as the handler for name, replacing any previous handler.
// The handler receives (Attrs, content, name). It returns false when name
// is empty or contains whitespace or any of <>&/[]=.
func (p *Parser) Add(name string, c hooks.Callable) bool {
	if name == "" || invalidName.MatchString(name) {
		return false
	}

	tag := p.prefix + name
	p.hooks.RemoveAllFilters(tag)
	if !p.hooks.AddFilter(tag, c, hooks.WithAcceptedArgs(3)) {
		return false
	}

	p.mu.Lock()
	p.names[name] = struct{}{}
	p.mu.Unlock()
	return true
}

// Remove unregisters the handler for name and reports whether one existed.
func (p *Parser) Remove(name string) bool {
	existed := p.Exists(name)
	p.hooks.RemoveAllFilters(p.prefix + name)

	p.mu.Lock()
	delete(p.names, name)
	p.mu.Unlock()
	return existed
}

// RemoveAll unregisters every handler added through p.
func (p *Parser) RemoveAll() {
	p.mu.Lock()
	names := p.names
	p.names = make(map[string]struct{})
	p.mu.Unlock()

	for name := range names {
		p.hooks.RemoveAllFilters(p.prefix + name)
	}
}

// Exists reports whether name has a handler.
func (p *Parser) Exists(name string) bool {
	return name != "" && p.hooks.HasFilter(p.prefix+name)
}

// Tags returns the registered shortcode names, sorted.
func (p *Parser) Tags() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, 0, len(p.names))
	for name := range p.names {
		if p.hooks.HasFilter(p.prefix + name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Run replaces every registered shortcode in content with its handler's
// output. Unregistered shortcodes are left as they are, and [[name]] renders
// as the literal [name]. Enclosed content is passed to the handler without
// being expanded.
func (p *Parser) Run(ctx context.Context, content string) (string, error) {
	return p.replace(content, func(m match) (string, error) {
		return p.render(ctx, m)
	})
}

// Strip removes every registered shortcode from content. Escaped shortcodes
// are kept as their literal text.
func (p *Parser) Strip(content string) string {
	out, _ := p.replace(content, func(match) (string, error) {
		return "", nil
	})
	return out
}

func (p *Parser) render(ctx context.Context, m match) (string, error) {
	entries := p.hooks.Entries(p.prefix + m.name)
	for _, e := range entries {
		if e.Callable.IsTombstone() {
			continue
		}
		out, err := e.Call(ctx, []any{ParseAttrs(m.attrs), m.content, m.name})
		if err != nil {
			return "", fmt.Errorf("shortcode %s: %w", m.name, err)
		}
		switch v := out.(type) {
		case nil:
			return "", nil
		case string:
			return v, nil
		default:
			return fmt.Sprint(v), nil
		}
	}
	return "", nil
}
