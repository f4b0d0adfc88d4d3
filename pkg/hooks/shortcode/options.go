package shortcode

// DefaultTagPrefix namespaces shortcode handlers within a hooks registry.
const DefaultTagPrefix = "shortcode:"

// Option configures a Parser.
type Option func(*Parser)

// WithTagPrefix sets the prefix prepended to shortcode names to form hook
// tags. An empty prefix is ignored.
func WithTagPrefix(prefix string) Option {
	return func(p *Parser) {
		if prefix != "" {
			p.prefix = prefix
		}
	}
}
