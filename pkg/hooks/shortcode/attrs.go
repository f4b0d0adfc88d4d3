package shortcode

import (
	"context"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"github.com/randalmurphal/taghooks/pkg/hooks"
)

var (
	// attrPattern matches one attribute: name="v", name='v', name=v, or a
	// bare positional value in any of the three quoting styles.
	attrPattern = regexp.MustCompile(
		`([\w-]+)\s*=\s*"([^"]*)"(?:\s|$)` +
			`|([\w-]+)\s*=\s*'([^']*)'(?:\s|$)` +
			`|([\w-]+)\s*=\s*([^\s'"]+)(?:\s|$)` +
			`|"([^"]*)"(?:\s|$)` +
			`|'([^']*)'(?:\s|$)` +
			`|(\S+)(?:\s|$)`)

	// spacePattern matches non-breaking and zero-width spaces.
	spacePattern = regexp.MustCompile(`[\x{00a0}\x{200b}]+`)
)

// Attrs holds the attributes of one shortcode. Positional values are
// stored under "0", "1", and so on.
type Attrs map[string]string

// ParseAttrs parses the attribute text of a shortcode. Names are
// lowercased.
//
// Example:
//
//	ParseAttrs(`id=abc color="dark red" autoplay`)
//	// Attrs{"id": "abc", "color": "dark red", "0": "autoplay"}
func ParseAttrs(text string) Attrs {
	attrs := Attrs{}
	text = spacePattern.ReplaceAllString(text, " ")

	positional := 0
	addPositional := func(v string) {
		attrs[strconv.Itoa(positional)] = v
		positional++
	}

	for _, m := range attrPattern.FindAllStringSubmatch(text, -1) {
		switch {
		case m[1] != "":
			attrs[strings.ToLower(m[1])] = m[2]
		case m[3] != "":
			attrs[strings.ToLower(m[3])] = m[4]
		case m[5] != "":
			attrs[strings.ToLower(m[5])] = m[6]
		case m[9] != "":
			addPositional(m[9])
		case strings.HasPrefix(m[0], `"`):
			addPositional(m[7])
		default:
			addPositional(m[8])
		}
	}
	return attrs
}

// Atts merges attrs over defaults. Names missing from defaults are dropped.
func Atts(defaults map[string]string, attrs Attrs) map[string]string {
	out := maps.Clone(defaults)
	if out == nil {
		out = map[string]string{}
	}
	for name := range out {
		if v, ok := attrs[name]; ok {
			out[name] = v
		}
	}
	return out
}

// HandlerFunc renders one shortcode. content is empty for self-closing tags.
type HandlerFunc func(ctx context.Context, attrs Attrs, content, tag string) (string, error)

// Func adapts a HandlerFunc to a hooks.Func.
//
// Example:
//
//	p.Add("youtube", hooks.Named("youtube", shortcode.Func(renderYouTube)))
func Func(fn HandlerFunc) hooks.Func {
	return func(ctx context.Context, args ...any) (any, error) {
		var (
			attrs        Attrs
			content, tag string
		)
		if len(args) > 0 {
			attrs, _ = args[0].(Attrs)
		}
		if len(args) > 1 {
			content, _ = args[1].(string)
		}
		if len(args) > 2 {
			tag, _ = args[2].(string)
		}
		if attrs == nil {
			attrs = Attrs{}
		}
		return fn(ctx, attrs, content, tag)
	}
}
