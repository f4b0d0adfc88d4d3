package shortcode

import "strings"

// match is one shortcode occurrence in content[start:end].
type match struct {
	name    string
	attrs   string
	content string
	start   int
	end     int
}

// replace rewrites content, calling fn for each registered shortcode.
// Escaped shortcodes are written back without their outer brackets.
func (p *Parser) replace(content string, fn func(match) (string, error)) (string, error) {
	if !strings.Contains(content, "[") {
		return content, nil
	}

	var b strings.Builder
	b.Grow(len(content))

	i := 0
	for i < len(content) {
		j := strings.IndexByte(content[i:], '[')
		if j < 0 {
			b.WriteString(content[i:])
			break
		}
		j += i
		b.WriteString(content[i:j])

		if inner, ok := p.matchAt(content, j+1); ok && inner.end < len(content) && content[inner.end] == ']' {
			b.WriteString(content[inner.start:inner.end])
			i = inner.end + 1
			continue
		}

		m, ok := p.matchAt(content, j)
		if !ok {
			b.WriteByte('[')
			i = j + 1
			continue
		}

		out, err := fn(m)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
		i = m.end
	}
	return b.String(), nil
}

// matchAt parses a registered shortcode opening at content[pos] == '['.
func (p *Parser) matchAt(content string, pos int) (match, bool) {
	if pos >= len(content) || content[pos] != '[' {
		return match{}, false
	}

	nameStart := pos + 1
	nameEnd := nameStart
	for nameEnd < len(content) && isNameByte(content[nameEnd]) {
		nameEnd++
	}
	if nameEnd == nameStart || nameEnd == len(content) {
		return match{}, false
	}

	name := content[nameStart:nameEnd]
	if !p.Exists(name) {
		return match{}, false
	}

	// The name must be followed by whitespace, "/]" or "]".
	switch c := content[nameEnd]; {
	case c == ']', c == '/', isSpace(c):
	default:
		return match{}, false
	}

	closeIdx := strings.IndexByte(content[nameEnd:], ']')
	if closeIdx < 0 {
		return match{}, false
	}
	closeIdx += nameEnd

	m := match{name: name, start: pos, end: closeIdx + 1}
	attrs := content[nameEnd:closeIdx]
	if strings.HasSuffix(attrs, "/") {
		m.attrs = strings.TrimSpace(strings.TrimSuffix(attrs, "/"))
		return m, true
	}
	m.attrs = strings.TrimSpace(attrs)

	closing := "[/" + name + "]"
	if k := strings.Index(content[m.end:], closing); k >= 0 {
		m.content = content[m.end : m.end+k]
		m.end += k + len(closing)
	}
	return m, true
}

func isNameByte(c byte) bool {
	switch c {
	case '<', '>', '&', '/', '[', ']', '=':
		return false
	}
	return c > ' '
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
