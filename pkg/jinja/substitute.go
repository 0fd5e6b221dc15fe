package jinja

import "strings"

// Substitute expands every {{ name }} occurrence in a flat text fragment
// against ctx. Text outside the delimiters passes through unchanged. An
// identifier with no binding, or a {{ with no closing }}, is a RenderError:
// substitution is strict, unlike if-tag truthiness which treats an absent
// name as false.
func Substitute(text string, ctx Context) (string, error) {
	open := strings.Index(text, "{{")
	if open == -1 {
		return text, nil
	}
	var b strings.Builder
	b.Grow(len(text))
	for open != -1 {
		b.WriteString(text[:open])
		rest := text[open+2:]
		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", renderErrorf("unterminated substitution tag {{ ... }}")
		}
		name := strings.TrimSpace(rest[:end])
		v, ok := ctx[name]
		if !ok {
			return "", renderErrorf("variable %q is not bound", name)
		}
		b.WriteString(v.String())
		text = rest[end+2:]
		open = strings.Index(text, "{{")
	}
	b.WriteString(text)
	return b.String(), nil
}
