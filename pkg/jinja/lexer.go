package jinja

// The lexer scans template source and yields tokens for literal text and the
// {% ... %} control delimiters. Substitution tags ({{ ... }}) are not lexed:
// they stay inside text tokens and are resolved by the substitution engine at
// render time, which is what makes an unterminated {{ a render-time failure
// rather than a parse-time one.

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokText
	tokStmtStart // {%
	tokStmtEnd   // %}
	tokContent   // content inside a control tag
)

type token struct {
	kind tokenKind
	val  string
	pos  int // byte offset in source
}

type lexer struct {
	src string
	i   int
	n   int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, n: len(src)}
}

// nextOutside scans in text context and emits a text token up to the next
// {% delimiter, the delimiter token itself, or EOF.
func (l *lexer) nextOutside() token {
	if l.i >= l.n {
		return token{kind: tokEOF, pos: l.i}
	}
	start := l.i
	for l.i < l.n {
		if l.i+2 <= l.n && l.src[l.i] == '{' && l.src[l.i+1] == '%' {
			if l.i > start {
				return token{kind: tokText, val: l.src[start:l.i], pos: start}
			}
			l.i += 2
			return token{kind: tokStmtStart, pos: start}
		}
		l.i++
	}
	if start < l.n {
		return token{kind: tokText, val: l.src[start:l.n], pos: start}
	}
	return token{kind: tokEOF, pos: l.i}
}

// nextInside scans inside a control tag, returning content chunks or the
// closing %} token. EOF here means the tag is unterminated.
func (l *lexer) nextInside() token {
	if l.i >= l.n {
		return token{kind: tokEOF, pos: l.i}
	}
	start := l.i
	for l.i < l.n {
		if l.i+2 <= l.n && l.src[l.i] == '%' && l.src[l.i+1] == '}' {
			if l.i > start {
				return token{kind: tokContent, val: l.src[start:l.i], pos: start}
			}
			l.i += 2
			return token{kind: tokStmtEnd, pos: start}
		}
		l.i++
	}
	if start < l.n {
		return token{kind: tokContent, val: l.src[start:l.n], pos: start}
	}
	return token{kind: tokEOF, pos: l.i}
}
