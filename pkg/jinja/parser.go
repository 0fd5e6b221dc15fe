package jinja

import (
	"strconv"
	"strings"
)

// Parse parses a template string into a Document tree. It recognizes text,
// for loops ({% for x in range(n) %} ... {% endfor %}) and conditionals
// ({% if [not] x %} ... {% endif %}); any other control tag is a parse
// error. Substitution tags are left untouched inside text leaves.
func Parse(src string) (*Document, error) {
	return ParseWithValues(src, nil)
}

// ParseWithValues is Parse with a binding set that range bounds may
// reference: `range(n)` with an identifier resolves against values at parse
// time and must name a bound integer, otherwise parsing fails.
func ParseWithValues(src string, values Context) (*Document, error) {
	p := &parser{l: newLexer(src), values: values}
	nodes, err := p.parseNodes("", 0)
	if err != nil {
		return nil, err
	}
	return &Document{Nodes: nodes}, nil
}

type parser struct {
	l      *lexer
	values Context
}

// parseNodes parses until the end tag named by `until` is consumed, or to
// EOF when `until` is empty. openPos is the offset of the block opener,
// used to report unterminated blocks.
func (p *parser) parseNodes(until string, openPos int) ([]Node, error) {
	var nodes []Node
	for {
		tok := p.l.nextOutside()
		switch tok.kind {
		case tokEOF:
			if until != "" {
				return nil, parseErrorf(openPos, "unterminated block, missing {%% %s %%}", until)
			}
			return nodes, nil
		case tokText:
			if tok.val != "" {
				nodes = append(nodes, &TextNode{Text: tok.val, Pos: tok.pos})
			}
		case tokStmtStart:
			stmt, err := p.readUntilStmtEnd(tok.pos)
			if err != nil {
				return nil, err
			}
			name, args := splitNameArgs(stmt)
			if name == until {
				if args != "" {
					return nil, parseErrorf(tok.pos, "%s takes no arguments", name)
				}
				return nodes, nil
			}
			switch name {
			case "for":
				n, err := p.parseFor(args, tok.pos)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, n)
			case "if":
				n, err := p.parseIf(args, tok.pos)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, n)
			case "endfor", "endif":
				return nil, parseErrorf(tok.pos, "unexpected {%% %s %%}", name)
			default:
				return nil, parseErrorf(tok.pos, "unrecognized tag %q", name)
			}
		default:
			return nil, parseErrorf(tok.pos, "unexpected token kind %v", tok.kind)
		}
	}
}

func (p *parser) readUntilStmtEnd(openPos int) (string, error) {
	var b strings.Builder
	for {
		t := p.l.nextInside()
		switch t.kind {
		case tokContent:
			b.WriteString(t.val)
		case tokStmtEnd:
			return strings.TrimSpace(b.String()), nil
		case tokEOF:
			return "", parseErrorf(openPos, "unterminated control tag {%% ... %%}")
		default:
			return "", parseErrorf(t.pos, "unexpected token kind %v inside tag", t.kind)
		}
	}
}

func (p *parser) parseFor(args string, pos int) (*ForNode, error) {
	parts := strings.SplitN(args, " in ", 2)
	if len(parts) != 2 {
		return nil, parseErrorf(pos, "invalid for tag, expected 'for name in range(bound)': %q", args)
	}
	target := strings.TrimSpace(parts[0])
	if !IsIdentifier(target) {
		return nil, parseErrorf(pos, "invalid loop variable name %q", target)
	}
	rangeExpr := strings.TrimSpace(parts[1])
	if !strings.HasPrefix(rangeExpr, "range(") || !strings.HasSuffix(rangeExpr, ")") {
		return nil, parseErrorf(pos, "invalid for tag, expected range(...): %q", rangeExpr)
	}
	bound := strings.TrimSpace(rangeExpr[len("range(") : len(rangeExpr)-1])
	end, err := p.resolveBound(bound, pos)
	if err != nil {
		return nil, err
	}
	body, err := p.parseNodes("endfor", pos)
	if err != nil {
		return nil, err
	}
	return &ForNode{Var: target, Start: 0, End: end, Body: body}, nil
}

// resolveBound resolves a range bound at parse time: either an integer
// literal, or an identifier already bound to an integer value. Bounds that
// would need render-time lookup are not supported.
func (p *parser) resolveBound(bound string, pos int) (int64, error) {
	if bound == "" {
		return 0, parseErrorf(pos, "empty range bound")
	}
	if n, err := strconv.ParseInt(bound, 10, 64); err == nil {
		return n, nil
	}
	if !IsIdentifier(bound) {
		return 0, parseErrorf(pos, "invalid range bound %q", bound)
	}
	v, ok := p.values[bound]
	if !ok {
		return 0, parseErrorf(pos, "range bound %q is not bound to a value", bound)
	}
	iv, ok := v.(IntValue)
	if !ok {
		return 0, parseErrorf(pos, "range bound %q is not an integer", bound)
	}
	return int64(iv), nil
}

func (p *parser) parseIf(args string, pos int) (*IfNode, error) {
	fields := strings.Fields(args)
	var negate bool
	var name string
	switch {
	case len(fields) == 1:
		name = fields[0]
	case len(fields) == 2 && fields[0] == "not":
		negate = true
		name = fields[1]
	default:
		return nil, parseErrorf(pos, "invalid if tag, expected 'if [not] name': %q", args)
	}
	// "not" is the negation keyword, never a condition variable: a bare
	// {% if not %} is missing its variable, not testing one named "not".
	if name == "not" {
		return nil, parseErrorf(pos, "missing condition variable after 'not'")
	}
	if !IsIdentifier(name) {
		return nil, parseErrorf(pos, "invalid condition variable name %q", name)
	}
	body, err := p.parseNodes("endif", pos)
	if err != nil {
		return nil, err
	}
	return &IfNode{Negate: negate, Var: name, Body: body}, nil
}

func splitNameArgs(stmt string) (name, args string) {
	s := strings.TrimSpace(stmt)
	if s == "" {
		return "", ""
	}
	i := 0
	for i < len(s) && !isSpace(s[i]) {
		i++
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// IsIdentifier reports whether s is a legal variable name: ASCII letters,
// digits and underscores, not starting with a digit.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
