package jinja

import (
	"bytes"
	"fmt"
)

// Render walks a parsed document against ctx and returns the expanded text.
// The tree is never mutated; ctx is mutated only transiently, to bind and
// unbind loop variables, and is back in its original shape when Render
// returns, whether it succeeds or fails. Concurrent renders of the same
// document are safe as long as each uses its own Context.
func Render(doc *Document, ctx Context) (string, error) {
	if ctx == nil {
		ctx = Context{}
	}
	var buf bytes.Buffer
	if err := renderNodes(&buf, doc.Nodes, ctx); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderNodes(buf *bytes.Buffer, nodes []Node, ctx Context) error {
	for _, n := range nodes {
		switch t := n.(type) {
		case *TextNode:
			s, err := Substitute(t.Text, ctx)
			if err != nil {
				return err
			}
			buf.WriteString(s)
		case *ForNode:
			if _, ok := ctx[t.Var]; ok {
				return renderErrorf("loop variable %q already exists in this context", t.Var)
			}
			for i := t.Start; i < t.End; i++ {
				ctx[t.Var] = IntValue(i)
				err := renderNodes(buf, t.Body, ctx)
				// The variable is scoped to a single iteration; unbind it
				// before surfacing any error so it never leaks.
				delete(ctx, t.Var)
				if err != nil {
					return err
				}
			}
		case *IfNode:
			v, ok := ctx[t.Var]
			cond := ok && v.Truth()
			if t.Negate {
				cond = !cond
			}
			if cond {
				if err := renderNodes(buf, t.Body, ctx); err != nil {
					return err
				}
			}
		case *Document:
			if err := renderNodes(buf, t.Nodes, ctx); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unhandled node type: %T", n)
		}
	}
	return nil
}
