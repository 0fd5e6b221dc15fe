package jinja

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

type Visitor interface {
	Visit(n Node) error
}

// Walk traverses the tree depth-first, visiting every node.
func Walk(v Visitor, n Node) error {
	if err := v.Visit(n); err != nil {
		return err
	}
	switch t := n.(type) {
	case *Document:
		for _, c := range t.Nodes {
			if err := Walk(v, c); err != nil {
				return err
			}
		}
	case *ForNode:
		for _, c := range t.Body {
			if err := Walk(v, c); err != nil {
				return err
			}
		}
	case *IfNode:
		for _, c := range t.Body {
			if err := Walk(v, c); err != nil {
				return err
			}
		}
	}
	return nil
}

type varCollector struct {
	referenced map[string]struct{}
	loopVars   map[string]struct{}
}

func (c *varCollector) Visit(n Node) error {
	switch t := n.(type) {
	case *TextNode:
		for _, name := range substitutionNames(t.Text) {
			c.referenced[name] = struct{}{}
		}
	case *IfNode:
		c.referenced[t.Var] = struct{}{}
	case *ForNode:
		c.loopVars[t.Var] = struct{}{}
	}
	return nil
}

// Vars reports the sorted variable names a template expects the caller to
// bind: every name referenced by a substitution tag or an if condition,
// minus names supplied by for loops. Range bounds do not appear, they were
// already resolved when the template was parsed.
func Vars(doc *Document) []string {
	c := &varCollector{
		referenced: map[string]struct{}{},
		loopVars:   map[string]struct{}{},
	}
	_ = Walk(c, doc) // varCollector.Visit never fails
	var out []string
	for name := range c.referenced {
		if _, ok := c.loopVars[name]; ok {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// substitutionNames extracts the identifiers of well-formed {{ ... }} tags.
// Malformed tags are skipped here; they surface as errors at render time.
func substitutionNames(text string) []string {
	var names []string
	for {
		open := strings.Index(text, "{{")
		if open == -1 {
			return names
		}
		rest := text[open+2:]
		close := strings.Index(rest, "}}")
		if close == -1 {
			return names
		}
		if name := strings.TrimSpace(rest[:close]); name != "" {
			names = append(names, name)
		}
		text = rest[close+2:]
	}
}

// Pretty returns a line-oriented string representation of the tree, for
// debugging. Nothing else depends on its exact format.
func Pretty(doc *Document) string {
	var buf bytes.Buffer
	ppNode(&buf, 0, doc)
	return buf.String()
}

func ppNode(buf *bytes.Buffer, indent int, n Node) {
	ind := func() {
		for i := 0; i < indent; i++ {
			buf.WriteByte(' ')
		}
	}
	switch t := n.(type) {
	case *Document:
		ind()
		buf.WriteString("Document\n")
		for _, c := range t.Nodes {
			ppNode(buf, indent+2, c)
		}
	case *TextNode:
		ind()
		fmt.Fprintf(buf, "Text(%q)\n", t.Text)
	case *ForNode:
		ind()
		fmt.Fprintf(buf, "For(%s in range(%d, %d))\n", t.Var, t.Start, t.End)
		for _, c := range t.Body {
			ppNode(buf, indent+2, c)
		}
	case *IfNode:
		ind()
		if t.Negate {
			fmt.Fprintf(buf, "If(not %s)\n", t.Var)
		} else {
			fmt.Fprintf(buf, "If(%s)\n", t.Var)
		}
		for _, c := range t.Body {
			ppNode(buf, indent+2, c)
		}
	}
}
