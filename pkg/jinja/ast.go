package jinja

// Node is any node in a parsed template tree. The set of implementations is
// closed: Document, TextNode, ForNode and IfNode. Rendering dispatches over
// them exhaustively.
type Node interface {
	node()
}

// Document is the root container produced by Parse. It renders as the
// ordered concatenation of its children and carries no text of its own.
type Document struct {
	Nodes []Node
}

func (*Document) node() {}

// TextNode is a leaf holding a verbatim slice of the template source found
// outside any control tag. Substitution tags inside it are expanded at
// render time.
type TextNode struct {
	Text string
	Pos  int
}

func (*TextNode) node() {}

// ForNode is a for loop over the half-open integer range [Start, End).
// The bound was resolved when the template was parsed; the body was parsed
// once and is reused on every iteration.
type ForNode struct {
	Var   string
	Start int64
	End   int64
	Body  []Node
}

func (*ForNode) node() {}

// IfNode is a conditional over a single variable, optionally negated.
// There is no else branch.
type IfNode struct {
	Negate bool
	Var    string
	Body   []Node
}

func (*IfNode) node() {}
