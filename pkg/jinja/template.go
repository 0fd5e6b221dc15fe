package jinja

import "fmt"

// Template is the public facade: it owns the source string, the tree parsed
// from it once at construction, and a long-lived binding context filled in
// by the Set methods. Rendering never mutates the tree, so one Template can
// be rendered many times, with bindings changed between calls.
type Template struct {
	source string
	root   *Document
	values Context
}

// New parses source immediately and returns the template, or a ParseError
// if the source is malformed. With New, range bounds must be integer
// literals; use NewWithValues when a bound names a variable.
func New(source string) (*Template, error) {
	return NewWithValues(source, nil)
}

// NewWithValues parses source with an initial binding set. Identifier range
// bounds (for x in range(n)) are resolved against these bindings at parse
// time. The bindings become the template's context, so they are also
// visible to substitution and if tags at render time.
func NewWithValues(source string, values Context) (*Template, error) {
	ctx := values.Clone()
	root, err := ParseWithValues(source, ctx)
	if err != nil {
		return nil, err
	}
	return &Template{source: source, root: root, values: ctx}, nil
}

// SetInt binds name to an integer, replacing any earlier binding.
func (t *Template) SetInt(name string, value int64) *Template {
	t.values[name] = IntValue(value)
	return t
}

// SetFloat binds name to a float, replacing any earlier binding.
func (t *Template) SetFloat(name string, value float64) *Template {
	t.values[name] = FloatValue(value)
	return t
}

// SetString binds name to a string, replacing any earlier binding.
func (t *Template) SetString(name string, value string) *Template {
	t.values[name] = StringValue(value)
	return t
}

// SetValue binds name to an already-constructed Value.
func (t *Template) SetValue(name string, value Value) *Template {
	t.values[name] = value
	return t
}

// Source returns the original template source.
func (t *Template) Source() string { return t.source }

// Render expands the template against its own bindings. The bindings the
// caller set are untouched afterwards; only loop variables come and go
// internally during the call.
func (t *Template) Render() (string, error) {
	return Render(t.root, t.values)
}

// RenderWith expands the template against an independent binding set,
// ignoring the template's own. Each concurrent render must bring its own
// Context.
func (t *Template) RenderWith(values Context) (string, error) {
	return Render(t.root, values)
}

// Vars reports the variable names the template expects to be bound.
func (t *Template) Vars() []string { return Vars(t.root) }

// Pretty returns a debug dump of the parsed tree.
func (t *Template) Pretty() string { return Pretty(t.root) }

// TemplateString is a template source that parses lazily, convenient as a
// YAML-embedded field type.
type TemplateString string

// Validate checks that the string parses. Identifier range bounds cannot be
// resolved without a binding set, so they fail validation too.
func (t TemplateString) Validate() error {
	if _, err := Parse(string(t)); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}
	return nil
}

// Render parses and renders in one step against ctx.
func (t TemplateString) Render(ctx Context) (string, error) {
	doc, err := ParseWithValues(string(t), ctx)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}
	return Render(doc, ctx)
}
