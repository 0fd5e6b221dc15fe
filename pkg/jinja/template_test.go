package jinja

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestTemplateSetAndRender(t *testing.T) {
	tpl, err := New("Hello {{name}}, you have {{count}} messages ({{ratio}} read).")
	if err != nil {
		t.Fatalf("new error: %v", err)
	}
	out, err := tpl.
		SetString("name", "World").
		SetInt("count", 3).
		SetFloat("ratio", 0.5).
		Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if out != "Hello World, you have 3 messages (0.5 read)." {
		t.Fatalf("got %q", out)
	}
}

func TestTemplateRebindingAllowed(t *testing.T) {
	tpl, err := New("{{x}}")
	if err != nil {
		t.Fatalf("new error: %v", err)
	}
	tpl.SetInt("x", 1)
	tpl.SetString("x", "two")
	out, err := tpl.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if out != "two" {
		t.Fatalf("top-level rebinding must replace, got %q", out)
	}
}

func TestTemplateParseFailsAtConstruction(t *testing.T) {
	_, err := New("{% for i in range(2) %}no end tag")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want ParseError, got %v", err)
	}
}

func TestTemplateIdentifierRangeBound(t *testing.T) {
	tpl, err := NewWithValues("{% for i in range(n) %}{{i}}{% endfor %}", Context{"n": IntValue(3)})
	if err != nil {
		t.Fatalf("new error: %v", err)
	}
	out, err := tpl.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if out != "012" {
		t.Fatalf("got %q", out)
	}

	// Without the binding the bound cannot be resolved at parse time.
	if _, err := New("{% for i in range(n) %}{% endfor %}"); err == nil {
		t.Fatalf("expected ParseError for unresolvable bound")
	}
}

func TestTemplateRenderWithIndependentContexts(t *testing.T) {
	tpl, err := New("{{who}}")
	if err != nil {
		t.Fatalf("new error: %v", err)
	}
	tpl.SetString("who", "default")

	a, err := tpl.RenderWith(Context{"who": StringValue("a")})
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	b, err := tpl.RenderWith(Context{"who": StringValue("b")})
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if a != "a" || b != "b" {
		t.Fatalf("got %q / %q", a, b)
	}
	out, err := tpl.Render()
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if out != "default" {
		t.Fatalf("template's own bindings disturbed: %q", out)
	}
}

func TestTemplateVars(t *testing.T) {
	src := "{{greeting}} {% if not quiet %}{% for i in range(2) %}{{i}}{{suffix}}{% endfor %}{% endif %}"
	tpl, err := New(src)
	if err != nil {
		t.Fatalf("new error: %v", err)
	}
	want := []string{"greeting", "quiet", "suffix"}
	if got := tpl.Vars(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTemplatePretty(t *testing.T) {
	tpl, err := New("A{% for i in range(3) %}{% if not done %}x{% endif %}{% endfor %}")
	if err != nil {
		t.Fatalf("new error: %v", err)
	}
	s := tpl.Pretty()
	for _, frag := range []string{"Document", "Text(\"A\")", "For(i in range(0, 3))", "If(not done)"} {
		if !strings.Contains(s, frag) {
			t.Fatalf("dump missing %q:\n%s", frag, s)
		}
	}
}

func TestTemplateStringValidateAndRender(t *testing.T) {
	good := TemplateString("{{x}}{% if x %}!{% endif %}")
	if err := good.Validate(); err != nil {
		t.Fatalf("validate error: %v", err)
	}
	out, err := good.Render(Context{"x": IntValue(7)})
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if out != "7!" {
		t.Fatalf("got %q", out)
	}

	bad := TemplateString("{% if x %}")
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected validate error")
	}
}
