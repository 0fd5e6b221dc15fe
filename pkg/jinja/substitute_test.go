package jinja

import (
	"errors"
	"testing"
)

func TestSubstituteWhitespaceInsideDelims(t *testing.T) {
	ctx := Context{"name": StringValue("World")}
	for _, src := range []string{"{{name}}", "{{ name }}", "{{  name\t}}"} {
		out, err := Substitute(src, ctx)
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		if out != "World" {
			t.Fatalf("%q: got %q", src, out)
		}
	}
}

func TestSubstitutePassThrough(t *testing.T) {
	out, err := Substitute("nothing here } { }} ", Context{})
	if err != nil {
		t.Fatalf("substitute error: %v", err)
	}
	if out != "nothing here } { }} " {
		t.Fatalf("got %q", out)
	}
}

func TestSubstituteMultiple(t *testing.T) {
	ctx := Context{"a": IntValue(1), "b": FloatValue(2.5), "c": StringValue("x")}
	out, err := Substitute("{{a}}-{{b}}-{{c}}-{{a}}", ctx)
	if err != nil {
		t.Fatalf("substitute error: %v", err)
	}
	if out != "1-2.5-x-1" {
		t.Fatalf("got %q", out)
	}
}

func TestSubstituteUnbound(t *testing.T) {
	_, err := Substitute("{{ ghost }}", Context{})
	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatalf("want RenderError, got %v", err)
	}
}

func TestSubstituteUnterminated(t *testing.T) {
	_, err := Substitute("a {{ b", Context{"b": IntValue(1)})
	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatalf("want RenderError, got %v", err)
	}
}
