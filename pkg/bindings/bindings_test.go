package bindings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nanojinja/nanojinja/pkg/jinja"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `values:
  name: World
  count: 3
  ratio: 2.5
  flag: true
`)
	ctx, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := jinja.Context{
		"name":  jinja.StringValue("World"),
		"count": jinja.IntValue(3),
		"ratio": jinja.FloatValue(2.5),
		"flag":  jinja.IntValue(1),
	}
	if len(ctx) != len(want) {
		t.Fatalf("got %d bindings, want %d", len(ctx), len(want))
	}
	for name, val := range want {
		if ctx[name] != val {
			t.Errorf("%s = %#v, want %#v", name, ctx[name], val)
		}
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "values: {}\nextras: {}\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown top-level key")
	}
}

func TestLoadRejectsBadNames(t *testing.T) {
	path := writeFile(t, "values:\n  1bad: x\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid binding name")
	}
}

func TestLoadRejectsCompoundValues(t *testing.T) {
	path := writeFile(t, "values:\n  items: [1, 2]\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for list value")
	}
}

func TestParseSet(t *testing.T) {
	ctx, err := ParseSet([]string{"n=4", "pi=3.14", "who=World", "v=1.2.3"})
	if err != nil {
		t.Fatal(err)
	}
	if ctx["n"] != jinja.IntValue(4) {
		t.Errorf("n = %#v", ctx["n"])
	}
	if ctx["pi"] != jinja.FloatValue(3.14) {
		t.Errorf("pi = %#v", ctx["pi"])
	}
	if ctx["who"] != jinja.StringValue("World") {
		t.Errorf("who = %#v", ctx["who"])
	}
	if ctx["v"] != jinja.StringValue("1.2.3") {
		t.Errorf("v = %#v", ctx["v"])
	}
}

func TestParseSetErrors(t *testing.T) {
	if _, err := ParseSet([]string{"noequals"}); err == nil {
		t.Error("expected error for missing =")
	}
	if _, err := ParseSet([]string{"bad name=1"}); err == nil {
		t.Error("expected error for invalid name")
	}
}

func TestMerge(t *testing.T) {
	low := jinja.Context{"a": jinja.IntValue(1), "b": jinja.IntValue(1)}
	high := jinja.Context{"b": jinja.IntValue(2)}
	merged := Merge(low, high)
	if merged["a"] != jinja.IntValue(1) || merged["b"] != jinja.IntValue(2) {
		t.Errorf("merged = %#v", merged)
	}
	if low["b"] != jinja.IntValue(1) {
		t.Error("merge must not mutate its inputs")
	}
}
