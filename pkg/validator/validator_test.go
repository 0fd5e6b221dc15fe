package validator

import (
	"errors"
	"strings"
	"testing"
)

func TestAll(t *testing.T) {
	if err := All(nil, nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	want := errors.New("boom")
	if err := All(nil, want, errors.New("later")); err != want {
		t.Errorf("expected first error, got %v", err)
	}
}

func TestNotEmpty(t *testing.T) {
	if err := NotEmpty("x", "field"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := NotEmpty("", "field"); err == nil {
		t.Error("expected error for empty field")
	}
}

func TestMatchesAllowed(t *testing.T) {
	if err := MatchesAllowed("info", []string{"debug", "info"}, "level"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := MatchesAllowed("loud", []string{"debug", "info"}, "level"); err == nil {
		t.Error("expected error for disallowed value")
	}
}

func TestIdentifier(t *testing.T) {
	for _, name := range []string{"x", "_x", "abc_123"} {
		if err := Identifier(name, "name"); err != nil {
			t.Errorf("Identifier(%q): %v", name, err)
		}
	}
	for _, name := range []string{"", "1x", "a-b", "a b"} {
		if err := Identifier(name, "name"); err == nil {
			t.Errorf("Identifier(%q): expected error", name)
		}
	}
}

func TestMapDict(t *testing.T) {
	m := map[string]int{"a": 1, "b": -1}
	err := MapDict(m, func(k string, v int) error {
		if v < 0 {
			return errors.New("negative " + k)
		}
		return nil
	}, "entries")
	if err == nil {
		t.Fatal("expected error for negative entry")
	}
	if !strings.Contains(err.Error(), "entries[b]") {
		t.Errorf("error should name the entry: %v", err)
	}
}
