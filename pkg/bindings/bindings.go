// Package bindings loads template variable bindings from YAML files and
// from name=value pairs given on the command line.
package bindings

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nanojinja/nanojinja/pkg/jinja"
	v "github.com/nanojinja/nanojinja/pkg/validator"
)

// File is the on-disk format of a bindings file. Only scalar values are
// accepted, the template engine has no compound types to map them to.
type File struct {
	Values map[string]any `yaml:"values"`
}

func (f *File) Validate() error {
	return v.MapDict(f.Values, func(name string, _ any) error {
		return v.Identifier(name, "binding name")
	}, "values")
}

// Load reads a YAML bindings file and converts its values section into a
// render context. Unknown top-level keys are rejected.
func Load(path string) (jinja.Context, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bindings file: %w", err)
	}
	defer fh.Close()

	var file File
	dec := yaml.NewDecoder(fh)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding bindings file %s: %w", path, err)
	}
	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bindings file %s: %w", path, err)
	}
	return file.Context()
}

// Context converts the file's values into engine values.
func (f *File) Context() (jinja.Context, error) {
	ctx := jinja.Context{}
	for name, raw := range f.Values {
		val, err := jinja.FromGo(raw)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", name, err)
		}
		ctx[name] = val
	}
	return ctx, nil
}

// ParseSet converts name=value pairs into a render context. Values that
// parse as integers or floats become numeric bindings, anything else is
// kept as a string.
func ParseSet(args []string) (jinja.Context, error) {
	ctx := jinja.Context{}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid binding %q, expected name=value", arg)
		}
		if err := v.Identifier(name, "binding name"); err != nil {
			return nil, err
		}
		ctx[name] = parseScalar(value)
	}
	return ctx, nil
}

func parseScalar(value string) jinja.Value {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return jinja.IntValue(n)
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return jinja.FloatValue(f)
	}
	return jinja.StringValue(value)
}

// Merge layers contexts left to right, later layers win on conflicts.
func Merge(layers ...jinja.Context) jinja.Context {
	merged := jinja.Context{}
	for _, layer := range layers {
		for name, val := range layer {
			merged[name] = val
		}
	}
	return merged
}
