// Package staticfield reads and renders the value of a static field named by
// a dotted path such as java.util.regex.Pattern.CASE_INSENSITIVE.
package staticfield

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"javatools/internal/resolve"
)

// ErrMalformedPath is returned (wrapped) for a path without a class part.
var ErrMalformedPath = errors.New("malformed field path")

// Value is a static field together with its value.
type Value struct {
	Class string
	Field string
	Type  string
	Value any
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Read splits path on its last '.', loads the class part (reading trailing
// segments as nested classes if needed, see resolve.LoadNested) and reads
// the named static field.
func Read(r *resolve.Resolver, path string) (*Value, error) {
	i := strings.LastIndexByte(path, '.')
	if i <= 0 || i == len(path)-1 {
		return nil, errors.Wrapf(ErrMalformedPath, "%q", path)
	}
	cls, err := r.LoadNested(path[:i])
	if err != nil {
		return nil, err
	}
	f, err := cls.DeclaredField(path[i+1:])
	if err != nil {
		return nil, err
	}
	v, err := f.StaticValue()
	if err != nil {
		return nil, err
	}
	return &Value{Class: cls.Name(), Field: f.Name, Type: f.GenericType, Value: v}, nil
}

// Render dumps v as a deep, multi-line structure.
func Render(v *Value) string {
	return strings.TrimRight(dumper.Sdump(*v), "\n")
}

// Dump reads and renders the field at path.
func Dump(r *resolve.Resolver, path string) (string, error) {
	v, err := Read(r, path)
	if err != nil {
		return "", err
	}
	return Render(v), nil
}
