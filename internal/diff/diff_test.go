package diff

import (
	"strings"
	"testing"

	"javatools/internal/inspect"
)

func report(name string, methods ...string) *inspect.ClassReport {
	r := &inspect.ClassReport{
		Name:         name,
		Type:         "class",
		Interfaces:   []string{},
		Fields:       []inspect.FieldInfo{},
		Constructors: []inspect.ConstructorInfo{},
	}
	for _, m := range methods {
		r.Methods = append(r.Methods, inspect.MethodInfo{
			Name: m, Access: "public", Level: []string{}, DeclareIn: name, Args: []string{}, Return: "void", DeclareHere: true,
		})
	}
	return r
}

func TestReportsShowsChangedLines(t *testing.T) {
	body, err := Reports(report("a.A", "run", "stop"), report("b.B", "run", "pause"), Options{})
	if err != nil {
		t.Fatalf("Reports: %v", err)
	}
	for _, want := range []string{"--- a.A\n", "+++ b.B\n", `-      "name": "stop",`, `+      "name": "pause",`, `-  "name": "a.A",`} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in:\n%s", want, body)
		}
	}
}

func TestReportsIdentical(t *testing.T) {
	body, err := Reports(report("a.A", "run"), report("a.A", "run"), Options{})
	if err != nil {
		t.Fatalf("Reports: %v", err)
	}
	if body != "" {
		t.Fatalf("expected empty diff, got:\n%s", body)
	}
}

func TestUnifiedOversize(t *testing.T) {
	body, over := Unified("x", "y", []byte("aaaa\n"), []byte("bbbb\n"), Options{MaxBytes: 4})
	if !over || !strings.Contains(body, "oversize") {
		t.Fatalf("expected oversize placeholder, got %q (%v)", body, over)
	}
}
