package validate

import (
	"strings"
	"testing"

	"javatools/internal/inspect"
)

func validReport() *inspect.ClassReport {
	parent := "java.lang.Object"
	return &inspect.ClassReport{
		Name:       "com.acme.Widget",
		Type:       "class",
		Parent:     &parent,
		Interfaces: []string{"java.io.Serializable"},
		Fields: []inspect.FieldInfo{
			{Name: "size", Type: "int", Access: "private", Level: []string{}, DeclareIn: "com.acme.Widget", DeclareHere: true},
		},
		Methods: []inspect.MethodInfo{
			{Name: "size", Access: "public", Level: []string{"final", "static"}, DeclareIn: "com.acme.Widget", Args: []string{}, Return: "int", DeclareHere: true},
			{Name: "hashCode", Access: "public", Level: []string{}, DeclareIn: "java.lang.Object", Args: []string{}, Return: "int"},
		},
		Constructors: []inspect.ConstructorInfo{
			{Name: "constructor", Access: "public", DeclareIn: "com.acme.Widget", Args: []string{"int"}, DeclareHere: true},
		},
	}
}

func TestReportValid(t *testing.T) {
	if err := Report(validReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReportAggregatesIssues(t *testing.T) {
	r := validReport()
	r.Type = "record"
	r.Interfaces = append(r.Interfaces, "java.io.Serializable")
	r.Fields[0].Access = "friendly"
	r.Methods[0].Level = []string{"static", "final"}
	r.Methods[1].DeclareHere = true
	r.Methods = append(r.Methods, r.Methods[0])
	r.Constructors[0].Name = "<init>"

	err := Report(r)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{
		"report.type",
		"duplicate interface",
		`unknown access "friendly"`,
		"level must be an ordered subset",
		"declareHere=true inconsistent",
		"duplicate signature",
		`name must be "constructor"`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("missing %q in:\n%s", want, msg)
		}
	}
	if n := strings.Count(msg, "\n") + 1; n < 7 {
		t.Errorf("expected at least 7 issues, got %d:\n%s", n, msg)
	}
}

func TestReportNil(t *testing.T) {
	if err := Report(nil); err == nil {
		t.Fatalf("expected error for nil report")
	}
}

func TestIsOrderedSubset(t *testing.T) {
	allowed := []string{"abstract", "final", "static"}
	cases := []struct {
		got  []string
		want bool
	}{
		{nil, true},
		{[]string{"abstract", "static"}, true},
		{[]string{"final", "final"}, false},
		{[]string{"static", "abstract"}, false},
		{[]string{"native"}, false},
	}
	for _, c := range cases {
		if got := isOrderedSubset(c.got, allowed); got != c.want {
			t.Fatalf("isOrderedSubset(%v) = %v, want %v", c.got, got, c.want)
		}
	}
}
