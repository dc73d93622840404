// Package render writes command results in the framed text format that
// calling tools parse. Markers are fixed:
//
//	class:     [JAVA/rt.jar => <class>]
//	classInfo: {{{=(  <json>  )=}}}
//	methods:   {<signature>}
//	module:    [<path> => <name>]
//	field:     {{{<value>}}}
//	find:      [<entry> => <item>]
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"javatools/internal/inspect"
	"javatools/internal/introspect"
	"javatools/internal/sortutil"
)

const (
	ClassInfoOpen  = "{{{=("
	ClassInfoClose = ")=}}}"

	// classSource is the fixed source label of class: matches.
	classSource = "JAVA/rt.jar"
)

// declaringPrefix finds "Type." in front of the method name of a
// toGenericString rendering.
var declaringPrefix = regexp.MustCompile(` ([^ ]+)(\.[a-zA-Z_][a-zA-Z0-9_]*)\(`)

// ClassMatches writes one line per resolved class.
func ClassMatches(w io.Writer, classes []*introspect.Class) error {
	for _, c := range classes {
		if _, err := fmt.Fprintf(w, "[%s => %s]\n", classSource, c.Name()); err != nil {
			return err
		}
	}
	return nil
}

// ReportJSON encodes a report as indented JSON without HTML escaping.
func ReportJSON(r *inspect.ClassReport) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ClassInfo writes the framed JSON report.
func ClassInfo(w io.Writer, r *inspect.ClassReport) error {
	b, err := ReportJSON(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n%s\n", ClassInfoOpen, b, ClassInfoClose)
	return err
}

// MethodLines returns the normalized signatures of the public methods of
// cls, ordered by method name.
func MethodLines(cls *introspect.Class) ([]string, error) {
	methods, err := cls.Methods()
	if err != nil {
		return nil, err
	}
	methods = sortutil.StableSortBy(methods, func(m *introspect.Method) string { return m.Name })
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		out = append(out, NormalizeSignature(m.GenericString(), cls.PackageName()))
	}
	return out, nil
}

// NormalizeSignature shortens a toGenericString rendering: the package of
// the queried class and java.lang are dropped from type names, and the
// declaring type in front of the method name is removed.
//
//	public boolean java.util.ArrayList.add(E) -> public boolean add(E)
func NormalizeSignature(sig, pkg string) string {
	if pkg != "" {
		sig = strings.ReplaceAll(sig, pkg+".", "")
	}
	sig = strings.ReplaceAll(sig, "java.lang.", "")
	if loc := declaringPrefix.FindStringSubmatchIndex(sig); loc != nil {
		sig = sig[:loc[2]] + sig[loc[3]+1:]
	}
	return sig
}

// Methods writes one {signature} line per public method of cls.
func Methods(w io.Writer, cls *introspect.Class) error {
	lines, err := MethodLines(cls)
	if err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "{%s}\n", l); err != nil {
			return err
		}
	}
	return nil
}

// Module writes the location line of a class.
func Module(w io.Writer, path, name string) error {
	_, err := fmt.Fprintf(w, "[%s => %s]\n", path, name)
	return err
}

// Field writes a rendered static value.
func Field(w io.Writer, value string) error {
	_, err := fmt.Fprintf(w, "{{{%s}}}\n", value)
	return err
}

// Find writes one classpath search hit.
func Find(w io.Writer, entry, item string) error {
	_, err := fmt.Fprintf(w, "[%s => %s]\n", entry, item)
	return err
}
