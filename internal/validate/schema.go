// Package validate performs lightweight structural validation of class
// reports before they are emitted. It is not a JSON-Schema validator; it
// checks the constraints consumers of the JSON rely on.
//
// Goals:
//   - Aggregate multiple issues into a single error for better UX
//   - Deterministic, strict-enough checks without being overbearing
package validate

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"javatools/internal/inspect"
)

var (
	kinds    = set(inspect.KindClass, inspect.KindInterface, inspect.KindEnum)
	accesses = set(inspect.AccessPrivate, inspect.AccessProtected, inspect.AccessPublic, inspect.AccessPackage)
	levels   = []string{inspect.LevelAbstract, inspect.LevelFinal, inspect.LevelStatic}
)

// Report validates a ClassReport:
//
//   - Name is non-empty; Type is class, interface or enum.
//   - Parent, when present, is non-empty; interfaces are non-empty and unique.
//   - Every member has a name, a known access level, a declaring type, and
//     declareHere set exactly when the declaring type is the reported class.
//   - Levels are a subset of abstract/final/static, without repeats, in that order.
//   - Constructors are named "constructor"; methods have a return type and
//     fields a type; argument types are non-empty.
//   - No two methods share a signature.
//
// The function returns nil if everything looks fine, or a single aggregated
// error describing all the issues found.
func Report(r *inspect.ClassReport) error {
	var errs errlist
	if r == nil {
		errs.add("report must not be nil")
		return errs.err()
	}

	if strings.TrimSpace(r.Name) == "" {
		errs.add("report.name must be non-empty")
	}
	if _, ok := kinds[r.Type]; !ok {
		errs.add("report.type must be class, interface or enum (got %q)", r.Type)
	}
	if r.Parent != nil && strings.TrimSpace(*r.Parent) == "" {
		errs.add("report.parent must be null or non-empty")
	}
	seen := make(map[string]struct{}, len(r.Interfaces))
	for i, name := range r.Interfaces {
		if strings.TrimSpace(name) == "" {
			errs.add("interfaces[%d]: name must be non-empty", i)
		}
		if _, dup := seen[name]; dup {
			errs.add("interfaces[%d]: duplicate interface %q", i, name)
		}
		seen[name] = struct{}{}
	}

	for i, f := range r.Fields {
		prefix := fmt.Sprintf("fields[%d] (%s)", i, f.Name)
		member(&errs, prefix, r.Name, f)
		if strings.TrimSpace(f.Type) == "" {
			errs.add("%s: type must be non-empty", prefix)
		}
	}

	for i, m := range r.Methods {
		prefix := fmt.Sprintf("methods[%d] (%s)", i, m.Name)
		member(&errs, prefix, r.Name, m)
		if strings.TrimSpace(m.Return) == "" {
			errs.add("%s: return must be non-empty", prefix)
		}
		args(&errs, prefix, m.Args)
		if prev, dup := inspect.FindExisting(r.Methods[:i], m); dup {
			errs.add("%s: duplicate signature, already declared in %s", prefix, prev.DeclareIn)
		}
	}

	for i, c := range r.Constructors {
		prefix := fmt.Sprintf("constructors[%d]", i)
		member(&errs, prefix, r.Name, c)
		if c.Name != inspect.ConstructorName {
			errs.add("%s: name must be %q (got %q)", prefix, inspect.ConstructorName, c.Name)
		}
		args(&errs, prefix, c.Args)
	}

	return errs.err()
}

// --- helpers -----------------------------------------------------------------

func member(errs *errlist, prefix, reported string, m inspect.Member) {
	if strings.TrimSpace(m.MemberName()) == "" {
		errs.add("%s: name must be non-empty", prefix)
	}
	if _, ok := accesses[m.AccessLevel()]; !ok {
		errs.add("%s: unknown access %q", prefix, m.AccessLevel())
	}
	if m.DeclaringType() == "" {
		errs.add("%s: declareIn must be non-empty", prefix)
	}
	if m.DeclaredHere() != (m.DeclaringType() == reported) {
		errs.add("%s: declareHere=%v inconsistent with declareIn %q", prefix, m.DeclaredHere(), m.DeclaringType())
	}
	if !isOrderedSubset(m.Levels(), levels) {
		errs.add("%s: level must be an ordered subset of %v (got %v)", prefix, levels, m.Levels())
	}
}

func args(errs *errlist, prefix string, types []string) {
	for j, a := range types {
		if strings.TrimSpace(a) == "" {
			errs.add("%s.args[%d]: type must be non-empty", prefix, j)
		}
	}
}

// isOrderedSubset reports whether got only holds elements of allowed, each
// at most once, in allowed's order.
func isOrderedSubset(got, allowed []string) bool {
	next := 0
	for _, g := range got {
		found := false
		for next < len(allowed) {
			next++
			if allowed[next-1] == g {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}

// errlist aggregates multiple validation issues into a single error.
type errlist struct {
	msgs []string
}

func (e *errlist) add(format string, args ...any) {
	if e == nil {
		return
	}
	e.msgs = append(e.msgs, fmt.Sprintf(format, args...))
}

func (e *errlist) err() error {
	if e == nil || len(e.msgs) == 0 {
		return nil
	}
	// Join with newline for readability.
	return errors.New(strings.Join(e.msgs, "\n"))
}
