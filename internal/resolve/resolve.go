// Package resolve turns the class names users type into loaded classes.
//
// A bare name (no '.') is probed against an ordered table of candidate
// packages and every hit is returned; picking among several hits is left to
// the caller. A qualified name is loaded as is.
package resolve

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"javatools/internal/introspect"
)

// ErrAmbiguousClass is returned (wrapped) when a bare name matches in more
// than one namespace and the caller needs exactly one class.
var ErrAmbiguousClass = errors.New("class cannot be resolved unambiguously")

// BaseNamespace is tried first for bare names given to classInfo.
const BaseNamespace = "java.lang"

// Namespaces is an ordered list of package prefixes. Order is the order in
// which matches are reported.
type Namespaces []string

// DefaultNamespaces is the built-in candidate table.
var DefaultNamespaces = Namespaces{
	"java.util",
	"java.lang.annotation",
	"java.util.function",
	"java.util.regex",
	"java.util.concurrent",
	"java.util.concurrent.atomic",
	"java.util.concurrent.locks",
	"java.util.stream",
	"java.beans",
	"java.io",
	"java.text",
	"java.nio",
	"java.nio.file",
	"java.nio.channels",
	"java.lang",
	"java.lang.reflect",
	"java.math",
	"java.net",
	"java.time",
	"java.time.format",
	"java.time.temporal",
	"java.sql",
	"java.security",
	"javax.crypto",
}

// Loader loads classes by binary name. *introspect.Runtime implements it.
type Loader interface {
	LoadClass(name string) (*introspect.Class, error)
}

// Resolver resolves user-supplied class names.
type Resolver struct {
	loader Loader
	ns     Namespaces
	base   string
	log    *zap.Logger
}

// New returns a Resolver. An empty ns selects DefaultNamespaces and an
// empty base selects BaseNamespace.
func New(loader Loader, ns Namespaces, base string, log *zap.Logger) *Resolver {
	if len(ns) == 0 {
		ns = DefaultNamespaces
	}
	if base == "" {
		base = BaseNamespace
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{loader: loader, ns: append(Namespaces(nil), ns...), base: base, log: log}
}

// Namespaces returns a copy of the candidate table.
func (r *Resolver) Namespaces() Namespaces { return append(Namespaces(nil), r.ns...) }

// IsQualified reports whether name carries a package separator.
func IsQualified(name string) bool { return strings.Contains(name, ".") }

// ResolveByShortName returns every class matching name. A bare name is
// probed in each namespace in table order; misses are not errors, so the
// result may be empty. A qualified name is loaded directly and a miss is an
// error.
func (r *Resolver) ResolveByShortName(name string) ([]*introspect.Class, error) {
	if IsQualified(name) {
		c, err := r.loader.LoadClass(name)
		if err != nil {
			return nil, err
		}
		return []*introspect.Class{c}, nil
	}

	var out []*introspect.Class
	for _, pkg := range r.ns {
		c, err := r.loader.LoadClass(pkg + "." + name)
		if err != nil {
			if !errors.Is(err, introspect.ErrClassNotFound) {
				r.log.Debug("ignoring unloadable candidate", zap.String("candidate", pkg+"."+name), zap.Error(err))
			}
			continue
		}
		out = append(out, c)
	}
	r.log.Debug("short name resolved", zap.String("name", name), zap.Int("matches", len(out)))
	return out, nil
}

// Unique resolves name and requires exactly one match.
func (r *Resolver) Unique(name string) (*introspect.Class, error) {
	found, err := r.ResolveByShortName(name)
	if err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, errors.Wrapf(introspect.ErrClassNotFound, "%v", name)
	case 1:
		return found[0], nil
	}
	cands := make([]string, len(found))
	for i, c := range found {
		cands[i] = c.Name()
	}
	return nil, errors.Wrapf(ErrAmbiguousClass, "%v matches %v", name, strings.Join(cands, ", "))
}

// ResolveWithHint loads name directly, then hint+"."+name for a bare name
// when a hint is given, then falls back to a unique short-name match.
func (r *Resolver) ResolveWithHint(name, hint string) (*introspect.Class, error) {
	c, err := r.loader.LoadClass(name)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, introspect.ErrClassNotFound) {
		return nil, err
	}
	if IsQualified(name) {
		return nil, err
	}
	if hint = strings.TrimSpace(hint); hint != "" {
		if c, err := r.loader.LoadClass(hint + "." + name); err == nil {
			return c, nil
		} else if !errors.Is(err, introspect.ErrClassNotFound) {
			return nil, err
		}
	}
	return r.Unique(name)
}

// ResolveDefault loads a qualified name directly. A bare name is looked up
// in the base namespace first and otherwise must match exactly one
// namespace.
func (r *Resolver) ResolveDefault(name string) (*introspect.Class, error) {
	if IsQualified(name) {
		return r.loader.LoadClass(name)
	}
	c, err := r.loader.LoadClass(r.base + "." + name)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, introspect.ErrClassNotFound) {
		return nil, err
	}
	return r.Unique(name)
}

// LoadNested loads a dotted name, reading trailing segments as nested class
// names when the plain name does not load: a.b.Outer.Inner is tried as
// a.b.Outer.Inner, then a.b.Outer$Inner, then a.b$Outer$Inner and so on.
func (r *Resolver) LoadNested(dotted string) (*introspect.Class, error) {
	cn := dotted
	for {
		c, err := r.loader.LoadClass(cn)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, introspect.ErrClassNotFound) {
			return nil, err
		}
		i := strings.LastIndexByte(cn, '.')
		if i <= 0 {
			return nil, errors.Wrapf(introspect.ErrClassNotFound, "class cannot be identified by %v", dotted)
		}
		cn = cn[:i] + "$" + cn[i+1:]
	}
}

// TrimClassSuffix removes a trailing ".class" typed after a class name.
func TrimClassSuffix(name string) string {
	return strings.TrimSuffix(name, ".class")
}
