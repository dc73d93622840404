// Package introspect exposes JVM classes found on a classpath through a
// small reflection-style API: declared members, supertypes, public member
// methods with inheritance, generic rendering and compile-time static values.
//
// A Runtime loads each class at most once and is meant to live for a single
// query; it is not safe for concurrent use.
package introspect

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"javatools/internal/classfile"
	"javatools/internal/classpath"
)

var (
	ErrClassNotFound = errors.New("class not found")
	ErrFieldNotFound = errors.New("field not found")
	ErrNotStatic     = errors.New("field is not static")
	ErrAccessDenied  = errors.New("field value cannot be read")
)

// Source yields class-file resources. *classpath.Path implements it.
type Source interface {
	Find(name string) (*classpath.Resource, error)
}

// Runtime loads classes from a Source.
type Runtime struct {
	src     Source
	log     *zap.Logger
	classes map[string]*Class
	missing map[string]error
}

// New returns a Runtime reading from src.
func New(src Source, log *zap.Logger) *Runtime {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runtime{
		src:     src,
		log:     log,
		classes: make(map[string]*Class),
		missing: make(map[string]error),
	}
}

// LoadClass loads a class by binary name (java.util.Map$Entry). Any failure
// to locate the class, including a class file whose name does not match,
// wraps ErrClassNotFound.
func (rt *Runtime) LoadClass(name string) (*Class, error) {
	if c, ok := rt.classes[name]; ok {
		return c, nil
	}
	if err, ok := rt.missing[name]; ok {
		return nil, err
	}
	c, err := rt.load(name)
	if err != nil {
		rt.missing[name] = err
		return nil, err
	}
	rt.classes[name] = c
	return c, nil
}

func (rt *Runtime) load(name string) (*Class, error) {
	rt.log.Debug("loading class", zap.String("class", name))
	if !validBinaryName(name) {
		return nil, errors.Wrapf(ErrClassNotFound, "%v", name)
	}
	res, err := rt.src.Find(classpath.ClassResource(name))
	if err != nil {
		if errors.Is(err, classpath.ErrNotFound) {
			return nil, errors.Wrapf(ErrClassNotFound, "%v", name)
		}
		return nil, err
	}
	cf, err := classfile.Parse(res.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %v", res.URL)
	}
	if cf.ThisClass != classfile.InternalName(name) {
		rt.log.Debug("class file name mismatch",
			zap.String("class", name), zap.String("found", classfile.BinaryName(cf.ThisClass)))
		return nil, errors.Wrapf(ErrClassNotFound, "%v (wrong name: %v)", name, classfile.BinaryName(cf.ThisClass))
	}
	if cf.Access.Has(classfile.AccModule) {
		return nil, errors.Wrapf(ErrClassNotFound, "%v is a module descriptor", name)
	}
	return &Class{rt: rt, name: name, file: cf, url: res.URL, entry: res.Entry}, nil
}

// RequireType checks that a type name used by a member resolves: primitives
// always do, arrays resolve through their element type.
func (rt *Runtime) RequireType(typeName string) error {
	elem := classfile.ElementType(typeName)
	if classfile.IsPrimitive(elem) {
		return nil
	}
	_, err := rt.LoadClass(elem)
	return err
}

func validBinaryName(name string) bool {
	if name == "" || strings.ContainsAny(name, "/;[]<> ") {
		return false
	}
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		return false
	}
	return !classfile.IsPrimitive(name)
}
