package inspect

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"javatools/internal/introspect"
)

// TypeChecker verifies that a type referenced by a member can be loaded.
// *introspect.Runtime implements it.
type TypeChecker interface {
	RequireType(typeName string) error
}

// Extractor builds ClassReports.
type Extractor struct {
	types TypeChecker
	log   *zap.Logger
}

// NewExtractor returns an Extractor resolving member types through types.
func NewExtractor(types TypeChecker, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{types: types, log: log}
}

// Extract reports cls together with its immediate superclass; classes
// further up the hierarchy are not visited. Constructors are the public
// ones of both levels. Methods are the declared ones of both levels with
// signature duplicates dropped, so an override shows up once, as declared
// on cls. Fields are the declared ones of both levels, shadowed ones
// included.
//
// Any member whose parameter, return or field type cannot be loaded fails
// the whole extraction.
func (e *Extractor) Extract(cls *introspect.Class) (*ClassReport, error) {
	report := &ClassReport{
		Name:         cls.Name(),
		Type:         cls.Kind(),
		Interfaces:   cls.InterfaceNames(),
		Fields:       []FieldInfo{},
		Methods:      []MethodInfo{},
		Constructors: []ConstructorInfo{},
	}

	worklist := []*introspect.Class{cls}
	super, err := cls.Superclass()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load superclass of %v", cls.Name())
	}
	if super != nil {
		parent := super.Name()
		report.Parent = &parent
		worklist = append(worklist, super)
	}

	for _, c := range worklist {
		e.log.Debug("extracting members", zap.String("class", c.Name()))
		if err := e.constructors(report, cls, c); err != nil {
			return nil, err
		}
		if err := e.methods(report, cls, c); err != nil {
			return nil, err
		}
		if err := e.fields(report, cls, c); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func (e *Extractor) constructors(report *ClassReport, queried, c *introspect.Class) error {
	ctors, err := c.Constructors()
	if err != nil {
		return err
	}
	for _, k := range ctors {
		if err := e.require(c, "<init>", k.Params...); err != nil {
			return err
		}
		report.Constructors = append(report.Constructors, ConstructorInfo{
			Name:        ConstructorName,
			Access:      DecodeAccess(k.Modifiers()),
			DeclareIn:   k.Declaring.Name(),
			Args:        append([]string{}, k.Params...),
			DeclareHere: k.Declaring == queried,
		})
	}
	return nil
}

func (e *Extractor) methods(report *ClassReport, queried, c *introspect.Class) error {
	methods, err := c.DeclaredMethods()
	if err != nil {
		return err
	}
	for _, m := range methods {
		if err := e.require(c, m.Name, append([]string{m.Return}, m.Params...)...); err != nil {
			return err
		}
		mi := MethodInfo{
			Name:        m.Name,
			Access:      DecodeAccess(m.Modifiers()),
			Level:       DecodeLevels(m.Modifiers()),
			DeclareIn:   m.Declaring.Name(),
			Args:        append([]string{}, m.Params...),
			Return:      m.Return,
			DeclareHere: m.Declaring == queried,
		}
		if prev, ok := FindExisting(report.Methods, mi); ok {
			e.log.Debug("skipping overridden method",
				zap.String("method", mi.Name), zap.String("declareIn", mi.DeclareIn), zap.String("keptFrom", prev.DeclareIn))
			continue
		}
		report.Methods = append(report.Methods, mi)
	}
	return nil
}

func (e *Extractor) fields(report *ClassReport, queried, c *introspect.Class) error {
	fields, err := c.DeclaredFields()
	if err != nil {
		return err
	}
	for _, f := range fields {
		if err := e.require(c, f.Name, f.Type); err != nil {
			return err
		}
		report.Fields = append(report.Fields, FieldInfo{
			Name:        f.Name,
			Type:        f.Type,
			Access:      DecodeAccess(f.Modifiers()),
			Level:       DecodeLevels(f.Modifiers()),
			DeclareIn:   f.Declaring.Name(),
			DeclareHere: f.Declaring == queried,
		})
	}
	return nil
}

func (e *Extractor) require(c *introspect.Class, member string, types ...string) error {
	for _, t := range types {
		if err := e.types.RequireType(t); err != nil {
			return errors.Wrapf(err, "%v.%v references unresolvable type %v", c.Name(), member, t)
		}
	}
	return nil
}
