package introspect

import (
	"strings"

	"github.com/pkg/errors"

	"javatools/internal/classfile"
)

// Class is a loaded class.
type Class struct {
	rt    *Runtime
	name  string
	file  *classfile.ClassFile
	url   string
	entry string

	methods []*Method
	ctors   []*Constructor
	fields  []*Field
	decoded bool
}

// Name is the binary name, e.g. java.util.Map$Entry.
func (c *Class) Name() string { return c.name }

// PackageName is the package part of the name, or "" for the default package.
func (c *Class) PackageName() string {
	if i := strings.LastIndexByte(c.name, '.'); i >= 0 {
		return c.name[:i]
	}
	return ""
}

func (c *Class) IsInterface() bool { return c.file.Access.Has(classfile.AccInterface) }

func (c *Class) IsEnum() bool {
	return c.file.Access.Has(classfile.AccEnum) && c.file.SuperClass == "java/lang/Enum"
}

// Kind is "interface", "enum" or "class". Annotation types are interfaces.
func (c *Class) Kind() string {
	switch {
	case c.IsInterface():
		return "interface"
	case c.IsEnum():
		return "enum"
	}
	return "class"
}

// SuperclassName is the binary name of the superclass, or "" for
// java.lang.Object and interfaces.
func (c *Class) SuperclassName() string {
	if c.IsInterface() || c.file.SuperClass == "" {
		return ""
	}
	return classfile.BinaryName(c.file.SuperClass)
}

// Superclass loads the superclass; it returns nil for root types and interfaces.
func (c *Class) Superclass() (*Class, error) {
	name := c.SuperclassName()
	if name == "" {
		return nil, nil
	}
	return c.rt.LoadClass(name)
}

// InterfaceNames lists directly implemented interfaces in declaration order.
func (c *Class) InterfaceNames() []string {
	out := make([]string, 0, len(c.file.Interfaces))
	for _, i := range c.file.Interfaces {
		out = append(out, classfile.BinaryName(i))
	}
	return out
}

// Interfaces loads the directly implemented interfaces.
func (c *Class) Interfaces() ([]*Class, error) {
	names := c.InterfaceNames()
	out := make([]*Class, 0, len(names))
	for _, n := range names {
		ic, err := c.rt.LoadClass(n)
		if err != nil {
			return nil, err
		}
		out = append(out, ic)
	}
	return out, nil
}

// URL is the location the class file was read from.
func (c *Class) URL() string { return c.url }

// Entry is the classpath entry (directory or archive) that holds the class.
func (c *Class) Entry() string { return c.entry }

// DeclaredMethods returns the methods declared by the class in class-file
// order, excluding constructors and static initializers.
func (c *Class) DeclaredMethods() ([]*Method, error) {
	if err := c.decode(); err != nil {
		return nil, err
	}
	return c.methods, nil
}

// DeclaredConstructors returns every constructor declared by the class.
func (c *Class) DeclaredConstructors() ([]*Constructor, error) {
	if err := c.decode(); err != nil {
		return nil, err
	}
	return c.ctors, nil
}

// Constructors returns the public constructors.
func (c *Class) Constructors() ([]*Constructor, error) {
	all, err := c.DeclaredConstructors()
	if err != nil {
		return nil, err
	}
	var out []*Constructor
	for _, k := range all {
		if k.Access.Has(classfile.AccPublic) {
			out = append(out, k)
		}
	}
	return out, nil
}

// DeclaredFields returns every field declared by the class.
func (c *Class) DeclaredFields() ([]*Field, error) {
	if err := c.decode(); err != nil {
		return nil, err
	}
	return c.fields, nil
}

// DeclaredField looks a declared field up by name.
func (c *Class) DeclaredField(name string) (*Field, error) {
	fields, err := c.DeclaredFields()
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, errors.Wrapf(ErrFieldNotFound, "%v.%v", c.name, name)
}

// Methods returns the public member methods: those declared by the class,
// then those inherited from the superclass chain, then those inherited from
// superinterfaces. A method is hidden by an earlier one with the same name
// and parameter types. Bridge and synthetic methods are left out, as are
// static interface methods of superinterfaces.
func (c *Class) Methods() ([]*Method, error) {
	seen := make(map[string]struct{})
	var out []*Method
	if err := c.collectPublic(&out, seen, make(map[string]struct{}), true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Class) collectPublic(out *[]*Method, seen, visited map[string]struct{}, self bool) error {
	if _, ok := visited[c.name]; ok {
		return nil
	}
	visited[c.name] = struct{}{}

	declared, err := c.DeclaredMethods()
	if err != nil {
		return err
	}
	for _, m := range declared {
		if !m.Access.Has(classfile.AccPublic) || m.IsBridge() || m.IsSynthetic() {
			continue
		}
		if !self && c.IsInterface() && m.Access.Has(classfile.AccStatic) {
			continue
		}
		key := m.key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		*out = append(*out, m)
	}

	super, err := c.Superclass()
	if err != nil {
		return err
	}
	if super != nil {
		if err := super.collectPublic(out, seen, visited, false); err != nil {
			return err
		}
	}
	ifaces, err := c.Interfaces()
	if err != nil {
		return err
	}
	for _, ic := range ifaces {
		if err := ic.collectPublic(out, seen, visited, false); err != nil {
			return err
		}
	}
	return nil
}

// decode builds the member tables once. Nothing is kept when a member fails
// to decode, so a later call starts over.
func (c *Class) decode() error {
	if c.decoded {
		return nil
	}
	fields := make([]*Field, 0, len(c.file.Fields))
	for _, m := range c.file.Fields {
		f, err := newField(c, m)
		if err != nil {
			return err
		}
		fields = append(fields, f)
	}
	var ctors []*Constructor
	methods := make([]*Method, 0, len(c.file.Methods))
	for _, m := range c.file.Methods {
		switch m.Name {
		case "<clinit>":
			continue
		case "<init>":
			k, err := newConstructor(c, m)
			if err != nil {
				return err
			}
			ctors = append(ctors, k)
		default:
			mm, err := newMethod(c, m)
			if err != nil {
				return err
			}
			methods = append(methods, mm)
		}
	}
	c.fields, c.ctors, c.methods = fields, ctors, methods
	c.decoded = true
	return nil
}
