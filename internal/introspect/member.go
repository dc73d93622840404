package introspect

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"javatools/internal/classfile"
)

// Method is a declared method.
type Method struct {
	Declaring  *Class
	Name       string
	Access     classfile.AccessFlags
	Params     []string // erased parameter type names
	Return     string   // erased return type name
	Exceptions []string

	sig *classfile.MethodSig
}

// Constructor is a declared constructor.
type Constructor struct {
	Declaring  *Class
	Access     classfile.AccessFlags
	Params     []string
	Exceptions []string
}

// Field is a declared field.
type Field struct {
	Declaring   *Class
	Name        string
	Access      classfile.AccessFlags
	Type        string // erased type name
	GenericType string // generic rendering, equal to Type when there is no signature

	constant any
	ordinal  int // position among enum constants, -1 otherwise
}

// EnumConstant is the value of an enum constant field.
type EnumConstant struct {
	Type    string
	Name    string
	Ordinal int
}

func newMethod(c *Class, m classfile.Member) (*Method, error) {
	params, ret, err := classfile.MethodType(m.Descriptor)
	if err != nil {
		return nil, errors.Wrapf(err, "%v.%v", c.name, m.Name)
	}
	return &Method{
		Declaring:  c,
		Name:       m.Name,
		Access:     m.Access,
		Params:     params,
		Return:     ret,
		Exceptions: binaryNames(m.Exceptions),
		sig:        methodSig(c, m),
	}, nil
}

func newConstructor(c *Class, m classfile.Member) (*Constructor, error) {
	params, _, err := classfile.MethodType(m.Descriptor)
	if err != nil {
		return nil, errors.Wrapf(err, "%v.<init>", c.name)
	}
	return &Constructor{
		Declaring:  c,
		Access:     m.Access,
		Params:     params,
		Exceptions: binaryNames(m.Exceptions),
	}, nil
}

func newField(c *Class, m classfile.Member) (*Field, error) {
	t, err := classfile.FieldType(m.Descriptor)
	if err != nil {
		return nil, errors.Wrapf(err, "%v.%v", c.name, m.Name)
	}
	f := &Field{
		Declaring:   c,
		Name:        m.Name,
		Access:      m.Access,
		Type:        t,
		GenericType: t,
		constant:    m.ConstantValue,
		ordinal:     -1,
	}
	if m.Signature != "" {
		if g, err := classfile.ParseFieldSignature(m.Signature); err == nil {
			f.GenericType = g
		} else {
			c.rt.log.Debug("ignoring malformed field signature",
				zap.String("class", c.name), zap.String("field", m.Name), zap.Error(err))
		}
	}
	if m.Access.Has(classfile.AccEnum) {
		f.ordinal = 0
		for _, prev := range c.fields {
			if prev.ordinal >= 0 {
				f.ordinal++
			}
		}
	}
	return f, nil
}

func methodSig(c *Class, m classfile.Member) *classfile.MethodSig {
	if m.Signature == "" {
		return nil
	}
	sig, err := classfile.ParseMethodSignature(m.Signature)
	if err != nil {
		c.rt.log.Debug("ignoring malformed method signature",
			zap.String("class", c.name), zap.String("method", m.Name), zap.Error(err))
		return nil
	}
	return sig
}

func binaryNames(internal []string) []string {
	if len(internal) == 0 {
		return nil
	}
	out := make([]string, len(internal))
	for i, n := range internal {
		out[i] = classfile.BinaryName(n)
	}
	return out
}

// ------------------------------ Method ---------------------------------------

// Modifiers returns the flags that are Java language modifiers.
func (m *Method) Modifiers() classfile.AccessFlags { return m.Access & classfile.MethodModifiers }

func (m *Method) IsBridge() bool    { return m.Access.Has(classfile.AccBridge) }
func (m *Method) IsSynthetic() bool { return m.Access.Has(classfile.AccSynthetic) }
func (m *Method) IsVarArgs() bool   { return m.Access.Has(classfile.AccVarargs) }

// IsDefault reports a public non-abstract instance method of an interface.
func (m *Method) IsDefault() bool {
	return m.Declaring.IsInterface() &&
		m.Access&(classfile.AccAbstract|classfile.AccPublic|classfile.AccStatic) == classfile.AccPublic
}

// key identifies a method for override purposes: name and parameter types.
func (m *Method) key() string {
	return m.Name + "(" + strings.Join(m.Params, ",") + ")"
}

// GenericString renders the method like java.lang.reflect.Method.toGenericString:
//
//	public <T> T[] java.util.ArrayList.toArray(T[])
func (m *Method) GenericString() string {
	var sb strings.Builder
	writeModifiers(&sb, m.Modifiers(), m.IsDefault())

	ret := m.Return
	params := m.Params
	throws := m.Exceptions
	if m.sig != nil {
		if len(m.sig.TypeParams) > 0 {
			sb.WriteString("<" + strings.Join(m.sig.TypeParams, ",") + "> ")
		}
		ret = m.sig.Return
		if len(m.sig.Params) == len(m.Params) {
			params = m.sig.Params
		}
		if len(m.sig.Throws) > 0 {
			throws = m.sig.Throws
		}
	}
	sb.WriteString(ret)
	sb.WriteByte(' ')
	sb.WriteString(m.Declaring.Name())
	sb.WriteByte('.')
	sb.WriteString(m.Name)
	writeParams(&sb, params, m.IsVarArgs(), throws)
	return sb.String()
}

// ---------------------------- Constructor ------------------------------------

// Modifiers returns the flags that are Java language modifiers.
func (k *Constructor) Modifiers() classfile.AccessFlags {
	return k.Access & classfile.ConstructorModifiers
}

// ------------------------------- Field ---------------------------------------

// Modifiers returns the flags that are Java language modifiers.
func (f *Field) Modifiers() classfile.AccessFlags { return f.Access & classfile.FieldModifiers }

func (f *Field) IsStatic() bool { return f.Access.Has(classfile.AccStatic) }

// IsEnumConstant reports whether the field is an element of an enum.
func (f *Field) IsEnumConstant() bool { return f.ordinal >= 0 }

// StaticValue returns the value of a static field as far as the class file
// records it: compile-time constants and enum constants. Other static
// fields only get their value when the class is initialized, which never
// happens here; they fail with ErrAccessDenied.
//
// Constants are typed after the field: boolean, byte, char (as a string),
// short, int, long, float, double or string.
func (f *Field) StaticValue() (any, error) {
	qualified := f.Declaring.Name() + "." + f.Name
	if !f.IsStatic() {
		return nil, errors.Wrapf(ErrNotStatic, "%v", qualified)
	}
	if f.IsEnumConstant() {
		return EnumConstant{Type: f.Declaring.Name(), Name: f.Name, Ordinal: f.ordinal}, nil
	}
	if f.constant == nil {
		return nil, errors.Wrapf(ErrAccessDenied, "%v is initialized at run time", qualified)
	}
	switch v := f.constant.(type) {
	case int32:
		switch f.Type {
		case "boolean":
			return v != 0, nil
		case "byte":
			return int8(v), nil
		case "char":
			return string(rune(uint16(v))), nil
		case "short":
			return int16(v), nil
		}
		return v, nil
	default:
		return v, nil
	}
}

// ------------------------------ helpers --------------------------------------

func writeModifiers(sb *strings.Builder, mod classfile.AccessFlags, isDefault bool) {
	if mod != 0 && !isDefault {
		sb.WriteString(classfile.ModifierString(mod))
		sb.WriteByte(' ')
		return
	}
	if access := mod & classfile.AccessModifiers; access != 0 {
		sb.WriteString(classfile.ModifierString(access))
		sb.WriteByte(' ')
	}
	if isDefault {
		sb.WriteString("default ")
	}
	if rest := mod &^ classfile.AccessModifiers; rest != 0 {
		sb.WriteString(classfile.ModifierString(rest))
		sb.WriteByte(' ')
	}
}

func writeParams(sb *strings.Builder, params []string, varargs bool, throws []string) {
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(',')
		}
		if varargs && i == len(params)-1 && strings.HasSuffix(p, "[]") {
			p = strings.TrimSuffix(p, "[]") + "..."
		}
		sb.WriteString(p)
	}
	sb.WriteByte(')')
	if len(throws) > 0 {
		sb.WriteString(" throws ")
		sb.WriteString(strings.Join(throws, ","))
	}
}
