// Package inspect builds ClassReports: the constructor, method and field
// inventory of a class and its immediate superclass.
package inspect

import "javatools/internal/classfile"

// Access levels, in decoding precedence order.
const (
	AccessPrivate   = "private"
	AccessProtected = "protected"
	AccessPublic    = "public"
	AccessPackage   = "package"
)

// Modifier levels reported alongside the access level.
const (
	LevelAbstract = "abstract"
	LevelFinal    = "final"
	LevelStatic   = "static"
)

// Report kinds.
const (
	KindClass     = "class"
	KindInterface = "interface"
	KindEnum      = "enum"
)

// ConstructorName is the name every constructor is reported under.
const ConstructorName = "constructor"

// MemberKind tags the variants of Member.
type MemberKind int

const (
	MemberConstructor MemberKind = iota
	MemberField
	MemberMethod
)

func (k MemberKind) String() string {
	switch k {
	case MemberConstructor:
		return "constructor"
	case MemberField:
		return "field"
	}
	return "method"
}

// Member is the common view of ConstructorInfo, FieldInfo and MethodInfo.
type Member interface {
	Kind() MemberKind
	MemberName() string
	AccessLevel() string
	Levels() []string
	DeclaringType() string
	DeclaredHere() bool
}

// ConstructorInfo describes a public constructor.
type ConstructorInfo struct {
	Name        string   `json:"name"`
	Access      string   `json:"access"`
	DeclareIn   string   `json:"declareIn"`
	Args        []string `json:"args"`
	DeclareHere bool     `json:"declareHere"`
}

// FieldInfo describes a declared field.
type FieldInfo struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Access      string   `json:"access"`
	Level       []string `json:"level"`
	DeclareIn   string   `json:"declareIn"`
	DeclareHere bool     `json:"declareHere"`
}

// MethodInfo describes a declared method.
type MethodInfo struct {
	Name        string   `json:"name"`
	Access      string   `json:"access"`
	Level       []string `json:"level"`
	DeclareIn   string   `json:"declareIn"`
	Args        []string `json:"args"`
	Return      string   `json:"return"`
	DeclareHere bool     `json:"declareHere"`
}

// ClassReport is the structured description of a class. Field order is the
// JSON key order.
type ClassReport struct {
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Parent       *string           `json:"parent"`
	Interfaces   []string          `json:"interfaces"`
	Fields       []FieldInfo       `json:"fields"`
	Methods      []MethodInfo      `json:"methods"`
	Constructors []ConstructorInfo `json:"constructors"`
}

// Members lists fields, methods and constructors in report order.
func (r *ClassReport) Members() []Member {
	out := make([]Member, 0, len(r.Fields)+len(r.Methods)+len(r.Constructors))
	for i := range r.Fields {
		out = append(out, r.Fields[i])
	}
	for i := range r.Methods {
		out = append(out, r.Methods[i])
	}
	for i := range r.Constructors {
		out = append(out, r.Constructors[i])
	}
	return out
}

func (c ConstructorInfo) Kind() MemberKind      { return MemberConstructor }
func (c ConstructorInfo) MemberName() string    { return c.Name }
func (c ConstructorInfo) AccessLevel() string   { return c.Access }
func (c ConstructorInfo) Levels() []string      { return nil }
func (c ConstructorInfo) DeclaringType() string { return c.DeclareIn }
func (c ConstructorInfo) DeclaredHere() bool    { return c.DeclareHere }

func (f FieldInfo) Kind() MemberKind      { return MemberField }
func (f FieldInfo) MemberName() string    { return f.Name }
func (f FieldInfo) AccessLevel() string   { return f.Access }
func (f FieldInfo) Levels() []string      { return f.Level }
func (f FieldInfo) DeclaringType() string { return f.DeclareIn }
func (f FieldInfo) DeclaredHere() bool    { return f.DeclareHere }

func (m MethodInfo) Kind() MemberKind      { return MemberMethod }
func (m MethodInfo) MemberName() string    { return m.Name }
func (m MethodInfo) AccessLevel() string   { return m.Access }
func (m MethodInfo) Levels() []string      { return m.Level }
func (m MethodInfo) DeclaringType() string { return m.DeclareIn }
func (m MethodInfo) DeclaredHere() bool    { return m.DeclareHere }

// DecodeAccess maps access flags to a single level. If several access bits
// are set, private wins over protected, which wins over public.
func DecodeAccess(flags classfile.AccessFlags) string {
	switch {
	case flags.Has(classfile.AccPrivate):
		return AccessPrivate
	case flags.Has(classfile.AccProtected):
		return AccessProtected
	case flags.Has(classfile.AccPublic):
		return AccessPublic
	}
	return AccessPackage
}

// DecodeLevels lists the abstract, final and static modifiers present in
// flags, in that order. The result is never nil.
func DecodeLevels(flags classfile.AccessFlags) []string {
	out := []string{}
	if flags.Has(classfile.AccAbstract) {
		out = append(out, LevelAbstract)
	}
	if flags.Has(classfile.AccFinal) {
		out = append(out, LevelFinal)
	}
	if flags.Has(classfile.AccStatic) {
		out = append(out, LevelStatic)
	}
	return out
}
