package classfile

import "strings"

// AccessFlags is the raw access_flags word of a class, field or method.
// The low bits share their values with java.lang.reflect.Modifier.
type AccessFlags uint16

const (
	AccPublic       AccessFlags = 0x0001
	AccPrivate      AccessFlags = 0x0002
	AccProtected    AccessFlags = 0x0004
	AccStatic       AccessFlags = 0x0008
	AccFinal        AccessFlags = 0x0010
	AccSynchronized AccessFlags = 0x0020 // methods; ACC_SUPER on classes
	AccVolatile     AccessFlags = 0x0040 // fields
	AccBridge       AccessFlags = 0x0040 // methods
	AccTransient    AccessFlags = 0x0080 // fields
	AccVarargs      AccessFlags = 0x0080 // methods
	AccNative       AccessFlags = 0x0100
	AccInterface    AccessFlags = 0x0200
	AccAbstract     AccessFlags = 0x0400
	AccStrict       AccessFlags = 0x0800
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000
	AccEnum         AccessFlags = 0x4000
	AccModule       AccessFlags = 0x8000
)

// Modifier masks applicable to each member kind, mirroring
// Modifier.fieldModifiers/methodModifiers.
const (
	ConstructorModifiers = AccPublic | AccProtected | AccPrivate
	MethodModifiers      = AccPublic | AccProtected | AccPrivate | AccAbstract | AccStatic | AccFinal | AccSynchronized | AccNative | AccStrict
	FieldModifiers       = AccPublic | AccProtected | AccPrivate | AccStatic | AccFinal | AccTransient | AccVolatile
	AccessModifiers      = AccPublic | AccProtected | AccPrivate
)

// Has reports whether every bit of f is set.
func (a AccessFlags) Has(f AccessFlags) bool { return a&f == f }

// modifierWords lists modifier keywords in java.lang.reflect.Modifier.toString order.
// Bits that overlap between member kinds are resolved by the caller's mask.
var modifierWords = []struct {
	flag AccessFlags
	word string
}{
	{AccPublic, "public"},
	{AccProtected, "protected"},
	{AccPrivate, "private"},
	{AccAbstract, "abstract"},
	{AccStatic, "static"},
	{AccFinal, "final"},
	{AccTransient, "transient"},
	{AccVolatile, "volatile"},
	{AccSynchronized, "synchronized"},
	{AccNative, "native"},
	{AccStrict, "strictfp"},
	{AccInterface, "interface"},
}

// ModifierString renders the modifiers the way Modifier.toString does.
// Pass a value already reduced by one of the *Modifiers masks.
func ModifierString(a AccessFlags) string {
	var words []string
	for _, m := range modifierWords {
		if a&m.flag != 0 {
			words = append(words, m.word)
		}
	}
	return strings.Join(words, " ")
}
