package classfile

import "github.com/pkg/errors"

var primitiveNames = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
	'V': "void",
}

// FieldType returns the Class.getTypeName form of a field descriptor:
// "I" -> "int", "[Ljava/lang/String;" -> "java.lang.String[]".
func FieldType(desc string) (string, error) {
	name, n, err := parseDescriptorType(desc, 0)
	if err != nil {
		return "", err
	}
	if n != len(desc) {
		return "", errors.Wrapf(ErrFormat, "trailing data in descriptor %q", desc)
	}
	return name, nil
}

// MethodType splits a method descriptor into parameter and return type names.
func MethodType(desc string) (params []string, ret string, err error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, "", errors.Wrapf(ErrFormat, "method descriptor %q", desc)
	}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		var name string
		if name, i, err = parseDescriptorType(desc, i); err != nil {
			return nil, "", err
		}
		params = append(params, name)
	}
	if i >= len(desc) {
		return nil, "", errors.Wrapf(ErrFormat, "unterminated method descriptor %q", desc)
	}
	ret, i, err = parseDescriptorType(desc, i+1)
	if err != nil {
		return nil, "", err
	}
	if i != len(desc) {
		return nil, "", errors.Wrapf(ErrFormat, "trailing data in descriptor %q", desc)
	}
	return params, ret, nil
}

func parseDescriptorType(desc string, i int) (string, int, error) {
	dims := 0
	for i < len(desc) && desc[i] == '[' {
		dims++
		i++
	}
	if i >= len(desc) {
		return "", i, errors.Wrapf(ErrFormat, "truncated descriptor %q", desc)
	}
	var name string
	switch c := desc[i]; c {
	case 'L':
		end := i + 1
		for end < len(desc) && desc[end] != ';' {
			end++
		}
		if end >= len(desc) || end == i+1 {
			return "", i, errors.Wrapf(ErrFormat, "bad class type in descriptor %q", desc)
		}
		name = BinaryName(desc[i+1 : end])
		i = end + 1
	default:
		p, ok := primitiveNames[c]
		if !ok || (c == 'V' && dims > 0) {
			return "", i, errors.Wrapf(ErrFormat, "bad type %q in descriptor %q", c, desc)
		}
		name = p
		i++
	}
	for ; dims > 0; dims-- {
		name += "[]"
	}
	return name, i, nil
}

// ElementType strips array suffixes: "java.lang.String[][]" -> "java.lang.String".
func ElementType(typeName string) string {
	for len(typeName) > 2 && typeName[len(typeName)-2:] == "[]" {
		typeName = typeName[:len(typeName)-2]
	}
	return typeName
}

// IsPrimitive reports whether a type name is a primitive or void.
func IsPrimitive(typeName string) bool {
	switch typeName {
	case "byte", "char", "double", "float", "int", "long", "short", "boolean", "void":
		return true
	}
	return false
}
