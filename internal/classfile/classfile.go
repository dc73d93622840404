// Package classfile reads the structural parts of JVM class files: the
// constant pool, class header, field and method tables, and the handful of member
// attributes needed for introspection (Signature, ConstantValue, Exceptions).
//
// Method bodies and every other attribute are skipped by length. Names are
// returned in internal form (java/util/Map$Entry); use BinaryName to convert.
package classfile

import (
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"
)

// Magic is the class-file signature 0xCAFEBABE.
const Magic = 0xCAFEBABE

// ErrFormat is returned (wrapped) for truncated or malformed class files.
var ErrFormat = errors.New("malformed class file")

// ClassFile is the parsed header and member tables of a class.
type ClassFile struct {
	Minor      uint16
	Major      uint16
	Access     AccessFlags
	ThisClass  string   // internal name
	SuperClass string   // internal name; empty for java/lang/Object and module-info
	Interfaces []string // internal names, declaration order
	Fields     []Member
	Methods    []Member
}

// Member is a field_info or method_info entry.
type Member struct {
	Access     AccessFlags
	Name       string
	Descriptor string
	Signature  string // generic signature, if any

	// ConstantValue holds the ConstantValue attribute of a field:
	// int32, int64, float32, float64 or string. Nil when absent.
	ConstantValue any

	// Exceptions lists the internal names from the Exceptions attribute of a method.
	Exceptions []string
}

// Parse decodes a class file.
func Parse(data []byte) (*ClassFile, error) {
	r := &reader{buf: data}
	if m := r.u4(); r.err != nil || m != Magic {
		return nil, errors.Wrap(ErrFormat, "bad magic")
	}
	cf := &ClassFile{}
	cf.Minor = r.u2()
	cf.Major = r.u2()

	pool, err := readConstPool(r)
	if err != nil {
		return nil, err
	}

	cf.Access = AccessFlags(r.u2())
	thisIdx, superIdx := r.u2(), r.u2()
	if r.err != nil {
		return nil, r.err
	}
	if cf.ThisClass, err = pool.className(thisIdx); err != nil {
		return nil, errors.Wrap(err, "this_class")
	}
	if superIdx != 0 {
		if cf.SuperClass, err = pool.className(superIdx); err != nil {
			return nil, errors.Wrap(err, "super_class")
		}
	}

	n := int(r.u2())
	for i := 0; i < n && r.err == nil; i++ {
		name, err := pool.className(r.u2())
		if err != nil {
			return nil, errors.Wrapf(err, "interface %d", i)
		}
		cf.Interfaces = append(cf.Interfaces, name)
	}

	if cf.Fields, err = readMembers(r, pool); err != nil {
		return nil, errors.Wrap(err, "fields")
	}
	if cf.Methods, err = readMembers(r, pool); err != nil {
		return nil, errors.Wrap(err, "methods")
	}
	if err := skipAttributes(r, pool); err != nil {
		return nil, errors.Wrap(err, "class attributes")
	}
	return cf, nil
}

func readMembers(r *reader, pool constPool) ([]Member, error) {
	n := int(r.u2())
	if r.err != nil {
		return nil, r.err
	}
	out := make([]Member, 0, n)
	for i := 0; i < n; i++ {
		m := Member{Access: AccessFlags(r.u2())}
		nameIdx, descIdx := r.u2(), r.u2()
		if r.err != nil {
			return nil, r.err
		}
		var err error
		if m.Name, err = pool.utf8(nameIdx); err != nil {
			return nil, err
		}
		if m.Descriptor, err = pool.utf8(descIdx); err != nil {
			return nil, err
		}
		if err := readMemberAttributes(r, pool, &m); err != nil {
			return nil, errors.Wrapf(err, "member %s", m.Name)
		}
		out = append(out, m)
	}
	return out, nil
}

func readMemberAttributes(r *reader, pool constPool, m *Member) error {
	count := int(r.u2())
	for i := 0; i < count; i++ {
		name, body, err := readAttribute(r, pool)
		if err != nil {
			return err
		}
		ar := &reader{buf: body}
		switch name {
		case "Signature":
			if m.Signature, err = pool.utf8(ar.u2()); err != nil {
				return err
			}
		case "ConstantValue":
			if m.ConstantValue, err = pool.constant(ar.u2()); err != nil {
				return err
			}
		case "Exceptions":
			n := int(ar.u2())
			for j := 0; j < n && ar.err == nil; j++ {
				ex, err := pool.className(ar.u2())
				if err != nil {
					return err
				}
				m.Exceptions = append(m.Exceptions, ex)
			}
		}
		if ar.err != nil {
			return errors.Wrapf(ar.err, "attribute %s", name)
		}
	}
	return r.err
}

func skipAttributes(r *reader, pool constPool) error {
	count := int(r.u2())
	for i := 0; i < count; i++ {
		if _, _, err := readAttribute(r, pool); err != nil {
			return err
		}
	}
	return r.err
}

func readAttribute(r *reader, pool constPool) (string, []byte, error) {
	nameIdx := r.u2()
	length := int(r.u4())
	body := r.bytes(length)
	if r.err != nil {
		return "", nil, r.err
	}
	name, err := pool.utf8(nameIdx)
	if err != nil {
		return "", nil, err
	}
	return name, body, nil
}

// BinaryName converts an internal name (java/util/Map$Entry) to the binary
// name returned by Class.getName (java.util.Map$Entry).
func BinaryName(internal string) string {
	return strings.ReplaceAll(internal, "/", ".")
}

// InternalName converts a binary name to internal form.
func InternalName(binary string) string {
	return strings.ReplaceAll(binary, ".", "/")
}

// reader is a sticky-error big-endian cursor over a byte slice.
type reader struct {
	buf []byte
	pos int
	err error
}

func (r *reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || r.pos+n > len(r.buf) {
		r.err = errors.Wrapf(ErrFormat, "unexpected end of data at offset %d", r.pos)
		return false
	}
	return true
}

func (r *reader) u1() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.buf[r.pos]
	r.pos++
	return v
}

func (r *reader) u2() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v
}

func (r *reader) u4() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v
}

func (r *reader) bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	v := r.buf[r.pos : r.pos+n]
	r.pos += n
	return v
}
