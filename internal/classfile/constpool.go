package classfile

import (
	"math"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// Constant pool tags (JVMS §4.4).
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

type cpEntry struct {
	tag   uint8
	index uint16 // Class, String, MethodType, Module, Package: referenced index
	str   string // Utf8
	value any    // Integer, Float, Long, Double
}

// constPool is indexed from 1; slot 0 and the second slot of Long/Double stay empty.
type constPool []cpEntry

func readConstPool(r *reader) (constPool, error) {
	count := int(r.u2())
	if r.err != nil {
		return nil, r.err
	}
	pool := make(constPool, count)
	for i := 1; i < count; i++ {
		tag := r.u1()
		e := cpEntry{tag: tag}
		switch tag {
		case tagUtf8:
			n := int(r.u2())
			b := r.bytes(n)
			if r.err == nil {
				s, err := decodeModifiedUTF8(b)
				if err != nil {
					return nil, errors.Wrapf(err, "constant pool entry %d", i)
				}
				e.str = s
			}
		case tagInteger:
			e.value = int32(r.u4())
		case tagFloat:
			e.value = math.Float32frombits(r.u4())
		case tagLong:
			hi, lo := r.u4(), r.u4()
			e.value = int64(uint64(hi)<<32 | uint64(lo))
		case tagDouble:
			hi, lo := r.u4(), r.u4()
			e.value = math.Float64frombits(uint64(hi)<<32 | uint64(lo))
		case tagClass, tagString, tagMethodType, tagModule, tagPackage:
			e.index = r.u2()
		case tagFieldref, tagMethodref, tagInterfaceMethodref, tagNameAndType, tagDynamic, tagInvokeDynamic:
			r.u2()
			r.u2()
		case tagMethodHandle:
			r.u1()
			r.u2()
		default:
			return nil, errors.Wrapf(ErrFormat, "constant pool entry %d: unknown tag %d", i, tag)
		}
		if r.err != nil {
			return nil, r.err
		}
		pool[i] = e
		if tag == tagLong || tag == tagDouble {
			i++
		}
	}
	return pool, nil
}

func (p constPool) entry(i uint16, tag uint8) (cpEntry, error) {
	if int(i) <= 0 || int(i) >= len(p) {
		return cpEntry{}, errors.Wrapf(ErrFormat, "constant pool index %d out of range", i)
	}
	e := p[i]
	if e.tag != tag {
		return cpEntry{}, errors.Wrapf(ErrFormat, "constant pool index %d: tag %d, want %d", i, e.tag, tag)
	}
	return e, nil
}

func (p constPool) utf8(i uint16) (string, error) {
	e, err := p.entry(i, tagUtf8)
	return e.str, err
}

// className returns the internal name (java/util/List) referenced by a Class entry.
func (p constPool) className(i uint16) (string, error) {
	e, err := p.entry(i, tagClass)
	if err != nil {
		return "", err
	}
	return p.utf8(e.index)
}

// constant returns the loadable value of an Integer, Float, Long, Double or String entry.
func (p constPool) constant(i uint16) (any, error) {
	if int(i) <= 0 || int(i) >= len(p) {
		return nil, errors.Wrapf(ErrFormat, "constant pool index %d out of range", i)
	}
	e := p[i]
	switch e.tag {
	case tagInteger, tagFloat, tagLong, tagDouble:
		return e.value, nil
	case tagString:
		return p.utf8(e.index)
	}
	return nil, errors.Wrapf(ErrFormat, "constant pool index %d: tag %d is not a constant", i, e.tag)
}

// decodeModifiedUTF8 decodes the JVM "modified UTF-8" encoding: NUL is two
// bytes and supplementary characters are stored as surrogate pairs.
func decodeModifiedUTF8(b []byte) (string, error) {
	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) || b[i+1]&0xC0 != 0x80 {
				return "", errors.Wrap(ErrFormat, "malformed 2-byte sequence")
			}
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0:
			if i+2 >= len(b) || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
				return "", errors.Wrap(ErrFormat, "malformed 3-byte sequence")
			}
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			return "", errors.Wrapf(ErrFormat, "illegal byte 0x%02x", c)
		}
	}
	return string(utf16.Decode(units)), nil
}
