// Package classfiletest synthesizes JVM class files, directories and
// archives for tests, so that introspection can be exercised without a JDK.
package classfiletest

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"javatools/internal/classfile"
)

// Class describes a class to be written. Names are binary names with dots.
type Class struct {
	Name       string
	Super      string // empty: no super_class (only valid for java.lang.Object)
	Interfaces []string
	Access     classfile.AccessFlags
	Signature  string
	Fields     []Field
	Methods    []Method
}

// Field is a field_info entry.
type Field struct {
	Access     classfile.AccessFlags
	Name       string
	Descriptor string
	Signature  string
	Constant   any // int32, int64, float32, float64 or string
}

// Method is a method_info entry.
type Method struct {
	Access     classfile.AccessFlags
	Name       string
	Descriptor string
	Signature  string
	Exceptions []string
}

// Object returns a minimal java.lang.Object with a public constructor and the
// usual public methods.
func Object() Class {
	pub := classfile.AccPublic
	return Class{
		Name:   "java.lang.Object",
		Access: pub | classfile.AccSynchronized,
		Methods: []Method{
			{Access: pub, Name: "<init>", Descriptor: "()V"},
			{Access: pub, Name: "hashCode", Descriptor: "()I"},
			{Access: pub, Name: "equals", Descriptor: "(Ljava/lang/Object;)Z"},
			{Access: pub, Name: "toString", Descriptor: "()Ljava/lang/String;"},
			{Access: classfile.AccProtected, Name: "clone", Descriptor: "()Ljava/lang/Object;", Exceptions: []string{"java.lang.CloneNotSupportedException"}},
		},
	}
}

// Bytes encodes the class file.
func (c Class) Bytes() []byte {
	cp := newPool()
	this := cp.class(c.Name)
	var super uint16
	if c.Super != "" {
		super = cp.class(c.Super)
	}
	ifaces := make([]uint16, len(c.Interfaces))
	for i, n := range c.Interfaces {
		ifaces[i] = cp.class(n)
	}

	var body bytes.Buffer
	u2 := func(v uint16) { _ = binary.Write(&body, binary.BigEndian, v) }
	attr := func(name string, data []byte) {
		u2(cp.utf8(name))
		_ = binary.Write(&body, binary.BigEndian, uint32(len(data)))
		body.Write(data)
	}
	index := func(i uint16) []byte {
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, i)
		return b
	}

	u2(uint16(c.Access))
	u2(this)
	u2(super)
	u2(uint16(len(ifaces)))
	for _, i := range ifaces {
		u2(i)
	}

	u2(uint16(len(c.Fields)))
	for _, f := range c.Fields {
		u2(uint16(f.Access))
		u2(cp.utf8(f.Name))
		u2(cp.utf8(f.Descriptor))
		n := 0
		if f.Signature != "" {
			n++
		}
		if f.Constant != nil {
			n++
		}
		u2(uint16(n))
		if f.Signature != "" {
			attr("Signature", index(cp.utf8(f.Signature)))
		}
		if f.Constant != nil {
			attr("ConstantValue", index(cp.constant(f.Constant)))
		}
	}

	u2(uint16(len(c.Methods)))
	for _, m := range c.Methods {
		u2(uint16(m.Access))
		u2(cp.utf8(m.Name))
		u2(cp.utf8(m.Descriptor))
		n := 0
		if m.Signature != "" {
			n++
		}
		if len(m.Exceptions) > 0 {
			n++
		}
		u2(uint16(n))
		if m.Signature != "" {
			attr("Signature", index(cp.utf8(m.Signature)))
		}
		if len(m.Exceptions) > 0 {
			ex := index(uint16(len(m.Exceptions)))
			for _, e := range m.Exceptions {
				ex = append(ex, index(cp.class(e))...)
			}
			attr("Exceptions", ex)
		}
	}

	if c.Signature != "" {
		u2(1)
		attr("Signature", index(cp.utf8(c.Signature)))
	} else {
		u2(0)
	}

	var out bytes.Buffer
	_ = binary.Write(&out, binary.BigEndian, uint32(classfile.Magic))
	_ = binary.Write(&out, binary.BigEndian, uint16(0))
	_ = binary.Write(&out, binary.BigEndian, uint16(52))
	_ = binary.Write(&out, binary.BigEndian, cp.next)
	out.Write(cp.buf.Bytes())
	out.Write(body.Bytes())
	return out.Bytes()
}

// EntryName is the path of the class inside a directory or archive.
func (c Class) EntryName() string {
	return classfile.InternalName(c.Name) + ".class"
}

// WriteDir writes classes as a package tree under dir.
func WriteDir(t testing.TB, dir string, classes ...Class) {
	t.Helper()
	for _, c := range classes {
		p := filepath.Join(dir, filepath.FromSlash(c.EntryName()))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, c.Bytes(), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

// WriteJar writes classes into a zip archive at path.
func WriteJar(t testing.TB, path string, classes ...Class) {
	t.Helper()
	writeArchive(t, path, nil, "", classes)
}

// WriteJmod writes classes into a JDK module file: the "JM" header followed by
// a zip whose class entries live under classes/.
func WriteJmod(t testing.TB, path string, classes ...Class) {
	t.Helper()
	writeArchive(t, path, []byte{'J', 'M', 1, 0}, "classes/", classes)
}

func writeArchive(t testing.TB, path string, header []byte, prefix string, classes []Class) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, c := range classes {
		w, err := zw.Create(prefix + c.EntryName())
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write(c.Bytes()); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data := append(append([]byte{}, header...), buf.Bytes()...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

type pool struct {
	buf   bytes.Buffer
	next  uint16
	utf8s map[string]uint16
	refs  map[string]uint16
}

func newPool() *pool {
	return &pool{next: 1, utf8s: map[string]uint16{}, refs: map[string]uint16{}}
}

func (p *pool) add(tag byte, data []byte, slots uint16) uint16 {
	idx := p.next
	p.buf.WriteByte(tag)
	p.buf.Write(data)
	p.next += slots
	return idx
}

func (p *pool) utf8(s string) uint16 {
	if i, ok := p.utf8s[s]; ok {
		return i
	}
	enc := encodeModifiedUTF8(s)
	data := make([]byte, 2, 2+len(enc))
	binary.BigEndian.PutUint16(data, uint16(len(enc)))
	i := p.add(1, append(data, enc...), 1)
	p.utf8s[s] = i
	return i
}

func (p *pool) ref(tag byte, key string, target uint16) uint16 {
	k := string(rune(tag)) + key
	if i, ok := p.refs[k]; ok {
		return i
	}
	data := make([]byte, 2)
	binary.BigEndian.PutUint16(data, target)
	i := p.add(tag, data, 1)
	p.refs[k] = i
	return i
}

func (p *pool) class(binaryName string) uint16 {
	internal := classfile.InternalName(binaryName)
	return p.ref(7, internal, p.utf8(internal))
}

func (p *pool) constant(v any) uint16 {
	u4 := func(x uint32) []byte {
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, x)
		return b
	}
	u8 := func(x uint64) []byte {
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, x)
		return b
	}
	switch x := v.(type) {
	case int32:
		return p.add(3, u4(uint32(x)), 1)
	case float32:
		return p.add(4, u4(math.Float32bits(x)), 1)
	case int64:
		return p.add(5, u8(uint64(x)), 2)
	case float64:
		return p.add(6, u8(math.Float64bits(x)), 2)
	case string:
		return p.ref(8, x, p.utf8(x))
	}
	panic("classfiletest: unsupported constant type")
}

func encodeModifiedUTF8(s string) []byte {
	var out []byte
	for _, u := range utf16.Encode([]rune(s)) {
		switch {
		case u != 0 && u < 0x80:
			out = append(out, byte(u))
		case u < 0x800:
			out = append(out, byte(0xC0|u>>6), byte(0x80|u&0x3F))
		default:
			out = append(out, byte(0xE0|u>>12), byte(0x80|(u>>6)&0x3F), byte(0x80|u&0x3F))
		}
	}
	return out
}
