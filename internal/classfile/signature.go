package classfile

import (
	"strings"

	"github.com/pkg/errors"
)

// Generic signatures (JVMS §4.7.9.1) rendered the way java.lang.reflect
// prints generic types: "java.util.Map$Entry<K, V>", "? super T", "E[]".

// MethodSig is a rendered method signature.
type MethodSig struct {
	TypeParams []string // "T" or "T extends java.lang.Comparable<? super T>"
	Params     []string
	Return     string
	Throws     []string
}

// ParseMethodSignature renders a method Signature attribute.
func ParseMethodSignature(sig string) (*MethodSig, error) {
	p := &sigParser{s: sig}
	ms := &MethodSig{}
	var err error
	if ms.TypeParams, err = p.typeParams(); err != nil {
		return nil, err
	}
	if !p.eat('(') {
		return nil, p.fail("expected '('")
	}
	for !p.eat(')') {
		t, err := p.javaType()
		if err != nil {
			return nil, err
		}
		ms.Params = append(ms.Params, t)
	}
	if p.eat('V') {
		ms.Return = "void"
	} else if ms.Return, err = p.javaType(); err != nil {
		return nil, err
	}
	for p.eat('^') {
		t, err := p.refType()
		if err != nil {
			return nil, err
		}
		ms.Throws = append(ms.Throws, t)
	}
	if !p.done() {
		return nil, p.fail("trailing data")
	}
	return ms, nil
}

// ParseFieldSignature renders a field Signature attribute.
func ParseFieldSignature(sig string) (string, error) {
	p := &sigParser{s: sig}
	t, err := p.refType()
	if err != nil {
		return "", err
	}
	if !p.done() {
		return "", p.fail("trailing data")
	}
	return t, nil
}

type sigParser struct {
	s string
	i int
}

func (p *sigParser) done() bool { return p.i >= len(p.s) }

func (p *sigParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.s[p.i]
}

func (p *sigParser) eat(c byte) bool {
	if p.peek() == c && !p.done() {
		p.i++
		return true
	}
	return false
}

func (p *sigParser) fail(msg string) error {
	return errors.Wrapf(ErrFormat, "signature %q at %d: %s", p.s, p.i, msg)
}

func (p *sigParser) typeParams() ([]string, error) {
	if !p.eat('<') {
		return nil, nil
	}
	var out []string
	for !p.eat('>') {
		if p.done() {
			return nil, p.fail("unterminated type parameters")
		}
		start := p.i
		for !p.done() && p.peek() != ':' {
			p.i++
		}
		name := p.s[start:p.i]
		if name == "" || !p.eat(':') {
			return nil, p.fail("bad type parameter")
		}
		var bounds []string
		if c := p.peek(); c == 'L' || c == 'T' || c == '[' {
			b, err := p.refType()
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, b)
		}
		for p.eat(':') {
			b, err := p.refType()
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, b)
		}
		if len(bounds) == 0 || bounds[0] == "java.lang.Object" {
			out = append(out, name)
		} else {
			out = append(out, name+" extends "+strings.Join(bounds, " & "))
		}
	}
	return out, nil
}

func (p *sigParser) javaType() (string, error) {
	c := p.peek()
	if name, ok := primitiveNames[c]; ok && c != 'V' {
		p.i++
		return name, nil
	}
	return p.refType()
}

func (p *sigParser) refType() (string, error) {
	switch p.peek() {
	case 'L':
		return p.classType()
	case 'T':
		p.i++
		start := p.i
		for !p.done() && p.peek() != ';' {
			p.i++
		}
		name := p.s[start:p.i]
		if name == "" || !p.eat(';') {
			return "", p.fail("bad type variable")
		}
		return name, nil
	case '[':
		p.i++
		t, err := p.javaType()
		if err != nil {
			return "", err
		}
		return t + "[]", nil
	}
	return "", p.fail("expected reference type")
}

func (p *sigParser) classType() (string, error) {
	if !p.eat('L') {
		return "", p.fail("expected class type")
	}
	var b strings.Builder
	first := true
	for {
		start := p.i
		for !p.done() {
			c := p.peek()
			if c == '<' || c == '.' || c == ';' {
				break
			}
			p.i++
		}
		ident := p.s[start:p.i]
		if ident == "" {
			return "", p.fail("empty class name")
		}
		if !first {
			b.WriteByte('$')
		}
		b.WriteString(BinaryName(ident))
		first = false
		if p.peek() == '<' {
			args, err := p.typeArgs()
			if err != nil {
				return "", err
			}
			b.WriteString("<" + strings.Join(args, ", ") + ">")
		}
		if p.eat('.') {
			continue
		}
		if !p.eat(';') {
			return "", p.fail("unterminated class type")
		}
		return b.String(), nil
	}
}

func (p *sigParser) typeArgs() ([]string, error) {
	p.eat('<')
	var out []string
	for !p.eat('>') {
		if p.done() {
			return nil, p.fail("unterminated type arguments")
		}
		switch {
		case p.eat('*'):
			out = append(out, "?")
		case p.eat('+'):
			t, err := p.refType()
			if err != nil {
				return nil, err
			}
			if t == "java.lang.Object" {
				out = append(out, "?")
			} else {
				out = append(out, "? extends "+t)
			}
		case p.eat('-'):
			t, err := p.refType()
			if err != nil {
				return nil, err
			}
			out = append(out, "? super "+t)
		default:
			t, err := p.refType()
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
	}
	return out, nil
}
