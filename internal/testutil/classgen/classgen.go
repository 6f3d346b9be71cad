// Package classgen builds minimal, structurally valid class files for tests.
//
// Constants are interned on demand while the class body is serialized, so
// attributes and element values may reference any string, class or descriptor
// without managing constant pool indices by hand.
package classgen

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Constant pool tags.
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
	tagInvokeDynamic      = 18
)

// Magic is the class file magic number.
const Magic = 0xCAFEBABE

// Builder assembles one class file.
type Builder struct {
	name       string
	super      string
	interfaces []string
	fields     []member
	methods    []member
	attributes []Attribute
	extra      []func(*Builder)

	pool  bytes.Buffer
	count uint16
	index map[string]uint16
}

type member struct {
	name       string
	descriptor string
	attributes []Attribute
}

// New returns a builder for the class with the given internal name extending java/lang/Object.
func New(name string) *Builder {
	return &Builder{name: name, super: "java/lang/Object"}
}

// Super sets the superclass; an empty name writes super_class 0.
func (b *Builder) Super(name string) *Builder {
	b.super = name
	return b
}

// Implements adds interfaces.
func (b *Builder) Implements(names ...string) *Builder {
	b.interfaces = append(b.interfaces, names...)
	return b
}

// Field declares a field.
func (b *Builder) Field(name, descriptor string, attrs ...Attribute) *Builder {
	b.fields = append(b.fields, member{name: name, descriptor: descriptor, attributes: attrs})
	return b
}

// Method declares a method.
func (b *Builder) Method(name, descriptor string, attrs ...Attribute) *Builder {
	b.methods = append(b.methods, member{name: name, descriptor: descriptor, attributes: attrs})
	return b
}

// Attributes adds class-level attributes.
func (b *Builder) Attributes(attrs ...Attribute) *Builder {
	b.attributes = append(b.attributes, attrs...)
	return b
}

// ClassRef adds a CONSTANT_Class entry, as emitted for instanceof, new or catch clauses.
func (b *Builder) ClassRef(name string) *Builder {
	b.extra = append(b.extra, func(b *Builder) { b.Class(name) })
	return b
}

// FieldRef adds a CONSTANT_Fieldref entry.
func (b *Builder) FieldRef(owner, name, descriptor string) *Builder {
	b.extra = append(b.extra, func(b *Builder) { b.ref(tagFieldref, owner, name, descriptor) })
	return b
}

// MethodRef adds a CONSTANT_Methodref entry.
func (b *Builder) MethodRef(owner, name, descriptor string) *Builder {
	b.extra = append(b.extra, func(b *Builder) { b.ref(tagMethodref, owner, name, descriptor) })
	return b
}

// InterfaceMethodRef adds a CONSTANT_InterfaceMethodref entry.
func (b *Builder) InterfaceMethodRef(owner, name, descriptor string) *Builder {
	b.extra = append(b.extra, func(b *Builder) { b.ref(tagInterfaceMethodref, owner, name, descriptor) })
	return b
}

// MethodHandle adds a CONSTANT_MethodHandle to a static method.
func (b *Builder) MethodHandle(owner, name, descriptor string) *Builder {
	b.extra = append(b.extra, func(b *Builder) {
		ref := b.ref(tagMethodref, owner, name, descriptor)
		b.constant(fmt.Sprintf("mh:%d", ref), func(w *bytes.Buffer) {
			w.WriteByte(tagMethodHandle)
			w.WriteByte(6) // REF_invokeStatic
			writeU2(w, ref)
		}, 1)
	})
	return b
}

// MethodType adds a CONSTANT_MethodType entry.
func (b *Builder) MethodType(descriptor string) *Builder {
	b.extra = append(b.extra, func(b *Builder) {
		desc := b.Utf8(descriptor)
		b.constant("mt:"+descriptor, func(w *bytes.Buffer) {
			w.WriteByte(tagMethodType)
			writeU2(w, desc)
		}, 1)
	})
	return b
}

// InvokeDynamic adds a CONSTANT_InvokeDynamic entry with the given call site descriptor.
func (b *Builder) InvokeDynamic(name, descriptor string) *Builder {
	b.extra = append(b.extra, func(b *Builder) {
		nat := b.nameAndType(name, descriptor)
		b.constant(fmt.Sprintf("indy:%d", nat), func(w *bytes.Buffer) {
			w.WriteByte(tagInvokeDynamic)
			writeU2(w, 0)
			writeU2(w, nat)
		}, 1)
	})
	return b
}

// StringConst adds a CONSTANT_String entry.
func (b *Builder) StringConst(s string) *Builder {
	b.extra = append(b.extra, func(b *Builder) { b.StringEntry(s) })
	return b
}

// LongConst adds a CONSTANT_Long entry, which occupies two constant pool slots.
func (b *Builder) LongConst(v int64) *Builder {
	b.extra = append(b.extra, func(b *Builder) { b.Long(v) })
	return b
}

// Bytes serializes the class file.
func (b *Builder) Bytes() []byte {
	b.pool.Reset()
	b.count = 1
	b.index = make(map[string]uint16)

	var body bytes.Buffer
	writeU2(&body, 0x0021) // ACC_PUBLIC | ACC_SUPER
	writeU2(&body, b.Class(b.name))
	if b.super == "" {
		writeU2(&body, 0)
	} else {
		writeU2(&body, b.Class(b.super))
	}
	writeU2(&body, uint16(len(b.interfaces)))
	for _, i := range b.interfaces {
		writeU2(&body, b.Class(i))
	}
	for _, members := range [][]member{b.fields, b.methods} {
		writeU2(&body, uint16(len(members)))
		for _, m := range members {
			writeU2(&body, 0x0001)
			writeU2(&body, b.Utf8(m.name))
			writeU2(&body, b.Utf8(m.descriptor))
			b.writeAttributes(&body, m.attributes)
		}
	}
	b.writeAttributes(&body, b.attributes)
	for _, fn := range b.extra {
		fn(b)
	}

	var out bytes.Buffer
	writeU4(&out, Magic)
	writeU2(&out, 0)  // minor
	writeU2(&out, 61) // Java 17
	writeU2(&out, b.count)
	out.Write(b.pool.Bytes())
	out.Write(body.Bytes())
	return out.Bytes()
}

func (b *Builder) writeAttributes(w *bytes.Buffer, attrs []Attribute) {
	writeU2(w, uint16(len(attrs)))
	for _, a := range attrs {
		body := a.body(b)
		writeU2(w, b.Utf8(a.name))
		writeU4(w, uint32(len(body)))
		w.Write(body)
	}
}

// constant interns an entry under key, writing it with write. slots is 2 for Long and Double.
func (b *Builder) constant(key string, write func(*bytes.Buffer), slots uint16) uint16 {
	if idx, ok := b.index[key]; ok {
		return idx
	}
	idx := b.count
	write(&b.pool)
	b.count += slots
	b.index[key] = idx
	return idx
}

// Utf8 interns a CONSTANT_Utf8 entry. Characters outside ASCII are written in modified UTF-8.
func (b *Builder) Utf8(s string) uint16 {
	return b.constant("utf8:"+s, func(w *bytes.Buffer) {
		enc := EncodeModifiedUTF8(s)
		w.WriteByte(tagUtf8)
		writeU2(w, uint16(len(enc)))
		w.Write(enc)
	}, 1)
}

// Class interns a CONSTANT_Class entry.
func (b *Builder) Class(name string) uint16 {
	utf := b.Utf8(name)
	return b.constant("class:"+name, func(w *bytes.Buffer) {
		w.WriteByte(tagClass)
		writeU2(w, utf)
	}, 1)
}

// StringEntry interns a CONSTANT_String entry.
func (b *Builder) StringEntry(s string) uint16 {
	utf := b.Utf8(s)
	return b.constant("string:"+s, func(w *bytes.Buffer) {
		w.WriteByte(tagString)
		writeU2(w, utf)
	}, 1)
}

// Integer interns a CONSTANT_Integer entry.
func (b *Builder) Integer(v int32) uint16 {
	return b.constant(fmt.Sprintf("int:%d", v), func(w *bytes.Buffer) {
		w.WriteByte(tagInteger)
		writeU4(w, uint32(v))
	}, 1)
}

// Float interns a CONSTANT_Float entry.
func (b *Builder) Float(v float32) uint16 {
	return b.constant(fmt.Sprintf("float:%v", v), func(w *bytes.Buffer) {
		w.WriteByte(tagFloat)
		writeU4(w, math.Float32bits(v))
	}, 1)
}

// Long interns a CONSTANT_Long entry.
func (b *Builder) Long(v int64) uint16 {
	return b.constant(fmt.Sprintf("long:%d", v), func(w *bytes.Buffer) {
		w.WriteByte(tagLong)
		_ = binary.Write(w, binary.BigEndian, v)
	}, 2)
}

// Double interns a CONSTANT_Double entry.
func (b *Builder) Double(v float64) uint16 {
	return b.constant(fmt.Sprintf("double:%v", v), func(w *bytes.Buffer) {
		w.WriteByte(tagDouble)
		_ = binary.Write(w, binary.BigEndian, math.Float64bits(v))
	}, 2)
}

func (b *Builder) nameAndType(name, descriptor string) uint16 {
	n, d := b.Utf8(name), b.Utf8(descriptor)
	return b.constant(fmt.Sprintf("nat:%d:%d", n, d), func(w *bytes.Buffer) {
		w.WriteByte(tagNameAndType)
		writeU2(w, n)
		writeU2(w, d)
	}, 1)
}

func (b *Builder) ref(tag uint8, owner, name, descriptor string) uint16 {
	class := b.Class(owner)
	nat := b.nameAndType(name, descriptor)
	return b.constant(fmt.Sprintf("ref:%d:%d:%d", tag, class, nat), func(w *bytes.Buffer) {
		w.WriteByte(tag)
		writeU2(w, class)
		writeU2(w, nat)
	}, 1)
}

// EncodeModifiedUTF8 encodes s the way CONSTANT_Utf8 entries store strings.
func EncodeModifiedUTF8(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r != 0 && r < 0x80:
			out = append(out, byte(r))
		case r < 0x800:
			out = append(out, byte(0xC0|r>>6), byte(0x80|r&0x3F))
		case r < 0x10000:
			out = append(out, byte(0xE0|r>>12), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
		default:
			r -= 0x10000
			for _, u := range []rune{0xD800 + (r >> 10), 0xDC00 + (r & 0x3FF)} {
				out = append(out, byte(0xE0|u>>12), byte(0x80|(u>>6)&0x3F), byte(0x80|u&0x3F))
			}
		}
	}
	return out
}

func writeU2(w *bytes.Buffer, v uint16) {
	_ = binary.Write(w, binary.BigEndian, v)
}

func writeU4(w *bytes.Buffer, v uint32) {
	_ = binary.Write(w, binary.BigEndian, v)
}
