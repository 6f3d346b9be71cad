package classgen

import "bytes"

// Attribute is a named attribute whose body is rendered against the builder's constant pool.
type Attribute struct {
	name string
	body func(*Builder) []byte
}

// Raw returns an attribute with a fixed body.
func Raw(name string, body []byte) Attribute {
	return Attribute{name: name, body: func(*Builder) []byte { return body }}
}

// Signature returns a Signature attribute.
func Signature(sig string) Attribute {
	return Attribute{name: "Signature", body: func(b *Builder) []byte {
		var w bytes.Buffer
		writeU2(&w, b.Utf8(sig))
		return w.Bytes()
	}}
}

// Annotations returns a RuntimeVisibleAnnotations or RuntimeInvisibleAnnotations attribute.
func Annotations(visible bool, anns ...Annotation) Attribute {
	name := "RuntimeInvisibleAnnotations"
	if visible {
		name = "RuntimeVisibleAnnotations"
	}
	return Attribute{name: name, body: func(b *Builder) []byte {
		var w bytes.Buffer
		writeU2(&w, uint16(len(anns)))
		for _, a := range anns {
			a.write(b, &w)
		}
		return w.Bytes()
	}}
}

// ParameterAnnotations returns a RuntimeVisibleParameterAnnotations attribute with one
// annotation list per parameter.
func ParameterAnnotations(params ...[]Annotation) Attribute {
	return Attribute{name: "RuntimeVisibleParameterAnnotations", body: func(b *Builder) []byte {
		var w bytes.Buffer
		w.WriteByte(byte(len(params)))
		for _, anns := range params {
			writeU2(&w, uint16(len(anns)))
			for _, a := range anns {
				a.write(b, &w)
			}
		}
		return w.Bytes()
	}}
}

// TypeAnnotation is a type annotation; TargetInfo holds the raw target_info bytes for Target.
type TypeAnnotation struct {
	Target     byte
	TargetInfo []byte
	Annotation Annotation
}

// TypeAnnotations returns a RuntimeVisibleTypeAnnotations attribute.
func TypeAnnotations(anns ...TypeAnnotation) Attribute {
	return Attribute{name: "RuntimeVisibleTypeAnnotations", body: func(b *Builder) []byte {
		var w bytes.Buffer
		writeU2(&w, uint16(len(anns)))
		for _, a := range anns {
			w.WriteByte(a.Target)
			w.Write(a.TargetInfo)
			w.WriteByte(0) // empty type_path
			a.Annotation.write(b, &w)
		}
		return w.Bytes()
	}}
}

// AnnotationDefault returns an AnnotationDefault attribute.
func AnnotationDefault(v ElementValue) Attribute {
	return Attribute{name: "AnnotationDefault", body: func(b *Builder) []byte {
		var w bytes.Buffer
		v(b, &w)
		return w.Bytes()
	}}
}

// Code returns a Code attribute with a single return instruction and the given nested attributes.
func Code(attrs ...Attribute) Attribute {
	return Attribute{name: "Code", body: func(b *Builder) []byte {
		var w bytes.Buffer
		writeU2(&w, 1) // max_stack
		writeU2(&w, 1) // max_locals
		writeU4(&w, 1)
		w.WriteByte(0xB1) // return
		writeU2(&w, 0)    // exception table
		b.writeAttributes(&w, attrs)
		return w.Bytes()
	}}
}

// EnclosingMethod returns an EnclosingMethod attribute naming the method of owner the class is declared in.
func EnclosingMethod(owner, name, descriptor string) Attribute {
	return Attribute{name: "EnclosingMethod", body: func(b *Builder) []byte {
		var w bytes.Buffer
		writeU2(&w, b.Class(owner))
		writeU2(&w, b.nameAndType(name, descriptor))
		return w.Bytes()
	}}
}

// LocalVariable is one entry of a local variable table.
type LocalVariable struct {
	Name string
	// Descriptor is a field descriptor, or a signature in a LocalVariableTypeTable.
	Descriptor string
}

// LocalVariables returns a LocalVariableTable attribute.
func LocalVariables(vars ...LocalVariable) Attribute {
	return localVariables("LocalVariableTable", vars)
}

// LocalVariableTypes returns a LocalVariableTypeTable attribute.
func LocalVariableTypes(vars ...LocalVariable) Attribute {
	return localVariables("LocalVariableTypeTable", vars)
}

func localVariables(name string, vars []LocalVariable) Attribute {
	return Attribute{name: name, body: func(b *Builder) []byte {
		var w bytes.Buffer
		writeU2(&w, uint16(len(vars)))
		for i, v := range vars {
			writeU2(&w, 0)
			writeU2(&w, 1)
			writeU2(&w, b.Utf8(v.Name))
			writeU2(&w, b.Utf8(v.Descriptor))
			writeU2(&w, uint16(i))
		}
		return w.Bytes()
	}}
}

// RecordComponent is one component of a record class.
type RecordComponent struct {
	Name       string
	Descriptor string
	Attributes []Attribute
}

// Record returns a Record attribute.
func Record(components ...RecordComponent) Attribute {
	return Attribute{name: "Record", body: func(b *Builder) []byte {
		var w bytes.Buffer
		writeU2(&w, uint16(len(components)))
		for _, c := range components {
			writeU2(&w, b.Utf8(c.Name))
			writeU2(&w, b.Utf8(c.Descriptor))
			b.writeAttributes(&w, c.Attributes)
		}
		return w.Bytes()
	}}
}

// Annotation is an annotation instance; Type is a field descriptor such as "Lcom/x/Ann;".
type Annotation struct {
	Type   string
	Values []Pair
}

// Pair is one element-value pair of an annotation.
type Pair struct {
	Name  string
	Value ElementValue
}

func (a Annotation) write(b *Builder, w *bytes.Buffer) {
	writeU2(w, b.Utf8(a.Type))
	writeU2(w, uint16(len(a.Values)))
	for _, p := range a.Values {
		writeU2(w, b.Utf8(p.Name))
		p.Value(b, w)
	}
}

// ElementValue renders one annotation element value.
type ElementValue func(*Builder, *bytes.Buffer)

// Int returns an int element value.
func Int(v int32) ElementValue {
	return func(b *Builder, w *bytes.Buffer) {
		w.WriteByte('I')
		writeU2(w, b.Integer(v))
	}
}

// Str returns a String element value.
func Str(s string) ElementValue {
	return func(b *Builder, w *bytes.Buffer) {
		w.WriteByte('s')
		writeU2(w, b.Utf8(s))
	}
}

// Enum returns an enum constant element value; typeDescriptor is e.g. "Lcom/x/Color;".
func Enum(typeDescriptor, constant string) ElementValue {
	return func(b *Builder, w *bytes.Buffer) {
		w.WriteByte('e')
		writeU2(w, b.Utf8(typeDescriptor))
		writeU2(w, b.Utf8(constant))
	}
}

// ClassValue returns a class literal element value; descriptor is a return descriptor.
func ClassValue(descriptor string) ElementValue {
	return func(b *Builder, w *bytes.Buffer) {
		w.WriteByte('c')
		writeU2(w, b.Utf8(descriptor))
	}
}

// Nested returns an annotation element value.
func Nested(a Annotation) ElementValue {
	return func(b *Builder, w *bytes.Buffer) {
		w.WriteByte('@')
		a.write(b, w)
	}
}

// Array returns an array element value.
func Array(values ...ElementValue) ElementValue {
	return func(b *Builder, w *bytes.Buffer) {
		w.WriteByte('[')
		writeU2(w, uint16(len(values)))
		for _, v := range values {
			v(b, w)
		}
	}
}
