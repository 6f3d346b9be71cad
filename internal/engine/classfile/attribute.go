package classfile

// Attribute names the analyzer descends into. Every other attribute is skipped.
const (
	attrCode                                 = "Code"
	attrSignature                            = "Signature"
	attrRecord                               = "Record"
	attrAnnotationDefault                    = "AnnotationDefault"
	attrLocalVariableTable                   = "LocalVariableTable"
	attrLocalVariableTypeTable               = "LocalVariableTypeTable"
	attrRuntimeVisibleAnnotations            = "RuntimeVisibleAnnotations"
	attrRuntimeInvisibleAnnotations          = "RuntimeInvisibleAnnotations"
	attrRuntimeVisibleParameterAnnotations   = "RuntimeVisibleParameterAnnotations"
	attrRuntimeInvisibleParameterAnnotations = "RuntimeInvisibleParameterAnnotations"
	attrRuntimeVisibleTypeAnnotations        = "RuntimeVisibleTypeAnnotations"
	attrRuntimeInvisibleTypeAnnotations      = "RuntimeInvisibleTypeAnnotations"
)

// parser walks the structures of one class file and collects its records.
type parser struct {
	cp      *constantPool
	records []record
}

func (p *parser) emit(kind recordKind, value string) {
	p.records = append(p.records, record{kind: kind, value: value})
}

// utf8 reads a u2 index from r and emits the Utf8 constant it names as kind.
func (p *parser) utf8(r *reader, kind recordKind) {
	idx := r.u2()
	if r.err != nil {
		return
	}
	s, err := p.cp.utf8At(idx)
	if err != nil {
		r.err = err
		return
	}
	p.emit(kind, s)
}

// checkIndex reads a u2 index from r and validates it against tags.
func (p *parser) checkIndex(r *reader, tags ...uint8) {
	idx := r.u2()
	if r.err != nil {
		return
	}
	if _, err := p.cp.entry(idx, tags...); err != nil {
		r.err = err
	}
}

func (p *parser) attributes(r *reader) {
	count := int(r.u2())
	for i := 0; i < count && r.err == nil; i++ {
		nameIdx := r.u2()
		length := int(r.u4())
		body := r.sub(length)
		if r.err != nil {
			return
		}
		name, err := p.cp.utf8At(nameIdx)
		if err != nil {
			r.err = err
			return
		}
		p.attribute(name, body)
		if body.err != nil {
			r.err = body.err
			return
		}
	}
}

func (p *parser) attribute(name string, r *reader) {
	switch name {
	case attrSignature:
		p.utf8(r, kindSignatureRef)
	case attrCode:
		r.skip(4) // max_stack, max_locals
		r.skip(int(r.u4()))
		r.skip(int(r.u2()) * 8) // exception table; catch types are Class constants
		p.attributes(r)
	case attrLocalVariableTable, attrLocalVariableTypeTable:
		kind := kindFieldRef
		if name == attrLocalVariableTypeTable {
			kind = kindSignatureRef
		}
		count := int(r.u2())
		for i := 0; i < count && r.err == nil; i++ {
			r.skip(4) // start_pc, length
			p.checkIndex(r, tagUtf8)
			p.utf8(r, kind)
			r.skip(2) // index
		}
	case attrRecord:
		count := int(r.u2())
		for i := 0; i < count && r.err == nil; i++ {
			p.checkIndex(r, tagUtf8)
			p.utf8(r, kindFieldRef)
			p.attributes(r)
		}
	case attrRuntimeVisibleAnnotations, attrRuntimeInvisibleAnnotations:
		p.annotations(r)
	case attrRuntimeVisibleParameterAnnotations, attrRuntimeInvisibleParameterAnnotations:
		count := int(r.u1())
		for i := 0; i < count && r.err == nil; i++ {
			p.annotations(r)
		}
	case attrRuntimeVisibleTypeAnnotations, attrRuntimeInvisibleTypeAnnotations:
		count := int(r.u2())
		for i := 0; i < count && r.err == nil; i++ {
			p.typeAnnotation(r)
		}
	case attrAnnotationDefault:
		p.elementValue(r)
	}
}

func (p *parser) annotations(r *reader) {
	count := int(r.u2())
	for i := 0; i < count && r.err == nil; i++ {
		p.annotation(r)
	}
}

func (p *parser) annotation(r *reader) {
	p.utf8(r, kindAnnotationRef)
	pairs := int(r.u2())
	for i := 0; i < pairs && r.err == nil; i++ {
		p.checkIndex(r, tagUtf8)
		p.elementValue(r)
	}
}

func (p *parser) elementValue(r *reader) {
	tag := r.u1()
	if r.err != nil {
		return
	}
	switch tag {
	case 'B', 'C', 'I', 'S', 'Z':
		p.checkIndex(r, tagInteger)
	case 'D':
		p.checkIndex(r, tagDouble)
	case 'F':
		p.checkIndex(r, tagFloat)
	case 'J':
		p.checkIndex(r, tagLong)
	case 's':
		p.checkIndex(r, tagUtf8)
	case 'e':
		p.utf8(r, kindAnnotationRef)
		p.checkIndex(r, tagUtf8)
	case 'c':
		p.utf8(r, kindAnnotationRef)
	case '@':
		p.annotation(r)
	case '[':
		count := int(r.u2())
		for i := 0; i < count && r.err == nil; i++ {
			p.elementValue(r)
		}
	default:
		r.fail("unknown element value tag %q", tag)
	}
}

func (p *parser) typeAnnotation(r *reader) {
	target := r.u1()
	switch {
	case target == 0x00 || target == 0x01 || target == 0x16:
		r.skip(1)
	case target == 0x10 || target == 0x17 || (target >= 0x42 && target <= 0x46):
		r.skip(2)
	case target == 0x11 || target == 0x12:
		r.skip(2)
	case target >= 0x13 && target <= 0x15:
	case target == 0x40 || target == 0x41:
		r.skip(int(r.u2()) * 6)
	case target >= 0x47 && target <= 0x4B:
		r.skip(3)
	default:
		r.fail("unknown type annotation target 0x%02x", target)
		return
	}
	r.skip(int(r.u1()) * 2) // type_path
	p.annotation(r)
}
