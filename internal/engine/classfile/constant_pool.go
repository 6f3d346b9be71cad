package classfile

import "strings"

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
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

// constant is one constant pool slot. The meaning of a and b depends on tag;
// raw holds the undecoded bytes of a Utf8 entry.
type constant struct {
	tag uint8
	a   uint16
	b   uint16
	raw []byte
}

// constantPool is indexed from 1; slot 0 and the slot following a Long or Double are unusable.
type constantPool struct {
	entries []constant
	utf8    map[uint16]string
}

func readConstantPool(r *reader) *constantPool {
	count := r.u2()
	cp := &constantPool{
		entries: make([]constant, count),
		utf8:    make(map[uint16]string),
	}
	if count == 0 {
		r.fail("constant pool count is zero")
		return cp
	}

	for i := 1; i < int(count) && r.err == nil; i++ {
		c := constant{tag: r.u1()}
		switch c.tag {
		case tagUtf8:
			c.raw = r.bytes(int(r.u2()))
		case tagInteger, tagFloat:
			r.skip(4)
		case tagLong, tagDouble:
			r.skip(8)
		case tagClass, tagString, tagMethodType, tagModule, tagPackage:
			c.a = r.u2()
		case tagFieldref, tagMethodref, tagInterfaceMethodref, tagNameAndType, tagDynamic, tagInvokeDynamic:
			c.a = r.u2()
			c.b = r.u2()
		case tagMethodHandle:
			c.a = uint16(r.u1())
			c.b = r.u2()
		default:
			r.fail("unknown constant pool tag %d at index %d", c.tag, i)
		}
		cp.entries[i] = c
		if c.tag == tagLong || c.tag == tagDouble {
			if i+1 >= int(count) {
				r.fail("two-slot constant at index %d overflows the constant pool", i)
			}
			i++
		}
	}
	return cp
}

// entry returns the constant at idx if it carries one of the wanted tags.
func (cp *constantPool) entry(idx uint16, tags ...uint8) (constant, error) {
	if idx == 0 || int(idx) >= len(cp.entries) || cp.entries[idx].tag == 0 {
		return constant{}, malformed("constant pool index %d out of range", idx)
	}
	c := cp.entries[idx]
	for _, t := range tags {
		if c.tag == t {
			return c, nil
		}
	}
	return constant{}, malformed("constant pool index %d has tag %d, want one of %v", idx, c.tag, tags)
}

// utf8At decodes the Utf8 constant at idx.
func (cp *constantPool) utf8At(idx uint16) (string, error) {
	if s, ok := cp.utf8[idx]; ok {
		return s, nil
	}
	c, err := cp.entry(idx, tagUtf8)
	if err != nil {
		return "", err
	}
	s, err := decodeModifiedUTF8(c.raw)
	if err != nil {
		return "", err
	}
	cp.utf8[idx] = s
	return s, nil
}

// className returns the name referenced by the Class constant at idx.
func (cp *constantPool) className(idx uint16) (string, error) {
	c, err := cp.entry(idx, tagClass)
	if err != nil {
		return "", err
	}
	return cp.utf8At(c.a)
}

// descriptorOf returns the descriptor of the NameAndType constant at idx.
func (cp *constantPool) descriptorOf(idx uint16) (string, error) {
	c, err := cp.entry(idx, tagNameAndType)
	if err != nil {
		return "", err
	}
	if _, err := cp.utf8At(c.a); err != nil {
		return "", err
	}
	return cp.utf8At(c.b)
}

// visit validates every cross-reference in the pool and emits the symbolic references it holds.
func (cp *constantPool) visit(emit func(recordKind, string)) error {
	for i := 1; i < len(cp.entries); i++ {
		c := cp.entries[i]
		var err error
		switch c.tag {
		case tagClass:
			var name string
			if name, err = cp.utf8At(c.a); err == nil {
				emit(kindClassRef, name)
			}
		case tagString, tagModule, tagPackage:
			_, err = cp.utf8At(c.a)
		case tagNameAndType:
			var desc string
			if desc, err = cp.descriptorOf(uint16(i)); err == nil {
				if strings.HasPrefix(desc, "(") {
					emit(kindMethodRef, desc)
				} else {
					emit(kindFieldRef, desc)
				}
			}
		case tagFieldref, tagMethodref, tagInterfaceMethodref:
			if _, err = cp.entry(c.a, tagClass); err != nil {
				break
			}
			_, err = cp.descriptorOf(c.b)
		case tagMethodType:
			var desc string
			if desc, err = cp.utf8At(c.a); err == nil {
				emit(kindMethodRef, desc)
			}
		case tagDynamic, tagInvokeDynamic:
			_, err = cp.descriptorOf(c.b)
		case tagMethodHandle:
			if c.a < 1 || c.a > 9 {
				err = malformed("method handle at index %d has reference kind %d", i, c.a)
				break
			}
			_, err = cp.entry(c.b, tagFieldref, tagMethodref, tagInterfaceMethodref)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
