// Package classfile extracts package-level dependencies from compiled JVM class files.
//
// Analysis is purely structural: the constant pool, member descriptors, attributes,
// annotations and generic signatures are decoded into a closed set of reference
// records which are folded into the set of packages the type depends on.
package classfile

import "go.trai.ch/bundler/internal/core/domain"

const magic = 0xCAFEBABE

// Analyze parses one class file and returns the package it defines together with
// every other package it references. Malformed input fails with domain.ErrMalformedType.
func Analyze(data []byte) (domain.TypeMetadata, error) {
	name, records, err := parse(data)
	if err != nil {
		return domain.TypeMetadata{}, err
	}

	owned := domain.PackageOfClass(name)
	referenced, err := foldPackages(records, owned)
	if err != nil {
		return domain.TypeMetadata{}, err
	}

	return domain.TypeMetadata{
		Name:               name,
		OwnedPackage:       owned,
		ReferencedPackages: referenced,
	}, nil
}

// parse decodes the class file structure and returns the type's internal name and its records.
func parse(data []byte) (string, []record, error) {
	r := newReader(data)
	if m := r.u4(); r.err == nil && m != magic {
		return "", nil, malformed("bad magic 0x%08x", m)
	}
	r.skip(4) // minor_version, major_version

	cp := readConstantPool(r)
	if r.err != nil {
		return "", nil, r.err
	}
	p := &parser{cp: cp}
	if err := cp.visit(p.emit); err != nil {
		return "", nil, err
	}

	r.skip(2) // access_flags
	thisIdx := r.u2()
	superIdx := r.u2()
	if r.err != nil {
		return "", nil, r.err
	}
	name, err := cp.className(thisIdx)
	if err != nil {
		return "", nil, err
	}
	if !validInternalName(name) {
		return "", nil, malformed("invalid this_class name %q", name)
	}
	if superIdx != 0 {
		if _, err := cp.className(superIdx); err != nil {
			return "", nil, err
		}
	}

	interfaces := int(r.u2())
	for i := 0; i < interfaces && r.err == nil; i++ {
		p.checkIndex(r, tagClass)
	}

	p.members(r, kindFieldRef)
	p.members(r, kindMethodRef)
	p.attributes(r)

	if r.err != nil {
		return "", nil, r.err
	}
	if r.remaining() != 0 {
		return "", nil, malformed("%d trailing bytes after class structure", r.remaining())
	}
	return name, p.records, nil
}

// members reads the fields or methods table; descriptors are emitted as kind.
func (p *parser) members(r *reader, kind recordKind) {
	count := int(r.u2())
	for i := 0; i < count && r.err == nil; i++ {
		r.skip(2) // access_flags
		p.checkIndex(r, tagUtf8)
		p.utf8(r, kind)
		p.attributes(r)
	}
}
