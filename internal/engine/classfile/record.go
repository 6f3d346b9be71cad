package classfile

import (
	"errors"
	"fmt"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/zerr"
)

// recordKind is the closed set of symbolic references a class file can carry.
type recordKind uint8

const (
	// kindClassRef is an internal class name or array descriptor from a Class constant.
	kindClassRef recordKind = iota + 1
	// kindFieldRef is a field descriptor.
	kindFieldRef
	// kindMethodRef is a method descriptor.
	kindMethodRef
	// kindAnnotationRef is an annotation, enum or class-literal descriptor found in annotation data.
	kindAnnotationRef
	// kindSignatureRef is a generic signature string.
	kindSignatureRef
)

func (k recordKind) String() string {
	switch k {
	case kindClassRef:
		return "class"
	case kindFieldRef:
		return "field"
	case kindMethodRef:
		return "method"
	case kindAnnotationRef:
		return "annotation"
	case kindSignatureRef:
		return "signature"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// record is one symbolic reference extracted from a class file.
type record struct {
	kind  recordKind
	value string
}

// classNames yields the internal names of every class the record mentions.
func (r record) classNames(yield func(string)) error {
	switch r.kind {
	case kindClassRef:
		if len(r.value) > 0 && r.value[0] == '[' {
			return parseFieldDescriptor(r.value, yield)
		}
		if !validInternalName(r.value) {
			return malformed("invalid class name %q", r.value)
		}
		yield(r.value)
		return nil
	case kindFieldRef:
		return parseFieldDescriptor(r.value, yield)
	case kindMethodRef:
		return parseMethodDescriptor(r.value, yield)
	case kindAnnotationRef:
		if r.value == "V" {
			return nil
		}
		return parseFieldDescriptor(r.value, yield)
	case kindSignatureRef:
		return parseSignature(r.value, yield)
	default:
		return malformed("unknown record kind %s", r.kind)
	}
}

// foldPackages maps every record to the packages it references, excluding owned and
// the unnamed package.
func foldPackages(records []record, owned domain.PackageName) (map[domain.PackageName]struct{}, error) {
	out := make(map[domain.PackageName]struct{})
	for _, rec := range records {
		err := rec.classNames(func(name string) {
			pkg := domain.PackageOfClass(name)
			if pkg.IsUnnamed() || pkg == owned {
				return
			}
			out[pkg] = struct{}{}
		})
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, fmt.Sprintf("invalid %s reference", rec.kind)), "value", rec.value)
		}
	}
	return out, nil
}

func malformed(format string, args ...any) error {
	return errors.Join(domain.ErrMalformedType, zerr.New(fmt.Sprintf(format, args...)))
}
