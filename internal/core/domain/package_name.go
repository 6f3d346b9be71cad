package domain

import (
	"strings"
	"unique"
)

// PackageName is a value object that wraps a unique.Handle[string] holding a dotted package name.
// Package names repeat across every type of an archive, so they are interned.
type PackageName struct {
	h unique.Handle[string]
}

// NewPackageName creates a new PackageName from a dotted package name.
func NewPackageName(s string) PackageName {
	if s == "" {
		return PackageName{}
	}
	return PackageName{
		h: unique.Make(s),
	}
}

// PackageOfClass returns the package of a binary class name in internal form ("com/x/Foo")
// or dotted form ("com.x.Foo"). The unnamed package is returned as the zero PackageName.
func PackageOfClass(className string) PackageName {
	i := strings.LastIndexAny(className, "/.")
	if i <= 0 {
		return PackageName{}
	}
	return NewPackageName(strings.ReplaceAll(className[:i], "/", "."))
}

// String returns the dotted package name.
func (p PackageName) String() string {
	var zero unique.Handle[string]
	if p.h == zero {
		return ""
	}
	return p.h.Value()
}

// IsUnnamed reports whether p is the unnamed (default) package.
func (p PackageName) IsUnnamed() bool {
	return p.String() == ""
}

// MarshalText implements encoding.TextMarshaler.
func (p PackageName) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PackageName) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*p = PackageName{}
		return nil
	}
	p.h = unique.Make(string(text))
	return nil
}

// IsPlatformPackage reports whether the package is delegated to the boot class loader
// by every OSGi framework and therefore never needs an import.
func IsPlatformPackage(name string) bool {
	return name == "java" || strings.HasPrefix(name, "java.")
}
