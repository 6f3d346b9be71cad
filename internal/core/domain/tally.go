package domain

import (
	"maps"
	"slices"
	"strings"
)

// TypeMetadata is the result of analyzing one compiled type.
type TypeMetadata struct {
	// Name is the binary name of the type in internal form (e.g. "com/x/Foo").
	Name string
	// OwnedPackage is the package the type belongs to.
	OwnedPackage PackageName
	// ReferencedPackages holds every other package the type symbolically references.
	ReferencedPackages map[PackageName]struct{}
}

// VersionConflict records a package defined by two sources with different version tags.
type VersionConflict struct {
	Package  string
	Kept     string
	Rejected string
}

// PackageTally aggregates the packages defined and referenced by a set of compiled types.
//
// A tally may list a package as both defined and referenced; import computation
// filters defined packages out, the tally itself does not.
type PackageTally struct {
	defined    map[PackageName]VersionInfo
	referenced map[PackageName]struct{}
	conflicts  []VersionConflict
}

// NewPackageTally creates an empty tally.
func NewPackageTally() *PackageTally {
	return &PackageTally{
		defined:    make(map[PackageName]VersionInfo),
		referenced: make(map[PackageName]struct{}),
	}
}

// FromAnalyzedTypes groups types by their owning package and unions their references.
// Every defined package is tagged with version.
func FromAnalyzedTypes(types []TypeMetadata, version VersionInfo) *PackageTally {
	t := NewPackageTally()
	for i := range types {
		t.defined[types[i].OwnedPackage] = version
		for p := range types[i].ReferencedPackages {
			t.referenced[p] = struct{}{}
		}
	}
	return t
}

// Combine returns a new tally holding the union of t and other.
//
// For a package defined by both, the first present version tag wins; a later,
// different tag is recorded as a conflict. The receiver is left untouched.
func (t *PackageTally) Combine(other *PackageTally) *PackageTally {
	out := NewPackageTally()
	out.absorb(t)
	out.absorb(other)
	return out
}

// CombineAll folds tallies left to right. An empty input yields an empty tally.
func CombineAll(tallies ...*PackageTally) *PackageTally {
	out := NewPackageTally()
	for _, t := range tallies {
		out.absorb(t)
	}
	return out
}

func (t *PackageTally) absorb(other *PackageTally) {
	if other == nil {
		return
	}
	t.conflicts = append(t.conflicts, other.conflicts...)

	for _, pkg := range sortedNames(other.defined) {
		incoming := other.defined[pkg]
		existing, ok := t.defined[pkg]
		switch {
		case !ok, !existing.HasVersion:
			t.defined[pkg] = incoming
		case incoming.HasVersion && incoming.Version != existing.Version:
			t.conflicts = append(t.conflicts, VersionConflict{
				Package:  pkg.String(),
				Kept:     existing.Version,
				Rejected: incoming.Version,
			})
		}
	}
	for pkg := range other.referenced {
		t.referenced[pkg] = struct{}{}
	}
}

// IsDefined reports whether the tally defines the named package.
func (t *PackageTally) IsDefined(name string) bool {
	_, ok := t.defined[NewPackageName(name)]
	return ok
}

// DefinedPackages returns the defined packages with their version tags.
func (t *PackageTally) DefinedPackages() map[string]VersionInfo {
	out := make(map[string]VersionInfo, len(t.defined))
	for p, v := range t.defined {
		out[p.String()] = v
	}
	return out
}

// ReferencedPackages returns the referenced package names in sorted order.
func (t *PackageTally) ReferencedPackages() []string {
	out := make([]string, 0, len(t.referenced))
	for p := range t.referenced {
		out = append(out, p.String())
	}
	slices.Sort(out)
	return out
}

// ExportedPackages returns the packages this artifact declares as exports:
// every defined package except the unnamed package.
func (t *PackageTally) ExportedPackages() map[string]VersionInfo {
	out := t.DefinedPackages()
	delete(out, "")
	return out
}

// Conflicts returns the version conflicts met while combining, in encounter order.
func (t *PackageTally) Conflicts() []VersionConflict {
	return slices.Clone(t.conflicts)
}

func sortedNames(m map[PackageName]VersionInfo) []PackageName {
	names := slices.Collect(maps.Keys(m))
	slices.SortFunc(names, func(a, b PackageName) int {
		return strings.Compare(a.String(), b.String())
	})
	return names
}
