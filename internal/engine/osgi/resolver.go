package osgi

import (
	"slices"

	"go.trai.ch/bundler/internal/core/domain"
)

// Resolution is the outcome of matching referenced packages against a catalog.
type Resolution struct {
	// Imports holds one entry per referenced, non-local package found in the catalog.
	Imports map[string]domain.ResolvedImport
	// Unresolved lists, sorted, the referenced non-local packages no provider exports.
	Unresolved []string
}

// Resolve computes the imports of a tally. Packages the tally defines are never imported.
// A package missing from the catalog is reported in Unresolved rather than failing.
func Resolve(tally *domain.PackageTally, catalog *Catalog) Resolution {
	res := Resolution{Imports: make(map[string]domain.ResolvedImport)}
	for _, pkg := range tally.ReferencedPackages() {
		if tally.IsDefined(pkg) {
			continue
		}
		entry, ok := catalog.Lookup(pkg)
		if !ok {
			res.Unresolved = append(res.Unresolved, pkg)
			continue
		}
		res.Imports[pkg] = domain.ResolvedImport{
			PackageName: pkg,
			Version:     entry.Version,
			HasVersion:  entry.HasVersion,
			Provider:    entry.Provider,
		}
	}
	slices.Sort(res.Unresolved)
	return res
}

// ReportableUnresolved filters out platform packages, which every framework supplies.
func (r Resolution) ReportableUnresolved() []string {
	out := make([]string, 0, len(r.Unresolved))
	for _, pkg := range r.Unresolved {
		if !domain.IsPlatformPackage(pkg) {
			out = append(out, pkg)
		}
	}
	return out
}
