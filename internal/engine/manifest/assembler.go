// Package manifest assembles bundle manifest headers from a module's package analysis.
package manifest

import (
	"maps"
	"slices"
	"strings"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/engine/osgi"
)

// DefaultCreatedBy is the Created-By value used when a module configures none.
const DefaultCreatedBy = "bundler"

// Input is everything header assembly needs from one generation.
type Input struct {
	BundleName    string
	SymbolicName  string
	Vendor        string
	CreatedBy     string
	BundleVersion *string

	// ImportPackage is the manual override declaration; blank means none.
	ImportPackage string

	// Tally is the combined tally of every included source.
	Tally *domain.PackageTally
	// Imports are the resolved imports of the tally.
	Imports map[string]domain.ResolvedImport
	// Included are the embedded artifacts, in the order Bundle-ClassPath lists them.
	Included []domain.Artifact
}

// Assembly is the assembled headers together with the import decisions behind them.
type Assembly struct {
	Headers   domain.Headers
	Imports   map[string]domain.ResolvedImport
	Overrides map[string]domain.ManualOverride
}

// Assemble renders the manifest headers. It performs no I/O; any error aborts
// assembly without a partial result.
func Assemble(in Input) (*Assembly, error) {
	overrides, err := osgi.ParseManualOverrides(in.ImportPackage)
	if err != nil {
		return nil, err
	}

	imports := maps.Clone(in.Imports)
	if imports == nil {
		imports = make(map[string]domain.ResolvedImport)
	}
	for pkg := range overrides {
		delete(imports, pkg)
	}

	bundleVersion, err := domain.BundleVersion(in.BundleVersion)
	if err != nil {
		return nil, err
	}

	createdBy := in.CreatedBy
	if createdBy == "" {
		createdBy = DefaultCreatedBy
	}

	headers := domain.Headers{}
	headers.SetIfNotEmpty(domain.HeaderCreatedBy, createdBy)
	headers.SetIfNotEmpty(domain.HeaderBundleManifestVersion, domain.BundleManifestVersion)
	headers.SetIfNotEmpty(domain.HeaderBundleName, in.BundleName)
	headers.SetIfNotEmpty(domain.HeaderBundleSymbolicName, in.SymbolicName)
	headers.SetIfNotEmpty(domain.HeaderBundleVersion, bundleVersion)
	headers.SetIfNotEmpty(domain.HeaderBundleVendor, in.Vendor)
	headers.SetIfNotEmpty(domain.HeaderBundleClassPath, BundleClassPath(in.Included))
	headers.SetIfNotEmpty(domain.HeaderImportPackage, ImportPackage(overrides, imports))
	headers.SetIfNotEmpty(domain.HeaderExportPackage, ExportPackage(in.Tally))

	return &Assembly{Headers: headers, Imports: imports, Overrides: overrides}, nil
}

// ImportPackage renders overrides and imports as one sorted, comma separated header value.
// Callers remove overridden packages from imports first.
func ImportPackage(overrides map[string]domain.ManualOverride, imports map[string]domain.ResolvedImport) string {
	clauses := make([]string, 0, len(overrides)+len(imports))
	for _, o := range overrides {
		clauses = append(clauses, o.String())
	}
	for _, i := range imports {
		clauses = append(clauses, i.String())
	}
	slices.Sort(clauses)
	return strings.Join(clauses, ",")
}

// ExportPackage renders every package the tally exports, sorted and comma separated.
func ExportPackage(tally *domain.PackageTally) string {
	if tally == nil {
		return ""
	}
	exports := tally.ExportedPackages()
	clauses := make([]string, 0, len(exports))
	for pkg, v := range exports {
		clauses = append(clauses, domain.RenderExport(pkg, v))
	}
	slices.Sort(clauses)
	return strings.Join(clauses, ",")
}

// BundleClassPath renders "." followed by the embedded location of each artifact, in the given order.
func BundleClassPath(included []domain.Artifact) string {
	entries := make([]string, 0, len(included)+1)
	entries = append(entries, ".")
	for _, a := range included {
		entries = append(entries, EmbeddedPath(a))
	}
	return strings.Join(entries, ",")
}

// EmbeddedPath is the archive path an included artifact is stored under.
func EmbeddedPath(a domain.Artifact) string {
	return a.EmbeddedPath()
}
