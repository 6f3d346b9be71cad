package osgi_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/engine/osgi"
)

func typeIn(pkg string, refs ...string) domain.TypeMetadata {
	set := make(map[domain.PackageName]struct{}, len(refs))
	for _, r := range refs {
		set[domain.NewPackageName(r)] = struct{}{}
	}
	return domain.TypeMetadata{Name: pkg + ".T", OwnedPackage: domain.NewPackageName(pkg), ReferencedPackages: set}
}

func TestResolve(t *testing.T) {
	tally := domain.FromAnalyzedTypes([]domain.TypeMetadata{
		typeIn("com.x", "com.x", "com.y", "com.z", "java.util", "org.missing"),
	}, domain.NewVersionInfo("1.0.0"))

	catalog, err := osgi.NewCatalog([]osgi.Provider{
		{Name: "provider", Exports: `com.y;version="2.0.0",com.z,com.x;version="9.9.9"`},
	})
	require.NoError(t, err)

	res := osgi.Resolve(tally, catalog)

	assert.Equal(t, map[string]domain.ResolvedImport{
		"com.y": {PackageName: "com.y", Version: "2.0.0", HasVersion: true, Provider: "provider"},
		"com.z": {PackageName: "com.z", Provider: "provider"},
	}, res.Imports)
	assert.Equal(t, []string{"java.util", "org.missing"}, res.Unresolved)
	assert.Equal(t, []string{"org.missing"}, res.ReportableUnresolved())
	assert.Equal(t, `com.y;version="2.0.0"`, res.Imports["com.y"].String())
	assert.Equal(t, "com.z", res.Imports["com.z"].String())
}

func TestResolve_DefinedPackagesAreNeverImported(t *testing.T) {
	// com.b is referenced by one source and defined by another.
	a := domain.FromAnalyzedTypes([]domain.TypeMetadata{typeIn("com.a", "com.b", "com.c")}, domain.NoVersion())
	b := domain.FromAnalyzedTypes([]domain.TypeMetadata{typeIn("com.b", "com.a")}, domain.NoVersion())
	catalog, err := osgi.NewCatalog([]osgi.Provider{{Name: "p", Exports: "com.a,com.b,com.c"}})
	require.NoError(t, err)

	res := osgi.Resolve(a.Combine(b), catalog)

	assert.Len(t, res.Imports, 1)
	assert.Contains(t, res.Imports, "com.c")
	assert.Empty(t, res.Unresolved)
}

func TestResolve_RoundTripOfOwnExports(t *testing.T) {
	tally := domain.FromAnalyzedTypes([]domain.TypeMetadata{
		typeIn("com.x", "com.x.sub", "com.y"),
		typeIn("com.x.sub", "com.x"),
	}, domain.NewVersionInfo("3.1.0"))

	var clauses []string
	for pkg, v := range tally.ExportedPackages() {
		clauses = append(clauses, domain.RenderExport(pkg, v))
	}
	catalog, err := osgi.NewCatalog([]osgi.Provider{{Name: "self", Exports: strings.Join(clauses, ",")}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"com.x", "com.x.sub"}, catalog.Packages())

	res := osgi.Resolve(tally, catalog)
	assert.Empty(t, res.Imports)
	assert.Equal(t, []string{"com.y"}, res.Unresolved)
}
