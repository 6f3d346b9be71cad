package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/bundler/internal/core/domain"
)

func typeMeta(owned string, refs ...string) domain.TypeMetadata {
	set := make(map[domain.PackageName]struct{}, len(refs))
	for _, r := range refs {
		set[domain.NewPackageName(r)] = struct{}{}
	}
	return domain.TypeMetadata{OwnedPackage: domain.NewPackageName(owned), ReferencedPackages: set}
}

func definedSet(t *domain.PackageTally) []string {
	out := make([]string, 0)
	for p := range t.DefinedPackages() {
		out = append(out, p)
	}
	return out
}

func TestFromAnalyzedTypes(t *testing.T) {
	tally := domain.FromAnalyzedTypes([]domain.TypeMetadata{
		typeMeta("com.a", "com.b", "java.util"),
		typeMeta("com.a", "com.c"),
		typeMeta("com.d", "com.a"),
	}, domain.NewVersionInfo("1.0.0"))

	assert.Equal(t, map[string]domain.VersionInfo{
		"com.a": domain.NewVersionInfo("1.0.0"),
		"com.d": domain.NewVersionInfo("1.0.0"),
	}, tally.DefinedPackages())
	// Overlap with defined packages is kept; filtering happens during resolution.
	assert.Equal(t, []string{"com.a", "com.b", "com.c", "java.util"}, tally.ReferencedPackages())
	assert.True(t, tally.IsDefined("com.d"))
	assert.False(t, tally.IsDefined("com.b"))
}

func TestExportedPackages_ExcludesUnnamed(t *testing.T) {
	tally := domain.FromAnalyzedTypes([]domain.TypeMetadata{typeMeta(""), typeMeta("com.a")}, domain.NoVersion())

	assert.True(t, tally.IsDefined(""))
	assert.Equal(t, map[string]domain.VersionInfo{"com.a": domain.NoVersion()}, tally.ExportedPackages())
}

func TestCombine_AssociativeAndCommutative(t *testing.T) {
	a := domain.FromAnalyzedTypes([]domain.TypeMetadata{typeMeta("com.a", "com.b", "org.x")}, domain.NewVersionInfo("1.0.0"))
	b := domain.FromAnalyzedTypes([]domain.TypeMetadata{typeMeta("com.b", "com.c")}, domain.NoVersion())
	c := domain.FromAnalyzedTypes([]domain.TypeMetadata{typeMeta("com.c", "org.y"), typeMeta("com.a")}, domain.NewVersionInfo("2.0.0"))

	groupings := []*domain.PackageTally{
		a.Combine(b).Combine(c),
		a.Combine(b.Combine(c)),
		c.Combine(a).Combine(b),
		b.Combine(c.Combine(a)),
		domain.CombineAll(c, b, a),
		domain.CombineAll(b, a, c),
	}
	want := groupings[0]
	for _, got := range groupings[1:] {
		assert.ElementsMatch(t, definedSet(want), definedSet(got))
		assert.Equal(t, want.ReferencedPackages(), got.ReferencedPackages())
	}
}

func TestCombine_FirstVersionWins(t *testing.T) {
	first := domain.FromAnalyzedTypes([]domain.TypeMetadata{typeMeta("com.shared")}, domain.NewVersionInfo("1.0.0"))
	second := domain.FromAnalyzedTypes([]domain.TypeMetadata{typeMeta("com.shared")}, domain.NewVersionInfo("2.0.0"))
	untagged := domain.FromAnalyzedTypes([]domain.TypeMetadata{typeMeta("com.shared")}, domain.NoVersion())

	combined := domain.CombineAll(untagged, first, second)

	assert.Equal(t, domain.NewVersionInfo("1.0.0"), combined.DefinedPackages()["com.shared"])
	assert.Equal(t, []domain.VersionConflict{{Package: "com.shared", Kept: "1.0.0", Rejected: "2.0.0"}}, combined.Conflicts())

	// Conflicts survive further combination.
	assert.Len(t, combined.Combine(domain.NewPackageTally()).Conflicts(), 1)
	// Inputs are never mutated.
	assert.Empty(t, first.Conflicts())
	assert.Equal(t, domain.NoVersion(), untagged.DefinedPackages()["com.shared"])
}

func TestCombineAll_Empty(t *testing.T) {
	tally := domain.CombineAll()
	assert.Empty(t, tally.DefinedPackages())
	assert.Empty(t, tally.ReferencedPackages())
}
