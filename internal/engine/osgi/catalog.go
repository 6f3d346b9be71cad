package osgi

import (
	"maps"
	"slices"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/zerr"
)

// Provider is one source of export declarations, typically a runtime-provided artifact.
type Provider struct {
	// Name identifies the provider in diagnostics and resolved imports.
	Name string
	// Exports is the provider's Export-Package declaration.
	Exports string
}

// Shadowed records a package export ignored because an earlier provider already exports it.
type Shadowed struct {
	Package  string
	Provider string
	Winner   string
}

// Catalog maps package names to the export entry that declares them.
// It is built once per generation and never shared.
type Catalog struct {
	entries  map[string]domain.ExportEntry
	shadowed []Shadowed
}

// NewCatalog parses every provider's declaration and merges them by package name.
// The first provider to export a package wins, so the result is deterministic only
// for a stable provider order; callers sort providers before building the catalog.
func NewCatalog(providers []Provider) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]domain.ExportEntry)}
	for _, p := range providers {
		entries, err := ParseExports(p.Exports)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid export declaration"), "provider", p.Name)
		}
		for _, e := range entries {
			e.Provider = p.Name
			c.add(e)
		}
	}
	return c, nil
}

func (c *Catalog) add(e domain.ExportEntry) {
	for _, pkg := range e.PackageNames {
		if existing, ok := c.entries[pkg]; ok {
			if existing.Provider != e.Provider {
				c.shadowed = append(c.shadowed, Shadowed{Package: pkg, Provider: e.Provider, Winner: existing.Provider})
			}
			continue
		}
		c.entries[pkg] = e
	}
}

// Lookup returns the export entry declaring pkg. Matching is exact and case-sensitive.
func (c *Catalog) Lookup(pkg string) (domain.ExportEntry, bool) {
	e, ok := c.entries[pkg]
	return e, ok
}

// Packages returns every exported package name in sorted order.
func (c *Catalog) Packages() []string {
	return slices.Sorted(maps.Keys(c.entries))
}

// Len returns the number of exported packages.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Shadowed returns the exports ignored in favor of an earlier provider, in encounter order.
func (c *Catalog) Shadowed() []Shadowed {
	return slices.Clone(c.shadowed)
}
