// Package generator runs one manifest generation for a module: it analyzes the
// module's compiled output and included archives, resolves the referenced
// packages against the provided archives and renders the manifest headers.
package generator

import (
	"cmp"
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/bundler/internal/engine/classfile"
	"go.trai.ch/bundler/internal/engine/manifest"
	"go.trai.ch/bundler/internal/engine/osgi"
	"go.trai.ch/zerr"
)

// Generator implements ports.ManifestGenerator.
// It holds only stateless collaborators and is safe for concurrent use.
type Generator struct {
	dirs     ports.DirectoryReader
	archives ports.ArchiveReader
	logger   ports.Logger
}

var _ ports.ManifestGenerator = (*Generator)(nil)

// New creates a new Generator.
func New(dirs ports.DirectoryReader, archives ports.ArchiveReader, logger ports.Logger) *Generator {
	return &Generator{
		dirs:     dirs,
		archives: archives,
		logger:   logger,
	}
}

// Generate computes the manifest headers of module. The first error aborts the
// generation and no result is returned.
func (g *Generator) Generate(ctx context.Context, module *domain.Module) (*domain.GenerationResult, error) {
	bundleVersion, err := domain.BundleVersion(module.BundleVersion)
	if err != nil {
		return nil, zerr.With(err, "module", module.Name)
	}

	set := domain.PartitionArtifacts(module.Artifacts, domain.ParseTestProvided(module.TestProvided))
	for _, a := range set.Ignored {
		g.warn(ctx, fmt.Sprintf("ignoring artifact %s of unsupported type %q", a.ID(), a.Type))
	}

	tallies := make([]*domain.PackageTally, 0, len(module.OutputDirs)+len(set.Include))
	for _, dir := range module.OutputDirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blobs, err := g.dirs.ReadTypes(module.Resolve(dir))
		if err != nil {
			return nil, zerr.With(err, "module", module.Name)
		}
		tally, err := analyze(blobs, domain.NewVersionInfo(bundleVersion))
		if err != nil {
			return nil, zerr.With(err, "module", module.Name)
		}
		tallies = append(tallies, tally)
	}

	for _, a := range set.Include {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blobs, err := g.archives.ReadTypes(module.Resolve(a.Path))
		if err != nil {
			return nil, zerr.With(err, "artifact", a.ID())
		}
		tally, err := analyze(blobs, a.VersionTag())
		if err != nil {
			return nil, zerr.With(err, "artifact", a.ID())
		}
		tallies = append(tallies, tally)
	}

	combined := domain.CombineAll(tallies...)
	for _, c := range combined.Conflicts() {
		g.warn(ctx, fmt.Sprintf("package %s is defined with versions %s and %s, keeping %s",
			c.Package, c.Kept, c.Rejected, c.Kept))
	}

	providers, err := g.providers(ctx, module, set.Provided)
	if err != nil {
		return nil, err
	}
	catalog, err := osgi.NewCatalog(providers)
	if err != nil {
		return nil, zerr.With(err, "module", module.Name)
	}
	for _, s := range catalog.Shadowed() {
		g.warn(ctx, fmt.Sprintf("package %s exported by %s is shadowed by %s", s.Package, s.Provider, s.Winner))
	}

	resolution := osgi.Resolve(combined, catalog)
	if unresolved := resolution.ReportableUnresolved(); len(unresolved) > 0 {
		g.warn(ctx, fmt.Sprintf("no provided artifact exports %s", strings.Join(unresolved, ", ")))
	}

	assembly, err := manifest.Assemble(manifest.Input{
		BundleName:    module.BundleName,
		SymbolicName:  module.SymbolicName,
		Vendor:        module.Vendor,
		CreatedBy:     module.CreatedBy,
		BundleVersion: module.BundleVersion,
		ImportPackage: module.ImportPackage,
		Tally:         combined,
		Imports:       resolution.Imports,
		Included:      set.Include,
	})
	if err != nil {
		return nil, zerr.With(err, "module", module.Name)
	}

	return &domain.GenerationResult{
		Headers:    assembly.Headers,
		Tally:      combined,
		Imports:    assembly.Imports,
		Overrides:  assembly.Overrides,
		Unresolved: resolution.Unresolved,
		Conflicts:  combined.Conflicts(),
		Artifacts:  set,
	}, nil
}

// providers reads the Export-Package header of every provided archive, sorted by
// artifact identity and path, followed by the providers declared in configuration.
func (g *Generator) providers(
	ctx context.Context,
	module *domain.Module,
	provided []domain.Artifact,
) ([]osgi.Provider, error) {
	sorted := slices.Clone(provided)
	slices.SortStableFunc(sorted, func(a, b domain.Artifact) int {
		return cmp.Or(cmp.Compare(a.ID(), b.ID()), cmp.Compare(a.Path, b.Path))
	})

	out := make([]osgi.Provider, 0, len(sorted)+len(module.Providers))
	for _, a := range sorted {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		headers, err := g.archives.ReadManifest(module.Resolve(a.Path))
		if err != nil {
			return nil, zerr.With(err, "artifact", a.ID())
		}
		if exports := headers.Get(domain.HeaderExportPackage); exports != "" {
			out = append(out, osgi.Provider{Name: a.ID(), Exports: exports})
		}
	}
	for _, p := range module.Providers {
		out = append(out, osgi.Provider{Name: p.Name, Exports: p.Exports})
	}
	return out, nil
}

func (g *Generator) warn(ctx context.Context, msg string) {
	if v, ok := ports.VertexFromContext(ctx); ok {
		v.Log(domain.LogLevelWarn, msg)
	}
	g.logger.Warn(msg)
}

// analyze folds the compiled types of one source into a tally tagged with version.
// The module descriptor defines no package and is skipped.
func analyze(blobs []domain.TypeBlob, version domain.VersionInfo) (*domain.PackageTally, error) {
	types := make([]domain.TypeMetadata, 0, len(blobs))
	for _, b := range blobs {
		if path.Base(b.Entry) == domain.ModuleInfoFile {
			continue
		}
		md, err := classfile.Analyze(b.Data)
		if err != nil {
			return nil, zerr.With(zerr.With(
				zerr.Wrap(err, fmt.Sprintf("failed to analyze %s in %s", b.Entry, b.Source)),
				"source", b.Source), "entry", b.Entry)
		}
		types = append(types, md)
	}
	return domain.FromAnalyzedTypes(types, version), nil
}
