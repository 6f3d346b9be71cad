package app

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.trai.ch/bundler/internal/core/domain"
)

// manualProvider marks imports that come from the module's own import declaration.
const manualProvider = "(manual)"

// RenderReport writes the per module statuses of a generate run as a table.
func RenderReport(w io.Writer, report []ModuleReport) error {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Module", "Status"})
	for _, r := range report {
		tbl.AppendRow(table.Row{r.Name, r.Status})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d modules", len(report)), ""})

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

// RenderInspection writes the headers, exports, imports and artifacts of a generation result.
func RenderInspection(w io.Writer, module *domain.Module, result *domain.GenerationResult) error {
	sections := []struct {
		title string
		tbl   table.Writer
	}{
		{"Headers", headersTable(result.Headers)},
		{"Exports", exportsTable(result.Tally)},
		{"Imports", importsTable(result)},
		{"Artifacts", artifactsTable(result.Artifacts)},
	}

	if _, err := fmt.Fprintf(w, "Module %s (%s)\n", module.Name, module.Dir); err != nil {
		return err
	}
	for _, s := range sections {
		if _, err := fmt.Fprintf(w, "\n%s:\n%s\n", s.title, s.tbl.Render()); err != nil {
			return err
		}
	}

	if len(result.Unresolved) > 0 {
		if _, err := fmt.Fprintln(w, "\nUnresolved:"); err != nil {
			return err
		}
		for _, pkg := range result.Unresolved {
			if _, err := fmt.Fprintf(w, "  %s\n", pkg); err != nil {
				return err
			}
		}
	}
	for _, c := range result.Conflicts {
		if _, err := fmt.Fprintf(w, "\nconflict: package %s kept %s over %s\n", c.Package, c.Kept, c.Rejected); err != nil {
			return err
		}
	}
	return nil
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	return tbl
}

func headersTable(headers domain.Headers) table.Writer {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Header", "Value"})
	for _, key := range slices.Sorted(maps.Keys(headers)) {
		tbl.AppendRow(table.Row{key, headers[key]})
	}
	return tbl
}

func exportsTable(tally *domain.PackageTally) table.Writer {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Package", "Version"})
	if tally == nil {
		return tbl
	}
	exports := tally.ExportedPackages()
	for _, pkg := range slices.Sorted(maps.Keys(exports)) {
		v := exports[pkg]
		tbl.AppendRow(table.Row{pkg, versionOrDash(v.Version, v.HasVersion)})
	}
	return tbl
}

func importsTable(result *domain.GenerationResult) table.Writer {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Package", "Version", "Provider"})

	rows := make(map[string]table.Row, len(result.Imports)+len(result.Overrides))
	for pkg, imp := range result.Imports {
		rows[pkg] = table.Row{pkg, versionOrDash(imp.Version, imp.HasVersion), imp.Provider}
	}
	for pkg, o := range result.Overrides {
		rows[pkg] = table.Row{pkg, versionOrDash(o.Version, o.HasVersion), manualProvider}
	}
	for _, pkg := range slices.Sorted(maps.Keys(rows)) {
		tbl.AppendRow(rows[pkg])
	}
	return tbl
}

func artifactsTable(set domain.ArtifactSet) table.Writer {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Artifact", "Scope", "Role"})
	groups := []struct {
		role      string
		artifacts []domain.Artifact
	}{
		{"included", set.Include},
		{"provided", set.Provided},
		{"ignored", set.Ignored},
	}
	for _, g := range groups {
		for _, a := range g.artifacts {
			tbl.AppendRow(table.Row{a.ID(), a.Scope, g.role})
		}
	}
	return tbl
}

func versionOrDash(version string, ok bool) string {
	if !ok {
		return "-"
	}
	return version
}
