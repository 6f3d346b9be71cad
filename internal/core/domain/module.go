package domain

import "path/filepath"

// ProviderDeclaration is an export declaration supplied directly in configuration
// for packages the runtime provides without a backing artifact.
type ProviderDeclaration struct {
	Name    string
	Exports string
}

// Module is the configuration of one manifest generation invocation.
type Module struct {
	// Name identifies the module within a workspace.
	Name string
	// Dir is the absolute module directory; relative paths resolve against it.
	Dir string

	BundleName   string
	SymbolicName string
	// BundleVersion is the raw project version; nil when not configured.
	BundleVersion *string
	Vendor        string
	CreatedBy     string

	// ImportPackage is the manual import override declaration.
	ImportPackage string
	// TestProvided is the raw test provided artifact configuration.
	TestProvided string

	// OutputDirs are the compiled output directories of the module itself.
	OutputDirs []string
	// OutputDir receives the generated manifest and the assembled bundle.
	OutputDir string

	Artifacts []Artifact
	Providers []ProviderDeclaration
}

// Workspace is the set of modules discovered from configuration.
type Workspace struct {
	Root    string
	Modules []*Module
}

// Module returns the module with the given name.
func (w *Workspace) Module(name string) (*Module, bool) {
	for _, m := range w.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Names returns the module names in workspace order.
func (w *Workspace) Names() []string {
	names := make([]string, len(w.Modules))
	for i, m := range w.Modules {
		names[i] = m.Name
	}
	return names
}

// Resolve returns p joined with the module directory unless p is already absolute.
func (m *Module) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || m.Dir == "" {
		return p
	}
	return filepath.Join(m.Dir, p)
}

// ManifestFile returns the location the module's generated manifest is written to.
func (m *Module) ManifestFile() string {
	return filepath.Join(m.Resolve(m.OutputDir), filepath.FromSlash(ManifestPath))
}

// BundleFile returns the location the module's assembled bundle archive is written to.
func (m *Module) BundleFile() string {
	name := m.BundleName
	if name == "" {
		name = m.Name
	}
	return filepath.Join(m.Resolve(m.OutputDir), name+".jar")
}
