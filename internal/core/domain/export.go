package domain

// Parameter is one attribute (key=value) or directive (key:=value) of a package declaration clause.
type Parameter struct {
	Name      string
	Value     string
	Directive bool
}

// ExportEntry is one clause of a provider's export declaration.
// All packages named in a clause share its parameters.
type ExportEntry struct {
	PackageNames []string
	Version      string
	HasVersion   bool
	Parameters   []Parameter
	// Provider identifies the declaration's origin (artifact id or provider name).
	Provider string
}

// Parameter returns the value of the named parameter.
func (e ExportEntry) Parameter(name string) (string, bool) {
	for _, p := range e.Parameters {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// ResolvedImport is a referenced package matched to the provider exporting it.
type ResolvedImport struct {
	PackageName string
	Version     string
	HasVersion  bool
	Provider    string
}

// String renders the import as an Import-Package clause.
func (i ResolvedImport) String() string {
	return renderPackage(i.PackageName, i.Version, i.HasVersion)
}

// ManualOverride is a user-declared import that replaces any computed import of the same package.
type ManualOverride struct {
	PackageName string
	Version     string
	HasVersion  bool
}

// String renders the override as an Import-Package clause. The version is emitted as configured.
func (o ManualOverride) String() string {
	return renderPackage(o.PackageName, o.Version, o.HasVersion)
}

func renderPackage(name, version string, hasVersion bool) string {
	if !hasVersion {
		return name
	}
	return name + `;version="` + version + `"`
}

// RenderExport renders a defined package as an Export-Package clause.
func RenderExport(name string, v VersionInfo) string {
	return renderPackage(name, v.Version, v.HasVersion)
}
