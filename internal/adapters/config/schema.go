package config

// Workfile represents the structure of the bundler.work.yaml configuration file.
type Workfile struct {
	Version string   `yaml:"version"`
	Root    string   `yaml:"root"`
	Modules []string `yaml:"modules"`
}

// Modulefile represents the structure of the bundler.yaml configuration file.
type Modulefile struct {
	Version       string        `yaml:"version"`
	Module        string        `yaml:"module"`
	Root          string        `yaml:"root"`
	BundleName    string        `yaml:"bundleName"`
	SymbolicName  string        `yaml:"symbolicName"`
	BundleVersion *string       `yaml:"bundleVersion"`
	Vendor        string        `yaml:"vendor"`
	CreatedBy     string        `yaml:"createdBy"`
	ImportPackage string        `yaml:"importPackage"`
	TestProvided  string        `yaml:"testProvidedArtifacts"`
	OutputDirs    []string      `yaml:"outputDirs"`
	OutputDir     string        `yaml:"outputDir"`
	Artifacts     []ArtifactDTO `yaml:"artifacts"`
	Providers     []ProviderDTO `yaml:"providers"`
}

// ArtifactDTO represents a resolved dependency artifact in the configuration.
type ArtifactDTO struct {
	ID    string   `yaml:"id"`
	Path  string   `yaml:"path"`
	Type  string   `yaml:"type"`
	Scope string   `yaml:"scope"`
	Trail []string `yaml:"trail"`
}

// ProviderDTO represents an inline export declaration in the configuration.
type ProviderDTO struct {
	Name    string `yaml:"name"`
	Exports string `yaml:"exports"`
}
