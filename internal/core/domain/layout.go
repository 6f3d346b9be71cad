package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal workspace directory.
	StateDirName = ".bundler"

	// StoreDirName is the name of the fingerprint store directory.
	StoreDirName = "store"

	// ModuleFileName is the name of the module configuration file.
	ModuleFileName = "bundler.yaml"

	// WorkFileName is the name of the workspace configuration file.
	WorkFileName = "bundler.work.yaml"

	// ManifestPath is the archive path of the bundle manifest.
	ManifestPath = "META-INF/MANIFEST.MF"

	// DependenciesDir is the archive directory embedded artifacts are placed in.
	DependenciesDir = "dependencies"

	// ConfigDefinitionsDir is the archive directory holding config definition resources.
	ConfigDefinitionsDir = "configdefinitions"

	// ConfigDefinitionSuffix is the file suffix of config definition resources.
	ConfigDefinitionSuffix = ".def"

	// ClassFileSuffix is the file suffix of compiled types.
	ClassFileSuffix = ".class"

	// ModuleInfoFile is the compiled module descriptor, which defines no package.
	ModuleInfoFile = "module-info.class"

	// DefaultOutputDir is the default directory the manifest and bundle are written to.
	DefaultOutputDir = "target/test-bundle"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultOutputDirs returns the compiled output directories used when a module declares none.
func DefaultOutputDirs() []string {
	return []string{"target/classes", "target/test-classes"}
}

// DefaultStorePath returns the default path for the fingerprint store.
// It joins .bundler and store.
func DefaultStorePath() string {
	return filepath.Join(StateDirName, StoreDirName)
}
