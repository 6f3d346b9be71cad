// Package config provides the configuration loader for bundler.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Mode represents the configuration mode of bundler.
type Mode string

const (
	// ModeWorkspace indicates that bundler has a workfile.
	ModeWorkspace Mode = "workspace"
	// ModeStandalone indicates that bundler has only one module file.
	ModeStandalone Mode = "standalone"
)

// bundleNameSuffix is appended to the module name to form the default bundle names.
const bundleNameSuffix = "-tests"

var validModuleNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Load discovers the configuration starting at cwd and returns the workspace it describes.
//
// The nearest bundler.work.yaml in cwd or any parent wins; otherwise the nearest
// bundler.yaml is loaded as a single module workspace.
func (l *Loader) Load(cwd string) (*domain.Workspace, error) {
	configPath, mode, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeStandalone:
		return l.loadModulefile(configPath)
	case ModeWorkspace:
		return l.loadWorkfile(configPath)
	default:
		return nil, zerr.With(domain.ErrConfigNotFound, "mode", mode)
	}
}

func (l *Loader) findConfiguration(cwd string) (string, Mode, error) {
	currentDir := cwd
	var standaloneCandidate string

	for {
		workfilePath := filepath.Join(currentDir, domain.WorkFileName)
		if _, err := os.Stat(workfilePath); err == nil {
			return workfilePath, ModeWorkspace, nil
		}

		if standaloneCandidate == "" {
			modulefilePath := filepath.Join(currentDir, domain.ModuleFileName)
			if _, err := os.Stat(modulefilePath); err == nil {
				standaloneCandidate = modulefilePath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	if standaloneCandidate != "" {
		return standaloneCandidate, ModeStandalone, nil
	}

	return "", "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) loadModulefile(configPath string) (*domain.Workspace, error) {
	var modulefile Modulefile
	if err := readAndUnmarshalYAML(configPath, &modulefile); err != nil {
		return nil, err
	}

	moduleDir := filepath.Dir(configPath)
	if modulefile.Module == "" {
		modulefile.Module = filepath.Base(moduleDir)
	}
	if err := validateModuleName(modulefile.Module, "."); err != nil {
		return nil, err
	}

	module, err := buildModule(&modulefile, moduleDir)
	if err != nil {
		return nil, err
	}

	return &domain.Workspace{
		Root:    resolveRoot(configPath, modulefile.Root),
		Modules: []*domain.Module{module},
	}, nil
}

func (l *Loader) loadWorkfile(configPath string) (*domain.Workspace, error) {
	var workfile Workfile
	if err := readAndUnmarshalYAML(configPath, &workfile); err != nil {
		return nil, err
	}

	ws := &domain.Workspace{Root: resolveRoot(configPath, workfile.Root)}

	modulePaths, err := l.resolveModulePaths(ws.Root, workfile.Modules)
	if err != nil {
		return nil, err
	}

	// Track module names to ensure uniqueness
	moduleNames := make(map[string]string)
	for _, modulePath := range modulePaths {
		module, err := l.processModule(ws.Root, modulePath, moduleNames)
		if err != nil {
			return nil, err
		}
		if module != nil {
			ws.Modules = append(ws.Modules, module)
		}
	}

	return ws, nil
}

func (l *Loader) resolveModulePaths(workspaceRoot string, patterns []string) ([]string, error) {
	// We use a map to deduplicate paths if multiple globs match the same directory
	modulePaths := make(map[string]struct{})

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(workspaceRoot, pattern))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "glob pattern failed"), "pattern", pattern)
		}
		for _, match := range matches {
			modulePaths[match] = struct{}{}
		}
	}

	sortedPaths := make([]string, 0, len(modulePaths))
	for p := range modulePaths {
		sortedPaths = append(sortedPaths, p)
	}
	slices.Sort(sortedPaths)

	return sortedPaths, nil
}

func (l *Loader) processModule(workspaceRoot, modulePath string, moduleNames map[string]string) (*domain.Module, error) {
	relPath, _ := filepath.Rel(workspaceRoot, modulePath)

	// Glob returns files too
	info, err := os.Stat(modulePath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "directory", relPath)
	}
	if !info.IsDir() {
		return nil, nil
	}

	modulefilePath := filepath.Join(modulePath, domain.ModuleFileName)
	if _, statErr := os.Stat(modulefilePath); os.IsNotExist(statErr) {
		l.Logger.Warn(fmt.Sprintf("%s missing in module %s, skipping", domain.ModuleFileName, relPath))
		return nil, nil
	}

	var modulefile Modulefile
	if err := readAndUnmarshalYAML(modulefilePath, &modulefile); err != nil {
		return nil, zerr.With(err, "directory", relPath)
	}

	if modulefile.Module == "" {
		return nil, zerr.With(domain.ErrMissingModuleName, "directory", relPath)
	}
	if err := validateModuleName(modulefile.Module, relPath); err != nil {
		return nil, err
	}

	if existingPath, exists := moduleNames[modulefile.Module]; exists {
		err := zerr.With(domain.ErrDuplicateModuleName, "module_name", modulefile.Module)
		err = zerr.With(err, "first_occurrence", existingPath)
		err = zerr.With(err, "duplicate_at", relPath)
		return nil, err
	}
	moduleNames[modulefile.Module] = relPath

	if modulefile.Root != "" {
		l.Logger.Warn(fmt.Sprintf("'root' defined in %s is ignored in workspace mode", relPath))
	}

	module, err := buildModule(&modulefile, modulePath)
	if err != nil {
		return nil, zerr.With(err, "directory", relPath)
	}
	return module, nil
}

// buildModule converts a module file into a domain module rooted at dir, applying defaults.
func buildModule(mf *Modulefile, dir string) (*domain.Module, error) {
	module := &domain.Module{
		Name:          mf.Module,
		Dir:           filepath.Clean(dir),
		BundleName:    mf.BundleName,
		SymbolicName:  mf.SymbolicName,
		BundleVersion: mf.BundleVersion,
		Vendor:        mf.Vendor,
		CreatedBy:     mf.CreatedBy,
		ImportPackage: mf.ImportPackage,
		TestProvided:  mf.TestProvided,
		OutputDirs:    mf.OutputDirs,
		OutputDir:     mf.OutputDir,
	}

	if module.BundleName == "" {
		module.BundleName = mf.Module + bundleNameSuffix
	}
	if module.SymbolicName == "" {
		module.SymbolicName = mf.Module + bundleNameSuffix
	}
	if len(module.OutputDirs) == 0 {
		module.OutputDirs = domain.DefaultOutputDirs()
	}
	if module.OutputDir == "" {
		module.OutputDir = domain.DefaultOutputDir
	}

	for i, dto := range mf.Artifacts {
		artifact, err := buildArtifact(dto)
		if err != nil {
			return nil, zerr.With(err, "artifact_index", i)
		}
		module.Artifacts = append(module.Artifacts, artifact)
	}

	for _, dto := range mf.Providers {
		module.Providers = append(module.Providers, domain.ProviderDeclaration{
			Name:    dto.Name,
			Exports: dto.Exports,
		})
	}

	return module, nil
}

func buildArtifact(dto ArtifactDTO) (domain.Artifact, error) {
	group, artifact, version, err := domain.ParseArtifactID(dto.ID)
	if err != nil {
		return domain.Artifact{}, err
	}
	if dto.Path == "" {
		return domain.Artifact{}, zerr.With(domain.ErrMissingArtifactPath, "artifact_id", dto.ID)
	}

	a := domain.Artifact{
		GroupID:    group,
		ArtifactID: artifact,
		Version:    version,
		Type:       dto.Type,
		Scope:      dto.Scope,
		Path:       dto.Path,
		Trail:      dto.Trail,
	}
	if a.Type == "" {
		a.Type = domain.ArtifactTypeJar
	}
	if a.Scope == "" {
		a.Scope = domain.ScopeCompile
	}
	return a, nil
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	return nil
}

func validateModuleName(name, relPath string) error {
	if !validModuleNameRegex.MatchString(name) {
		err := zerr.With(domain.ErrInvalidModuleName, "module_name", name)
		return zerr.With(err, "directory", relPath)
	}
	return nil
}
