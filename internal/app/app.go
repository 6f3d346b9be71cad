// Package app implements the application layer for bundler.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/bundler/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	scheduler    *scheduler.Scheduler
	generator    ports.ManifestGenerator
	manifests    ports.ManifestWriter
	assembler    ports.BundleAssembler
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sched *scheduler.Scheduler,
	generator ports.ManifestGenerator,
	manifests ports.ManifestWriter,
	assembler ports.BundleAssembler,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		scheduler:    sched,
		generator:    generator,
		manifests:    manifests,
		assembler:    assembler,
		logger:       log,
	}
}

// GenerateOptions configures the Generate method.
type GenerateOptions struct {
	// Force regenerates manifests whose inputs are unchanged.
	Force bool
	// Parallelism bounds the number of modules generated at once. Zero means one per CPU.
	Parallelism int
}

// ModuleReport is the final status of one module after a generate run.
type ModuleReport struct {
	Name   string
	Status domain.ModuleStatus
}

// Generate writes the manifests of the named modules, or of every module when names is empty.
// The report lists every selected module, including failed ones.
func (a *App) Generate(ctx context.Context, cwd string, names []string, opts GenerateOptions) ([]ModuleReport, error) {
	ws, modules, err := a.load(cwd, names)
	if err != nil {
		return nil, err
	}

	runErr := a.scheduler.Run(ctx, modules, scheduler.Options{
		Root:        ws.Root,
		Parallelism: opts.Parallelism,
		Force:       opts.Force,
	})

	report := make([]ModuleReport, 0, len(modules))
	for _, m := range modules {
		report = append(report, ModuleReport{Name: m.Name, Status: a.scheduler.Status(m.Name)})
	}

	if runErr != nil {
		return report, errors.Join(domain.ErrGenerationFailed, runErr)
	}
	return report, nil
}

// Assemble packs the bundle archive of the named modules, or of every module when
// names is empty. Each module's manifest must have been generated before.
func (a *App) Assemble(ctx context.Context, cwd string, names []string) error {
	_, modules, err := a.load(cwd, names)
	if err != nil {
		return err
	}

	for _, m := range modules {
		if err := ctx.Err(); err != nil {
			return err
		}

		headers, err := a.manifests.Read(m.ManifestFile())
		if err != nil {
			return zerr.With(zerr.Wrap(err, "manifest not generated, run bundler generate first"), "module", m.Name)
		}

		set := domain.PartitionArtifacts(m.Artifacts, domain.ParseTestProvided(m.TestProvided))
		if err := a.assembler.Assemble(ctx, m.BundleFile(), m, set.Include, headers); err != nil {
			return zerr.With(err, "module", m.Name)
		}
		a.logger.Info(fmt.Sprintf("assembled %s", m.BundleFile()))
	}
	return nil
}

// Inspect runs a generation for one module without writing anything and returns its result.
func (a *App) Inspect(ctx context.Context, cwd, name string) (*domain.Module, *domain.GenerationResult, error) {
	_, modules, err := a.load(cwd, []string{name})
	if err != nil {
		return nil, nil, err
	}

	result, err := a.generator.Generate(ctx, modules[0])
	if err != nil {
		return nil, nil, zerr.With(err, "module", name)
	}
	return modules[0], result, nil
}

// Clean removes the fingerprint store of the workspace, forcing the next generate run
// to regenerate every manifest.
func (a *App) Clean(_ context.Context, cwd string) error {
	ws, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	path := filepath.Join(ws.Root, domain.DefaultStorePath())
	a.logger.Info(fmt.Sprintf("removing %s", path))
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove fingerprint store"), "path", path)
	}
	return nil
}

// load reads the workspace visible from cwd and selects the named modules in the
// order given. Empty names select every module.
func (a *App) load(cwd string, names []string) (*domain.Workspace, []*domain.Module, error) {
	ws, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}

	if len(names) == 0 {
		return ws, ws.Modules, nil
	}

	modules := make([]*domain.Module, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		m, ok := ws.Module(name)
		if !ok {
			err := zerr.With(domain.ErrModuleNotFound, "module", name)
			return nil, nil, zerr.With(err, "available", ws.Names())
		}
		modules = append(modules, m)
	}
	return ws, modules, nil
}
