// Package scheduler runs manifest generation for many modules concurrently.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options controls a scheduler run.
type Options struct {
	// Root is the workspace root the fingerprint store lives under.
	Root string
	// Parallelism bounds the number of modules generated at once.
	// Zero or less means one per CPU.
	Parallelism int
	// Force regenerates manifests whose inputs are unchanged.
	Force bool
}

// Scheduler generates the manifests of a set of modules.
// Every module is an isolated invocation; modules never share generation state.
type Scheduler struct {
	generator ports.ManifestGenerator
	writer    ports.ManifestWriter
	store     ports.FingerprintStore
	hasher    ports.Hasher
	telemetry ports.Telemetry

	mu           sync.RWMutex
	moduleStatus map[string]domain.ModuleStatus
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	generator ports.ManifestGenerator,
	writer ports.ManifestWriter,
	store ports.FingerprintStore,
	hasher ports.Hasher,
	telemetry ports.Telemetry,
) *Scheduler {
	return &Scheduler{
		generator:    generator,
		writer:       writer,
		store:        store,
		hasher:       hasher,
		telemetry:    telemetry,
		moduleStatus: make(map[string]domain.ModuleStatus),
	}
}

func (s *Scheduler) initStatuses(modules []*domain.Module) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range modules {
		s.moduleStatus[m.Name] = domain.StatusPending
	}
}

func (s *Scheduler) updateStatus(name string, status domain.ModuleStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moduleStatus[name] = status
}

// Status returns the last known status of a module.
func (s *Scheduler) Status(name string) domain.ModuleStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moduleStatus[name]
}

// Run generates and writes the manifest of every module.
//
// A failing module does not stop the others; all failures are joined into the
// returned error. Cancelling ctx stops modules that have not started yet.
func (s *Scheduler) Run(ctx context.Context, modules []*domain.Module, opts Options) error {
	s.initStatuses(modules)

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	var (
		mu   sync.Mutex
		errs error
	)

	var g errgroup.Group
	g.SetLimit(parallelism)

	for _, m := range modules {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if err := s.runModule(ctx, m, opts); err != nil {
				mu.Lock()
				errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrModuleGenerationFailed.Error()), "module", m.Name))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		errs = errors.Join(errs, err)
	}
	return errs
}

func (s *Scheduler) runModule(ctx context.Context, module *domain.Module, opts Options) (err error) {
	s.updateStatus(module.Name, domain.StatusRunning)
	ctx, vertex := s.telemetry.Record(ctx, module.Name)
	defer func() {
		if err != nil {
			s.updateStatus(module.Name, domain.StatusFailed)
		}
		vertex.Complete(err)
	}()

	hash, err := s.hasher.ComputeModuleHash(module)
	if err != nil {
		return err
	}

	if !opts.Force {
		upToDate, err := s.isUpToDate(opts.Root, module, hash)
		if err != nil {
			return err
		}
		if upToDate {
			vertex.Cached()
			s.updateStatus(module.Name, domain.StatusCached)
			return nil
		}
	}

	result, err := s.generator.Generate(ctx, module)
	if err != nil {
		return err
	}

	path := module.ManifestFile()
	if err := s.writer.Write(path, result.Headers); err != nil {
		return err
	}
	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("wrote %s", path))

	if err := s.store.Put(opts.Root, domain.Fingerprint{
		Module:    module.Name,
		InputHash: hash,
		Timestamp: time.Now(),
	}); err != nil {
		return err
	}

	s.updateStatus(module.Name, domain.StatusCompleted)
	return nil
}

// isUpToDate reports whether the stored fingerprint matches hash and the manifest it
// describes is still on disk.
func (s *Scheduler) isUpToDate(root string, module *domain.Module, hash string) (bool, error) {
	fp, err := s.store.Get(root, module.Name)
	if err != nil {
		return false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	if fp == nil || fp.InputHash != hash {
		return false, nil
	}
	if _, err := s.writer.Read(module.ManifestFile()); err != nil {
		return false, nil //nolint:nilerr // A missing manifest means regeneration, not failure.
	}
	return true, nil
}
