package ports

import (
	"context"

	"go.trai.ch/bundler/internal/core/domain"
)

// BundleAssembler writes the bundle archive of a module.
//
//go:generate go run go.uber.org/mock/mockgen -source=bundle_assembler.go -destination=mocks/mock_bundle_assembler.go -package=mocks
type BundleAssembler interface {
	// Assemble writes the archive to path: the manifest first, then the module's output
	// directories and the included artifacts.
	Assemble(ctx context.Context, path string, module *domain.Module, included []domain.Artifact, manifest domain.Headers) error
}
