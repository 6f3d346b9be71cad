package ports

import (
	"context"

	"go.trai.ch/bundler/internal/core/domain"
)

// ManifestGenerator computes the manifest headers of one module.
//
//go:generate go run go.uber.org/mock/mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type ManifestGenerator interface {
	// Generate runs one isolated generation for the module. It either returns a complete
	// result or an error, never a partial result.
	Generate(ctx context.Context, module *domain.Module) (*domain.GenerationResult, error)
}
