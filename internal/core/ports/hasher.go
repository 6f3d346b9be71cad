package ports

import "go.trai.ch/bundler/internal/core/domain"

// Hasher defines the interface for computing input hashes.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeModuleHash computes a hash over the module configuration and every input file
	// manifest generation reads.
	ComputeModuleHash(module *domain.Module) (string, error)
}
