package ports

import "go.trai.ch/bundler/internal/core/domain"

// FingerprintStore defines the interface for storing and retrieving module input fingerprints.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type FingerprintStore interface {
	// Get retrieves the fingerprint for a given module name below the workspace root.
	// Returns nil, nil if not found.
	Get(root, module string) (*domain.Fingerprint, error)

	// Put stores the fingerprint below the workspace root.
	Put(root string, fp domain.Fingerprint) error
}
