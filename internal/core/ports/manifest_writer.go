package ports

import "go.trai.ch/bundler/internal/core/domain"

// ManifestWriter persists manifest headers as a MANIFEST.MF file.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_writer.go -destination=mocks/mock_manifest_writer.go -package=mocks
type ManifestWriter interface {
	// Write writes the headers to path, creating parent directories as needed.
	Write(path string, headers domain.Headers) error

	// Read parses the manifest file at path.
	Read(path string) (domain.Headers, error)
}
