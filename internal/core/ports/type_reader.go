package ports

import "go.trai.ch/bundler/internal/core/domain"

// DirectoryReader reads compiled types from a build output directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=type_reader.go -destination=mocks/mock_type_reader.go -package=mocks
type DirectoryReader interface {
	// ReadTypes returns every compiled type below dir in lexical path order.
	// A directory that does not exist yields no types.
	ReadTypes(dir string) ([]domain.TypeBlob, error)
}

// ArchiveReader reads jar archives.
type ArchiveReader interface {
	// ReadTypes returns every compiled type in the archive in entry order.
	ReadTypes(path string) ([]domain.TypeBlob, error)

	// ReadManifest returns the main attributes of the archive's manifest.
	// An archive without a manifest yields empty headers.
	ReadManifest(path string) (domain.Headers, error)
}
