package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DirectoryReader = (*Reader)(nil)

// Reader reads compiled types from build output directories.
type Reader struct {
	walker *Walker
}

// NewReader creates a new Reader.
func NewReader(walker *Walker) *Reader {
	return &Reader{walker: walker}
}

// ReadTypes returns every class file below dir. Entries are slash separated paths
// relative to dir. A missing directory yields no types.
func (r *Reader) ReadTypes(dir string) ([]domain.TypeBlob, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var blobs []domain.TypeBlob
	for path, err := range r.walker.WalkFiles(dir, domain.ClassFileSuffix) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrTypeReadFailed.Error()), "path", dir)
		}

		data, err := os.ReadFile(path) //nolint:gosec // Path comes from walking the output directory
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrTypeReadFailed.Error()), "path", path)
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrTypeReadFailed.Error()), "path", path)
		}

		blobs = append(blobs, domain.TypeBlob{
			Source: dir,
			Entry:  filepath.ToSlash(rel),
			Data:   data,
		})
	}
	return blobs, nil
}
