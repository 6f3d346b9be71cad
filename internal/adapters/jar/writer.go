package jar

import (
	"bytes"
	"os"
	"path/filepath"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestWriter = (*ManifestWriter)(nil)

// ManifestWriter writes MANIFEST.MF files to disk.
type ManifestWriter struct{}

// NewManifestWriter creates a new ManifestWriter.
func NewManifestWriter() *ManifestWriter {
	return &ManifestWriter{}
}

// Write encodes headers to path. The file is replaced atomically so a failed write
// never leaves a partial manifest behind.
func (w *ManifestWriter) Write(path string, headers domain.Headers) error {
	var buf bytes.Buffer
	if err := EncodeManifest(&buf, headers); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	tmp, err := os.CreateTemp(dir, ".manifest-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return nil
}

// Read parses the manifest file at path.
func (w *ManifestWriter) Read(path string) (domain.Headers, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	headers, err := DecodeManifest(f)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return headers, nil
}
