package jar

import (
	"archive/zip"
	"io"
	"strings"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArchiveReader = (*Reader)(nil)

// Reader reads compiled types and manifests from jar archives.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadTypes returns every class entry of the archive in entry order.
// Entries below META-INF/versions belong to other runtime releases and are skipped.
func (r *Reader) ReadTypes(archive string) ([]domain.TypeBlob, error) {
	zr, err := open(archive)
	if err != nil {
		return nil, err
	}
	defer zr.Close() //nolint:errcheck // Read-only archive

	var blobs []domain.TypeBlob
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, domain.ClassFileSuffix) ||
			strings.HasPrefix(f.Name, "META-INF/versions/") {
			continue
		}

		data, err := readEntry(f)
		if err != nil {
			return nil, zerr.With(zerr.With(err, "archive", archive), "entry", f.Name)
		}
		blobs = append(blobs, domain.TypeBlob{Source: archive, Entry: f.Name, Data: data})
	}
	return blobs, nil
}

// ReadManifest returns the main attributes of the archive's manifest.
func (r *Reader) ReadManifest(archive string) (domain.Headers, error) {
	zr, err := open(archive)
	if err != nil {
		return nil, err
	}
	defer zr.Close() //nolint:errcheck // Read-only archive

	for _, f := range zr.File {
		if !strings.EqualFold(f.Name, domain.ManifestPath) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrArchiveReadFailed.Error()), "archive", archive)
		}
		defer rc.Close() //nolint:errcheck // Read-only entry

		headers, err := DecodeManifest(rc)
		if err != nil {
			return nil, zerr.With(err, "archive", archive)
		}
		return headers, nil
	}
	return domain.Headers{}, nil
}

// entries calls yield for every file entry of the archive accepted by match.
func entries(archive string, match func(name string) bool, yield func(*zip.File) error) error {
	zr, err := open(archive)
	if err != nil {
		return err
	}
	defer zr.Close() //nolint:errcheck // Read-only archive

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !match(f.Name) {
			continue
		}
		if err := yield(f); err != nil {
			return err
		}
	}
	return nil
}

func open(archive string) (*zip.ReadCloser, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArchiveOpenFailed.Error()), "archive", archive)
	}
	return zr, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrArchiveReadFailed.Error())
	}
	defer rc.Close() //nolint:errcheck // Read-only entry

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrArchiveReadFailed.Error())
	}
	return data, nil
}
