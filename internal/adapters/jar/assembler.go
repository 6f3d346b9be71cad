package jar

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/bundler/internal/adapters/fs"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BundleAssembler = (*Assembler)(nil)

// Assembler writes bundle archives.
type Assembler struct {
	walker *fs.Walker
	logger ports.Logger
}

// NewAssembler creates a new Assembler.
func NewAssembler(walker *fs.Walker, logger ports.Logger) *Assembler {
	return &Assembler{walker: walker, logger: logger}
}

// Assemble writes the bundle archive to path.
//
// The archive holds the manifest first, then the files of every output directory,
// then each included jar under dependencies/ together with the config definitions
// it carries. Included artifacts whose type is not a jar archive type are
// skipped with a warning. The archive is written to a temporary file and renamed into place.
func (a *Assembler) Assemble(
	ctx context.Context,
	path string,
	module *domain.Module,
	included []domain.Artifact,
	manifest domain.Headers,
) error {
	wrap := func(err error) error {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveWriteFailed.Error()), "path", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return wrap(err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".bundle-*")
	if err != nil {
		return wrap(err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Gone after a successful rename

	b := &bundle{zw: zip.NewWriter(tmp), written: make(map[string]bool)}
	if err := a.write(ctx, b, module, included, manifest); err != nil {
		_ = b.zw.Close()
		_ = tmp.Close()
		return err
	}
	if err := b.zw.Close(); err != nil {
		_ = tmp.Close()
		return wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return wrap(err)
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return wrap(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return wrap(err)
	}
	return nil
}

func (a *Assembler) write(
	ctx context.Context,
	b *bundle,
	module *domain.Module,
	included []domain.Artifact,
	manifest domain.Headers,
) error {
	var buf bytes.Buffer
	if err := EncodeManifest(&buf, manifest); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveWriteFailed.Error())
	}
	if err := b.add(domain.ManifestPath, bytes.NewReader(buf.Bytes())); err != nil {
		return err
	}

	for _, dir := range module.OutputDirs {
		if err := a.addDirectory(ctx, b, module.Resolve(dir)); err != nil {
			return err
		}
	}

	for _, artifact := range included {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !artifact.IsArchive() {
			a.logger.Warn(fmt.Sprintf("unknown artifact type %s of %s, not embedding it", artifact.Type, artifact.ID()))
			continue
		}
		if err := a.addArtifact(b, artifact.EmbeddedPath(), module.Resolve(artifact.Path)); err != nil {
			return zerr.With(err, "artifact", artifact.ID())
		}
	}
	return nil
}

func (a *Assembler) addDirectory(ctx context.Context, b *bundle, dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil //nolint:nilerr // Output directories that were never built are skipped.
	}

	for path, err := range a.walker.WalkFiles(dir, "") {
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrArchiveWriteFailed.Error()), "path", dir)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrArchiveWriteFailed.Error()), "path", path)
		}
		if err := b.addFile(filepath.ToSlash(rel), path); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) addArtifact(b *bundle, name, path string) error {
	if err := b.addFile(name, path); err != nil {
		return err
	}

	isConfigDefinition := func(name string) bool {
		return strings.HasPrefix(name, domain.ConfigDefinitionsDir+"/") &&
			strings.HasSuffix(name, domain.ConfigDefinitionSuffix)
	}
	return entries(path, isConfigDefinition, func(f *zip.File) error {
		rc, err := f.Open()
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrArchiveReadFailed.Error()), "entry", f.Name)
		}
		defer rc.Close() //nolint:errcheck // Read-only entry
		return b.add(f.Name, rc)
	})
}

// bundle is a zip writer that keeps the first entry written under each name.
type bundle struct {
	zw      *zip.Writer
	written map[string]bool
}

func (b *bundle) add(name string, r io.Reader) error {
	if b.written[name] {
		return nil
	}
	b.written[name] = true

	w, err := b.zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveWriteFailed.Error()), "entry", name)
	}
	if _, err := io.Copy(w, r); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveWriteFailed.Error()), "entry", name)
	}
	return nil
}

func (b *bundle) addFile(name, path string) error {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Read-only file
	return b.add(name, f)
}
