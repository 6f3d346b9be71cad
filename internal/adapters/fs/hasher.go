package fs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher provides hashing functionality for modules and files.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeModuleHash computes a single hash representing the module configuration,
// its compiled output and every artifact file it reads.
func (h *Hasher) ComputeModuleHash(module *domain.Module) (string, error) {
	hasher := xxhash.New()

	h.hashModuleDefinition(module, hasher)

	for _, dir := range module.OutputDirs {
		if err := h.hashDirectory(module.Resolve(dir), hasher); err != nil {
			return "", err
		}
	}

	for _, a := range module.Artifacts {
		if err := h.hashFile(module.Resolve(a.Path), hasher); err != nil {
			return "", zerr.With(err, "artifact", a.ID())
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashModuleDefinition hashes every configuration value that influences the manifest.
func (h *Hasher) hashModuleDefinition(module *domain.Module, hasher *xxhash.Digest) {
	write := func(values ...string) {
		for _, v := range values {
			_, _ = hasher.WriteString(v)
			_, _ = hasher.Write([]byte{0})
		}
		_, _ = hasher.Write([]byte{0}) // Section separator
	}

	version := "\x01" // Distinguishes a missing version from an empty one.
	if module.BundleVersion != nil {
		version = *module.BundleVersion
	}

	write(module.Name, module.BundleName, module.SymbolicName, version,
		module.Vendor, module.CreatedBy, module.ImportPackage, module.TestProvided)
	write(module.OutputDirs...)
	write(module.OutputDir)

	for _, a := range module.Artifacts {
		write(a.ID(), a.Type, a.Scope, a.Path)
		write(a.Trail...)
	}
	for _, p := range module.Providers {
		write(p.Name, p.Exports)
	}
}

// hashDirectory hashes every file below dir. A missing directory hashes as empty.
func (h *Hasher) hashDirectory(dir string, hasher io.Writer) error {
	if _, err := os.Stat(dir); errors.Is(err, iofs.ErrNotExist) {
		_, _ = hasher.Write([]byte{0})
		return nil
	}

	var files []string
	for path, err := range h.walker.WalkFiles(dir, "") {
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", dir)
		}
		files = append(files, path)
	}
	slices.Sort(files)

	for _, path := range files {
		if err := h.hashFile(path, hasher); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hasher) hashFile(path string, mainHasher io.Writer) error {
	_, _ = mainHasher.Write([]byte(path))
	_, _ = mainHasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, domain.ErrWriteHashFailed.Error())
	}
	return nil
}
