// Package cas implements the on-disk fingerprint store.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FingerprintStore = (*Store)(nil)

// Store implements ports.FingerprintStore using a file-per-module strategy.
// Files live in .bundler/store below the workspace root and are named after the
// SHA-256 of the module name.
type Store struct{}

// NewStore creates a new FingerprintStore.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the fingerprint for a given module name.
func (s *Store) Get(root, module string) (*domain.Fingerprint, error) {
	filename := s.getFilename(root, module)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "module", module)
	}

	var fp domain.Fingerprint
	if err := json.Unmarshal(data, &fp); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "module", module)
	}

	return &fp, nil
}

// Put stores the fingerprint.
func (s *Store) Put(root string, fp domain.Fingerprint) error {
	data, err := json.MarshalIndent(fp, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.getFilename(root, fp.Module)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "module", fp.Module)
	}

	return nil
}

func (s *Store) getFilename(root, module string) string {
	hash := sha256.Sum256([]byte(module))
	return filepath.Join(root, domain.DefaultStorePath(), hex.EncodeToString(hash[:])+".json")
}
