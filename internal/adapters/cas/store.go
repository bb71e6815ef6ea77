// Package cas persists config record snapshots, one JSON file per record.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/cfgtrack/internal/core/domain"
	"go.trai.ch/cfgtrack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RecordStore = (*Store)(nil)

// Store implements ports.RecordStore using a file-per-record strategy.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the snapshot stored for key below cacheDir.
func (s *Store) Get(cacheDir, key string) (*domain.RecordSnapshot, error) {
	filename := s.getFilename(cacheDir, key)
	//nolint:gosec // Path is constructed from the cache directory and a hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "key", key)
	}

	var snap domain.RecordSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "key", key)
	}

	return &snap, nil
}

// Put stores the snapshot under its record ID, replacing any previous one.
func (s *Store) Put(cacheDir string, snap domain.RecordSnapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error()), "key", snap.ID)
	}

	filename := s.getFilename(cacheDir, snap.ID)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	tmp := filename + ".tmp"
	//nolint:gosec // Path is constructed from the cache directory and a hashed filename
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", snap.ID)
	}
	if err := os.Rename(tmp, filename); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", snap.ID)
	}

	return nil
}

func (s *Store) getFilename(cacheDir, key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(domain.RecordStorePath(cacheDir), hex.EncodeToString(hash[:])+".json")
}
