// Package store provides a JSON-backed key-value store for secure pack
// metadata records. One record per pack id is written as part of a successful
// install and must stay consistent with the pack's manifest.json on disk.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prepstack/packman/pkg/errors"
	"github.com/prepstack/packman/pkg/model"
)

// RecordStore defines the interface for the secure pack metadata store.
type RecordStore interface {
	Get(packID string) (model.PackRecord, bool, error)
	Put(packID string, record model.PackRecord) error
	Remove(packID string) error
	All() (map[string]model.PackRecord, error)
}

// FileStore is a file-backed RecordStore. Writes go through a temp file and
// an atomic rename so a crash never leaves a half-written store.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// storeFile is the on-disk shape of the record store.
type storeFile struct {
	FormatVersion string                      `json:"format_version"`
	LastUpdate    time.Time                   `json:"last_update"`
	Records       map[string]model.PackRecord `json:"records"`
}

// NewFileStore creates a store persisting to the given file path. The path
// must be absolute; the file is created on first write.
func NewFileStore(path string) (*FileStore, error) {
	cleanPath := filepath.Clean(path)
	if !filepath.IsAbs(cleanPath) {
		return nil, fmt.Errorf("store path must be absolute: %s: %w", path, errors.ErrInvalidPath)
	}
	return &FileStore{path: cleanPath}, nil
}

// Get returns the record for a pack id, reporting whether one exists.
func (s *FileStore) Get(packID string) (model.PackRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.load()
	if err != nil {
		return model.PackRecord{}, false, err
	}
	record, ok := records[packID]
	return record, ok, nil
}

// Put writes the record for a pack id and persists the store.
func (s *FileStore) Put(packID string, record model.PackRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	records[packID] = record
	return s.save(records)
}

// Remove deletes the record for a pack id. Removing an absent record is not
// an error.
func (s *FileStore) Remove(packID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := records[packID]; !ok {
		return nil
	}
	delete(records, packID)
	return s.save(records)
}

// All returns a copy of every stored record keyed by pack id.
func (s *FileStore) All() (map[string]model.PackRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// load reads the store file. A missing file yields an empty store.
func (s *FileStore) load() (map[string]model.PackRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]model.PackRecord), nil
		}
		return nil, fmt.Errorf("failed to read record store: %w", err)
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrStoreCorrupt, err.Error())
	}
	if file.Records == nil {
		file.Records = make(map[string]model.PackRecord)
	}
	return file.Records, nil
}

// save writes the store atomically: marshal to a temp file in the same
// directory, sync, then rename over the target.
func (s *FileStore) save(records map[string]model.PackRecord) (err error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, "packman-store-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary store file in %s: %w", dir, err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	data, err := json.MarshalIndent(storeFile{
		FormatVersion: "1",
		LastUpdate:    time.Now(),
		Records:       records,
	}, "", "  ")
	if err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to marshal record store: %w", err)
	}

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to write temporary store file: %w", err)
	}
	if err = tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to sync temporary store file: %w", err)
	}
	if err = tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary store file: %w", err)
	}

	if err = os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to rename temporary store file to %s: %w", s.path, err)
	}
	return nil
}
