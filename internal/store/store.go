package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Store keeps documents in memory and mirrors every mutation to a JSON file.
// Reads never touch the disk after Load.
type Store struct {
	path   string
	logger *zap.Logger

	mu   sync.RWMutex
	docs []Document
}

// New builds a Store backed by the JSON file at path.
func New(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Load reads the backing file into memory. A missing file is created empty.
// An unreadable or corrupt file is logged and treated as empty so service
// startup never fails on bad local state.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.docs = nil
		return s.saveLocked()
	case err != nil:
		s.logger.Error("read store file", zap.String("path", s.path), zap.Error(err))
		s.docs = nil
		return nil
	}

	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		s.logger.Error("decode store file", zap.String("path", s.path), zap.Error(err))
		s.docs = nil
		return nil
	}
	s.docs = docs
	return nil
}

// Save writes the current documents to the backing file.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	docs := s.docs
	if docs == nil {
		docs = []Document{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}

// Append validates and adds one document, then persists. A failed write is
// logged and the in-memory mutation stands.
func (s *Store) Append(text string, meta Metadata) error {
	doc, err := NewDocument(text, meta)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
	if err := s.saveLocked(); err != nil {
		s.logger.Warn("persist store", zap.String("path", s.path), zap.Error(err))
	}
	return nil
}

// Clear drops all documents from memory. The backing file is untouched until
// the next Save or Append.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = nil
}

// All returns a copy of the stored documents in insertion order.
func (s *Store) All() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Count reports how many documents are stored.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
