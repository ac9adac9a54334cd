// Package refdoc holds the process-wide reference document used to
// ground feedback. The admin is the only writer; students only read.
// Replacement is a read-copy swap so a reader never observes a
// half-written document.
package refdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a file-persisted singleton text document.
type Store struct {
	path string

	mu   sync.RWMutex
	text string
}

// NewStore opens the store, loading any previously persisted document.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load reference document: %w", err)
		}
		return s, nil
	}

	s.text = string(data)
	return s, nil
}

// Current returns the reference document in effect. Empty until the
// admin uploads one.
func (s *Store) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// Replace persists the new text and swaps it in. On any failure the
// previous document stays in effect.
func (s *Store) Replace(text string) error {
	if text == "" {
		return fmt.Errorf("reference document must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create reference directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to stage reference document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to persist reference document: %w", err)
	}

	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
	return nil
}
