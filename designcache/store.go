// Package designcache persists fetched design documents so a session can
// surface a design immediately on cold start instead of waiting on the
// network. One JSON file per project identity; a malformed or unreadable
// file reads as absent, never as an error.
package designcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quillfeed/quillfeed/design"
)

// Store reads and writes cached design documents under a directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created lazily on
// the first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the cache file for a project identity.
func (s *Store) Path(projectID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("blog-design-%s.json", projectID))
}

// Read returns the cached document for the project, or absent when the file
// is missing or does not parse.
func (s *Store) Read(projectID string) (*design.Document, bool) {
	payload, err := os.ReadFile(s.Path(projectID))
	if err != nil {
		return nil, false
	}
	var doc design.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, false
	}
	return &doc, true
}

// Write persists the document for the project, replacing any previous copy.
func (s *Store) Write(projectID string, doc *design.Document) error {
	if doc == nil {
		return fmt.Errorf("designcache: nil document for %s", projectID)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("designcache: mkdir %s: %w", s.dir, err)
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("designcache: marshal %s: %w", projectID, err)
	}
	path := s.Path(projectID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("designcache: write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("designcache: rename %s: %w", path, err)
	}
	return nil
}

// Remove deletes the cached document for the project, if any.
func (s *Store) Remove(projectID string) error {
	err := os.Remove(s.Path(projectID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("designcache: remove %s: %w", projectID, err)
	}
	return nil
}
