// Package cache persists per-model fetch results between runs so that a
// model which already returned a usable SVG is never paid for twice.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is the recorded outcome of one model fetch. Entries round-trip
// losslessly through Load/Save.
type Entry struct {
	SVG       string    `json:"svg,omitempty"`
	ElapsedMS float64   `json:"elapsed_ms"`
	FetchedAt time.Time `json:"fetched_at"`
	OK        bool      `json:"ok"`
	Err       string    `json:"err,omitempty"`
}

// Store binds the cache to a file path. The file holds a single JSON object
// keyed by model display name.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted entries. A missing file is a first run and yields
// an empty map. Malformed JSON is a hard error: silently resetting would
// discard results that cost money to produce.
func (s *Store) Load() (map[string]Entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache %q: %w", s.path, err)
	}

	entries := map[string]Entry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse cache %q (delete the file to force full regeneration): %w", s.path, err)
	}
	return entries, nil
}

// Save atomically replaces the persisted entries. The new content is written
// to a temp file in the same directory and renamed over the old one, so a
// crash mid-save cannot corrupt previously good data.
func (s *Store) Save(entries map[string]Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace cache %q: %w", s.path, err)
	}
	return nil
}

// Remove deletes the persisted cache file. A missing file is not an error;
// this is the operator action that forces full regeneration.
func (s *Store) Remove() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cache %q: %w", s.path, err)
	}
	return nil
}

// IsHit reports whether entries holds a successful result for name.
// A present-but-failed entry is a miss and gets retried on the next run.
func IsHit(entries map[string]Entry, name string) bool {
	e, ok := entries[name]
	return ok && e.OK
}
