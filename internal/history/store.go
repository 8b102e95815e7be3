// Package history keeps an append-only JSON record of comparison runs
// so aggregate drift can be tracked across CI jobs.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"perfgate/internal/compare"
)

// Entry is the recorded outcome of one comparison run.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Commit    string    `json:"commit,omitempty"`
	Count     int       `json:"count"`
	Mean      float64   `json:"mean_relative_duration"`
	Min       float64   `json:"min_relative_duration"`
	Max       float64   `json:"max_relative_duration"`
	Errors    int       `json:"errors"`
	Failed    bool      `json:"failed"`
}

// NewEntry builds an Entry from a run's aggregate and verdict.
func NewEntry(agg compare.Aggregate, commit string, failed bool) Entry {
	return Entry{
		Timestamp: time.Now().UTC(),
		Commit:    commit,
		Count:     agg.Count,
		Mean:      agg.Mean,
		Min:       agg.Min,
		Max:       agg.Max,
		Errors:    agg.Errors,
		Failed:    failed,
	}
}

// FileStore persists entries in a single JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &FileStore{path: path}, nil
}

// Append adds an entry to the history file, creating it if needed.
func (s *FileStore) Append(e Entry) error {
	entries, err := s.LoadAll()
	if err != nil {
		return err
	}

	entries = append(entries, e)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return os.WriteFile(s.path, data, 0644)
}

// LoadAll returns all recorded entries, oldest first. A missing or
// empty file is an empty history, not an error.
func (s *FileStore) LoadAll() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history file %s: %w", s.path, err)
	}
	return entries, nil
}

// LoadLatest returns the most recent entry, or nil for an empty history.
func (s *FileStore) LoadLatest() (*Entry, error) {
	entries, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[len(entries)-1], nil
}
