// Package localstore is the durable local key-value storage the session
// persists itself into, the client-side analogue of browser localStorage:
// a flat JSON file of string keys under the user's state directory.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Fixed keys shared with the session store.
const (
	KeyUser  = "user"
	KeyToken = "token"
)

type Store struct {
	path   string
	values map[string]string
}

// Open loads the store at path, creating parent directories as needed.
// A missing file is an empty store, not an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	return s, nil
}

// Get returns the stored value for key, with ok false when absent.
func (s *Store) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores the value and writes the file through.
func (s *Store) Set(key, value string) error {
	s.values[key] = value
	return s.flush()
}

// Delete removes a single key and writes the file through.
func (s *Store) Delete(key string) error {
	delete(s.values, key)
	return s.flush()
}

// Clear removes every key, matching localStorage.clear() on logout.
func (s *Store) Clear() error {
	s.values = make(map[string]string)
	return s.flush()
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	return len(s.values)
}

func (s *Store) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
