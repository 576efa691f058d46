package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is the key-value view of the progress file. Callers never see
// the whole-file mechanics, so a future backend can add per-key locking
// or transactions without touching them.
type Store interface {
	// Get returns the record for a username. The second return is false
	// when no record exists.
	Get(username string) (Record, bool, error)

	// Put writes the record for a username, creating it if absent.
	Put(username string, rec Record) error
}

// FileStore keeps all records in one JSON file, rewritten whole on
// every Put. A mutex serializes access within this process; concurrent
// writers from other processes can still race (last write wins). That
// is a known limitation of the flat-file layout, not a guarantee.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the JSON file at path.
// The file does not need to exist yet.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("progress store path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create progress store directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Get(username string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	rec, ok := data[username]
	return rec, ok, nil
}

// Put runs a whole-file read-modify-write so records of other users
// written since our last read are preserved.
func (s *FileStore) Put(username string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	data[username] = rec
	return s.save(data)
}

// All returns every stored record keyed by username. Used by CLI
// inspection; request handling goes through Get and Put.
func (s *FileStore) All() (map[string]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// load reads the backing file. A missing or unparsable file yields an
// empty map, never an error: corrupt state must not take the app down.
func (s *FileStore) load() map[string]Record {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]Record{}
	}

	var data map[string]Record
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		return map[string]Record{}
	}
	return data
}

// save serializes the full mapping and replaces the backing file via
// rename, so a reader never observes a partial write.
func (s *FileStore) save(data map[string]Record) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress data: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".progress-*")
	if err != nil {
		return fmt.Errorf("create temp progress file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write progress data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp progress file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace progress file: %w", err)
	}
	return nil
}
