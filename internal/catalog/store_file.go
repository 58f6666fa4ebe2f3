package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// FileStore keeps the whole catalog as one JSON array in a single file.
// Every mutation is a load+append+rewrite; the mutex makes that sequence
// a single critical section so concurrent appends cannot lose updates.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Ping(ctx context.Context) error {
	_, err := os.Stat(filepath.Dir(s.path))
	return err
}

func (s *FileStore) LoadAll(ctx context.Context) ([]Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileStore) Append(ctx context.Context, c Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	courses, err := s.loadLocked()
	if err != nil {
		return err
	}

	return s.writeLocked(append(courses, c))
}

func (s *FileStore) loadLocked() ([]Course, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []Course{}, nil
	}
	if err != nil {
		return nil, err
	}

	var courses []Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	return courses, nil
}

// writeLocked rewrites the file through a uniquely named temp file in the
// same directory plus rename, so a crash mid-write leaves the old catalog
// intact.
func (s *FileStore) writeLocked(courses []Course) error {
	raw, err := json.MarshalIndent(courses, "", "    ")
	if err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.tmp-%s", s.path, uuid.NewString())
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
