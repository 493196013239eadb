package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// fileData is the on-disk format: {"completed": [ids...]}.
type fileData struct {
	Completed []string `json:"completed"`
}

// FileStore keeps the completion set in a single JSON file. Ids are written
// in the order they were completed. A missing file is an empty set.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by the file at path. Parent directories
// are created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(ctx context.Context) (Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return nil, err
	}
	return NewSet(data.Completed...), nil
}

func (s *FileStore) Mark(ctx context.Context, id string) error {
	_, err := s.update(func(d *fileData) bool {
		if !slices.Contains(d.Completed, id) {
			d.Completed = append(d.Completed, id)
		}
		return true
	})
	return err
}

func (s *FileStore) Unmark(ctx context.Context, id string) error {
	_, err := s.update(func(d *fileData) bool {
		d.Completed = slices.DeleteFunc(d.Completed, func(x string) bool { return x == id })
		return false
	})
	return err
}

func (s *FileStore) Toggle(ctx context.Context, id string) (bool, error) {
	return s.update(func(d *fileData) bool {
		if slices.Contains(d.Completed, id) {
			d.Completed = slices.DeleteFunc(d.Completed, func(x string) bool { return x == id })
			return false
		}
		d.Completed = append(d.Completed, id)
		return true
	})
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) update(fn func(*fileData) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return false, err
	}
	done := fn(&data)
	return done, s.write(data)
}

func (s *FileStore) read() (fileData, error) {
	var d fileData
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return d, fmt.Errorf("read progress file: %w", err)
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return d, fmt.Errorf("parse progress file %s: %w", s.path, err)
	}
	return d, nil
}

func (s *FileStore) write(d fileData) error {
	if d.Completed == nil {
		d.Completed = []string{}
	}
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}
	// Unique temp name per write; other processes may share the file.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return fmt.Errorf("write progress file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write progress file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write progress file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write progress file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace progress file: %w", err)
	}
	return nil
}
