package testhelper

import (
	"context"
	"errors"
	"io"
	"sync"
)

// FileStore is an in-memory storage.FileStore
type FileStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	saves   int
	// FailAfter makes the Nth and later saves fail when > 0
	FailAfter int
	// DeleteErr is returned by Delete when set
	DeleteErr error
	Deleted   []string
}

// NewFileStore creates an empty store
func NewFileStore() *FileStore {
	return &FileStore{objects: map[string][]byte{}}
}

func (s *FileStore) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.FailAfter > 0 && s.saves >= s.FailAfter {
		return "", errors.New("store unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	ref := "/uploads/" + key
	s.objects[ref] = data
	return ref, nil
}

func (s *FileStore) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, ref)
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.objects, ref)
	return nil
}

func (s *FileStore) Close() error { return nil }

// Has reports whether ref is currently stored
func (s *FileStore) Has(ref string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[ref]
	return ok
}

// Len returns the number of stored objects
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
