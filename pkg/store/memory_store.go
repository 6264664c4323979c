package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// memoryStore is a map-backed Store used by package tests. Push keys are
// sequential so assembled fixtures keep a predictable iteration order.
type memoryStore struct {
	mu      sync.Mutex
	records map[string]json.RawMessage
	seq     int

	// Failure injection for exercising the empty-result-plus-error contract.
	failReads bool
	failPaths map[string]bool
}

func NewMemoryStore() Store {
	return &memoryStore{records: make(map[string]json.RawMessage)}
}

func (s *memoryStore) Get(ctx context.Context, out any, segments ...string) (bool, error) {
	path, err := joinPath(segments)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkFailure(path); err != nil {
		return false, err
	}
	raw, ok := s.records[path]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *memoryStore) GetAll(ctx context.Context, segments ...string) (map[string]json.RawMessage, error) {
	path, err := joinPath(segments)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkFailure(path); err != nil {
		return nil, err
	}
	prefix := path + "/"
	children := make(map[string]json.RawMessage)
	for p, raw := range s.records {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		if strings.Contains(rest, "/") {
			continue
		}
		children[rest] = raw
	}
	return children, nil
}

func (s *memoryStore) Set(ctx context.Context, value any, segments ...string) error {
	path, err := joinPath(segments)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkFailure(path); err != nil {
		return err
	}
	s.records[path] = payload
	return nil
}

func (s *memoryStore) Push(ctx context.Context, value any, segments ...string) (string, error) {
	s.mu.Lock()
	s.seq++
	key := fmt.Sprintf("key-%06d", s.seq)
	s.mu.Unlock()
	if err := s.Set(ctx, value, append(append([]string{}, segments...), key)...); err != nil {
		return "", err
	}
	return key, nil
}

func (s *memoryStore) Remove(ctx context.Context, segments ...string) error {
	path, err := joinPath(segments)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkFailure(path); err != nil {
		return err
	}
	delete(s.records, path)
	prefix := path + "/"
	for p := range s.records {
		if strings.HasPrefix(p, prefix) {
			delete(s.records, p)
		}
	}
	return nil
}

func (s *memoryStore) checkFailure(path string) error {
	if s.failReads {
		return ErrStoreUnavailable
	}
	if s.failPaths != nil && s.failPaths[path] {
		return ErrStoreUnavailable
	}
	return nil
}

// FailAll switches the store into a mode where every operation fails.
func FailAll(s Store, fail bool) {
	if m, ok := s.(*memoryStore); ok {
		m.mu.Lock()
		m.failReads = fail
		m.mu.Unlock()
	}
}

// FailPath makes operations on one exact path fail, leaving the rest working.
func FailPath(s Store, segments ...string) {
	if m, ok := s.(*memoryStore); ok {
		path, err := joinPath(segments)
		if err != nil {
			return
		}
		m.mu.Lock()
		if m.failPaths == nil {
			m.failPaths = make(map[string]bool)
		}
		m.failPaths[path] = true
		m.mu.Unlock()
	}
}
