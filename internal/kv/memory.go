package kv

import (
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store. QuotaBytes, when positive, caps the
// total size of keys plus values.
type MemoryStore struct {
	mu         sync.RWMutex
	data       map[string]string
	quotaBytes int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store. quotaBytes <= 0 disables the quota.
func NewMemoryStore(quotaBytes int) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]string),
		quotaBytes: quotaBytes,
	}
}

// Get implements Store.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set implements Store.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quotaBytes > 0 {
		used := 0
		for k, v := range s.data {
			if k == key {
				continue
			}
			used += len(k) + len(v)
		}
		if used+len(key)+len(value) > s.quotaBytes {
			return fmt.Errorf("setting %q (%d bytes): %w", key, len(value), ErrQuotaExceeded)
		}
	}

	s.data[key] = value
	return nil
}

// Remove implements Store.
func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
