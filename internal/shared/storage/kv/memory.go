package kv

import (
	"context"
	"sync"
)

// MemoryStore keeps slots in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{slots: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, owner, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validate(owner, key); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.slots[owner][key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (s *MemoryStore) Put(ctx context.Context, owner, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validate(owner, key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.slots[owner]
	if !ok {
		bucket = make(map[string]string)
		s.slots[owner] = bucket
	}
	bucket[key] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, owner, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validate(owner, key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if bucket, ok := s.slots[owner]; ok {
		delete(bucket, key)
		if len(bucket) == 0 {
			delete(s.slots, owner)
		}
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
