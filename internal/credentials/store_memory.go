package credentials

import (
	"context"
	"sync"
)

// MemoryStore keeps credentials in process memory and is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, scope, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[memoryKey(scope, key)]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (s *MemoryStore) Set(ctx context.Context, scope, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[memoryKey(scope, key)] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, scope, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, memoryKey(scope, key))
	return nil
}

func memoryKey(scope, key string) string {
	return scope + "|" + key
}
