package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
)

type idempotencyScope struct {
	key    string
	userID uuid.UUID
}

// InMemoryIdempotencyStore implements repository.IdempotencyRepository
type InMemoryIdempotencyStore struct {
	mu   sync.RWMutex
	keys map[idempotencyScope]entity.IdempotencyKey
}

// NewInMemoryIdempotencyStore creates an empty store
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{keys: make(map[idempotencyScope]entity.IdempotencyKey)}
}

func (s *InMemoryIdempotencyStore) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ikey, ok := s.keys[idempotencyScope{key, userID}]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (s *InMemoryIdempotencyStore) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[idempotencyScope{ikey.Key, ikey.UserID}] = *ikey
	return nil
}

func (s *InMemoryIdempotencyStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for scope, ikey := range s.keys {
		if ikey.ExpiresAt.Before(now) {
			delete(s.keys, scope)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored keys
func (s *InMemoryIdempotencyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}
