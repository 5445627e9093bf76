package repository

import (
	"context"
	"time"

	"github.com/sangkips/investify-receiving/internal/cache"
	domainRepo "github.com/sangkips/investify-receiving/internal/domain/repository"
)

type memoryDraft struct {
	payload   string
	updatedAt time.Time
}

type memoryDraftStore struct {
	cache *cache.InMemoryCache
	now   func() time.Time
}

// NewMemoryDraftStore creates a process-local draft store. Snapshots do not
// survive a restart.
func NewMemoryDraftStore(c *cache.InMemoryCache) domainRepo.DraftStore {
	return &memoryDraftStore{cache: c, now: time.Now}
}

func (s *memoryDraftStore) key(key string) string {
	return cache.PrefixDraft + key
}

func (s *memoryDraftStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := s.cache.Get(ctx, s.key(key))
	if !ok {
		return "", false, nil
	}
	d, ok := v.(memoryDraft)
	if !ok {
		return "", false, nil
	}
	return d.payload, true, nil
}

func (s *memoryDraftStore) Set(ctx context.Context, key, value string) error {
	s.cache.Set(ctx, s.key(key), memoryDraft{payload: value, updatedAt: s.now()}, cache.NoExpiration)
	return nil
}

func (s *memoryDraftStore) Delete(ctx context.Context, key string) error {
	s.cache.Delete(ctx, s.key(key))
	return nil
}

func (s *memoryDraftStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var purged int64
	for _, k := range s.cache.Keys(cache.PrefixDraft) {
		v, ok := s.cache.Get(ctx, k)
		if !ok {
			continue
		}
		if d, ok := v.(memoryDraft); ok && d.updatedAt.Before(cutoff) {
			s.cache.Delete(ctx, k)
			purged++
		}
	}
	return purged, nil
}
