package testutil

import (
	"context"
	"sync"
	"time"
)

type storedDraft struct {
	value     string
	updatedAt time.Time
}

// InMemoryDraftStore implements repository.DraftStore with failure switches
type InMemoryDraftStore struct {
	mu        sync.RWMutex
	drafts    map[string]storedDraft
	now       func() time.Time
	getErr    error
	setErr    error
	deleteErr error
	writes    int
}

// NewInMemoryDraftStore creates an empty draft store stamping writes with now
func NewInMemoryDraftStore(now func() time.Time) *InMemoryDraftStore {
	if now == nil {
		now = time.Now
	}
	return &InMemoryDraftStore{
		drafts: make(map[string]storedDraft),
		now:    now,
	}
}

// SetErrors makes Get, Set and Delete fail with the given errors; nil
// restores each
func (s *InMemoryDraftStore) SetErrors(getErr, setErr, deleteErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr = getErr
	s.setErr = setErr
	s.deleteErr = deleteErr
}

// Put stores a raw value directly, bypassing failure switches
func (s *InMemoryDraftStore) Put(key, value string, updatedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[key] = storedDraft{value: value, updatedAt: updatedAt}
}

// Raw returns the stored value without going through failure switches
func (s *InMemoryDraftStore) Raw(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[key]
	return d.value, ok
}

// Writes counts successful Set calls
func (s *InMemoryDraftStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

func (s *InMemoryDraftStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	d, ok := s.drafts[key]
	return d.value, ok, nil
}

func (s *InMemoryDraftStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.drafts[key] = storedDraft{value: value, updatedAt: s.now()}
	s.writes++
	return nil
}

func (s *InMemoryDraftStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.drafts, key)
	return nil
}

func (s *InMemoryDraftStore) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k, d := range s.drafts {
		if d.updatedAt.Before(cutoff) {
			delete(s.drafts, k)
			n++
		}
	}
	return n, nil
}
