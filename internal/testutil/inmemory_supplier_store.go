package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
)

// InMemorySupplierStore implements repository.SupplierRepository
type InMemorySupplierStore struct {
	mu        sync.RWMutex
	suppliers []*entity.Supplier
	createErr error
}

// NewInMemorySupplierStore creates an empty supplier store
func NewInMemorySupplierStore() *InMemorySupplierStore {
	return &InMemorySupplierStore{}
}

// SetCreateError makes CreateSupplier fail with err; nil restores it
func (s *InMemorySupplierStore) SetCreateError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createErr = err
}

func (s *InMemorySupplierStore) GetByName(_ context.Context, name string) (*entity.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sup := range s.suppliers {
		if strings.EqualFold(sup.Name, strings.TrimSpace(name)) {
			return sup, nil
		}
	}
	return nil, nil
}

func (s *InMemorySupplierStore) ListSuppliers(_ context.Context) ([]receiving.SupplierRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refs := make([]receiving.SupplierRef, 0, len(s.suppliers))
	for _, sup := range s.suppliers {
		refs = append(refs, receiving.SupplierRef{ID: sup.ID, Name: sup.Name, Phone: sup.PhoneNumber(), Type: sup.Type})
	}
	return refs, nil
}

func (s *InMemorySupplierStore) CreateSupplier(_ context.Context, spec receiving.NewSupplierSpec) (*receiving.SupplierRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}

	sup := &entity.Supplier{
		ID:        uuid.New(),
		Name:      spec.Name,
		Type:      spec.Type.OrDefault(),
		CreatedAt: time.Now().UTC(),
	}
	if spec.Phone != "" {
		phone := spec.Phone
		sup.Phone = &phone
	}
	s.suppliers = append(s.suppliers, sup)
	return &receiving.SupplierRef{ID: sup.ID, Name: sup.Name, Phone: sup.PhoneNumber(), Type: sup.Type}, nil
}
