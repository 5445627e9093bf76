package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
)

// InMemoryCatalog implements repository.CatalogProvider and
// repository.CatalogItemCreator
type InMemoryCatalog struct {
	mu        sync.RWMutex
	items     []receiving.CatalogItem
	listErr   error
	createErr error
	listCalls int
}

// NewInMemoryCatalog creates a catalog holding items
func NewInMemoryCatalog(items ...receiving.CatalogItem) *InMemoryCatalog {
	return &InMemoryCatalog{items: items}
}

// Add appends an item to the catalog
func (c *InMemoryCatalog) Add(item receiving.CatalogItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// SetListError makes ListItems fail with err; nil restores it
func (c *InMemoryCatalog) SetListError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listErr = err
}

// SetCreateError makes CreateItem fail with err; nil restores it
func (c *InMemoryCatalog) SetCreateError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.createErr = err
}

// ListCalls is how often ListItems reached the store
func (c *InMemoryCatalog) ListCalls() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.listCalls
}

func (c *InMemoryCatalog) ListItems(_ context.Context, _ uuid.UUID) ([]receiving.CatalogItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listCalls++
	if c.listErr != nil {
		return nil, c.listErr
	}
	return append([]receiving.CatalogItem(nil), c.items...), nil
}

func (c *InMemoryCatalog) CreateItem(_ context.Context, spec receiving.NewItemSpec) (*receiving.CatalogItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.createErr != nil {
		return nil, c.createErr
	}

	item := receiving.CatalogItem{
		ID:   uuid.New(),
		Name: spec.Name,
		SKU:  spec.SKU,
		Prices: map[uuid.UUID]receiving.LocationPrice{
			spec.LocationID: {
				CostPrice:      spec.CostPrice,
				RetailPrice:    spec.RetailPrice,
				WholesalePrice: spec.WholesalePrice,
			},
		},
	}
	c.items = append(c.items, item)
	return &item, nil
}
