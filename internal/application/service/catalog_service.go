package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sangkips/investify-receiving/internal/cache"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"github.com/sangkips/investify-receiving/internal/domain/repository"
	"github.com/sangkips/investify-receiving/pkg/utils"
)

// CatalogService serves location-priced catalog snapshots, cached for a
// short TTL so scan-heavy sessions do not hit the database on every add
type CatalogService struct {
	provider repository.CatalogProvider
	cache    cache.Cache
	ttl      time.Duration
}

// NewCatalogService creates a new catalog service. A zero ttl disables caching.
func NewCatalogService(provider repository.CatalogProvider, c cache.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{
		provider: provider,
		cache:    c,
		ttl:      ttl,
	}
}

func catalogKey(locationID uuid.UUID) string {
	return cache.GenerateKey(cache.PrefixCatalog, locationID)
}

// Items returns the catalog priced for locationID
func (s *CatalogService) Items(ctx context.Context, locationID uuid.UUID) ([]receiving.CatalogItem, error) {
	if s.ttl > 0 {
		if cached, ok := s.cache.Get(ctx, catalogKey(locationID)); ok {
			if items, ok := cached.([]receiving.CatalogItem); ok {
				return items, nil
			}
		}
	}

	items, err := s.provider.ListItems(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if s.ttl > 0 {
		s.cache.Set(ctx, catalogKey(locationID), items, s.ttl)
	}
	return items, nil
}

// Find returns the catalog item with id, nil when unknown
func (s *CatalogService) Find(ctx context.Context, locationID, id uuid.UUID) (*receiving.CatalogItem, error) {
	items, err := s.Items(ctx, locationID)
	if err != nil {
		return nil, err
	}
	item, ok := lo.Find(items, func(c receiving.CatalogItem) bool { return c.ID == id })
	if !ok {
		return nil, nil
	}
	return &item, nil
}

// FindBySKU returns the catalog item with sku, nil when unknown. SKUs are
// matched case-insensitively.
func (s *CatalogService) FindBySKU(ctx context.Context, locationID uuid.UUID, sku string) (*receiving.CatalogItem, error) {
	items, err := s.Items(ctx, locationID)
	if err != nil {
		return nil, err
	}
	sku = utils.NormalizeSKU(sku)
	item, ok := lo.Find(items, func(c receiving.CatalogItem) bool { return utils.NormalizeSKU(c.SKU) == sku })
	if !ok {
		return nil, nil
	}
	return &item, nil
}

// Invalidate drops every cached catalog snapshot
func (s *CatalogService) Invalidate(ctx context.Context) {
	s.cache.DeleteByPrefix(ctx, cache.PrefixCatalog)
}
