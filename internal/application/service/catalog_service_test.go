package service

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/cache"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"github.com/sangkips/investify-receiving/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogServiceCachesPerLocation(t *testing.T) {
	ctx := context.Background()
	loc := uuid.New()
	provider := testutil.NewInMemoryCatalog(receiving.CatalogItem{ID: uuid.New(), Name: "Tea 500g", SKU: "tea-500"})
	svc := NewCatalogService(provider, cache.NewInMemoryCache(time.Minute, time.Minute), time.Minute)

	_, err := svc.Items(ctx, loc)
	require.NoError(t, err)
	_, err = svc.Items(ctx, loc)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.ListCalls())

	_, err = svc.Items(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 2, provider.ListCalls())

	svc.Invalidate(ctx)
	_, err = svc.Items(ctx, loc)
	require.NoError(t, err)
	assert.Equal(t, 3, provider.ListCalls())
}

func TestCatalogServiceWithoutTTL(t *testing.T) {
	ctx := context.Background()
	provider := testutil.NewInMemoryCatalog()
	svc := NewCatalogService(provider, cache.NewInMemoryCache(time.Minute, time.Minute), 0)

	for i := 0; i < 3; i++ {
		_, err := svc.Items(ctx, uuid.New())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, provider.ListCalls())
}

func TestCatalogServiceFind(t *testing.T) {
	ctx := context.Background()
	loc := uuid.New()
	tea := receiving.CatalogItem{ID: uuid.New(), Name: "Tea 500g", SKU: "tea-500"}
	svc := NewCatalogService(testutil.NewInMemoryCatalog(tea), cache.NewInMemoryCache(time.Minute, time.Minute), time.Minute)

	item, err := svc.Find(ctx, loc, tea.ID)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Tea 500g", item.Name)

	item, err = svc.FindBySKU(ctx, loc, " TEA-500 ")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, tea.ID, item.ID)

	item, err = svc.Find(ctx, loc, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestCatalogServiceProviderError(t *testing.T) {
	provider := testutil.NewInMemoryCatalog()
	provider.SetListError(errors.New("db down"))
	svc := NewCatalogService(provider, cache.NewInMemoryCache(time.Minute, time.Minute), time.Minute)

	_, err := svc.FindBySKU(context.Background(), uuid.New(), "X")
	assert.Error(t, err)
}
