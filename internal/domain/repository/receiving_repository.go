package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"github.com/sangkips/investify-receiving/pkg/pagination"
)

// CatalogProvider exposes a read-only snapshot of the catalog priced for one
// location
type CatalogProvider interface {
	ListItems(ctx context.Context, locationID uuid.UUID) ([]receiving.CatalogItem, error)
}

// CatalogItemCreator creates catalog items from the receiving desk
type CatalogItemCreator interface {
	CreateItem(ctx context.Context, spec receiving.NewItemSpec) (*receiving.CatalogItem, error)
}

// SupplierDirectory lists and creates suppliers
type SupplierDirectory interface {
	ListSuppliers(ctx context.Context) ([]receiving.SupplierRef, error)
	CreateSupplier(ctx context.Context, spec receiving.NewSupplierSpec) (*receiving.SupplierRef, error)
}

// DraftStore is the durable key/value slot for draft snapshots.
// Get reports a missing key as ("", false, nil).
type DraftStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// PurgeOlderThan removes snapshots last written before cutoff and returns how many were removed
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// CommitSink durably applies a commit request: it records the goods receipt,
// increments stock and writes the committed prices, all or nothing.
type CommitSink interface {
	Commit(ctx context.Context, req receiving.CommitRequest) (*entity.GoodsReceipt, error)
}

// GoodsReceiptRepository reads committed goods receipts
type GoodsReceiptRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.GoodsReceipt, error)
	GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.GoodsReceipt, error)
	// List returns the receipts of the location carried by ctx
	List(ctx context.Context, params *GoodsReceiptFilterParams) ([]entity.GoodsReceipt, int64, error)
}

// GoodsReceiptFilterParams contains filtering parameters for goods receipt queries
type GoodsReceiptFilterParams struct {
	Pagination *pagination.PaginationParams
	SupplierID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Unpaid     bool
}
