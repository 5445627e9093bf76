package repository

import (
	"context"

	"github.com/sangkips/investify-receiving/internal/domain/entity"
)

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	SupplierDirectory
	// GetByName finds a supplier by case-insensitive name, nil when unknown
	GetByName(ctx context.Context, name string) (*entity.Supplier, error)
}
