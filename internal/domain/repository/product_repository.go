package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	CatalogProvider
	CatalogItemCreator
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
}
