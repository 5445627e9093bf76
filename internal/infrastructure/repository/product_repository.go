package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
	domainRepo "github.com/sangkips/investify-receiving/internal/domain/repository"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"github.com/sangkips/investify-receiving/pkg/utils"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

// ListItems returns every product with its prices at locationID. Products
// never stocked there come back with zero prices.
func (r *productRepository) ListItems(ctx context.Context, locationID uuid.UUID) ([]receiving.CatalogItem, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Locations", "location_id = ?", locationID).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	items := make([]receiving.CatalogItem, 0, len(products))
	for i := range products {
		items = append(items, toCatalogItem(&products[i]))
	}
	return items, nil
}

// CreateItem creates the product and its price row at the receiving location
// in one transaction.
func (r *productRepository) CreateItem(ctx context.Context, spec receiving.NewItemSpec) (*receiving.CatalogItem, error) {
	sku := spec.SKU
	if sku == "" {
		sku = utils.GenerateSKU()
	}
	product := &entity.Product{
		CategoryID: spec.CategoryID,
		Name:       spec.Name,
		Slug:       utils.Slugify(spec.Name) + "-" + strings.ToLower(sku),
		SKU:        sku,
	}
	if spec.CreatedBy != uuid.Nil {
		createdBy := spec.CreatedBy
		product.CreatedBy = &createdBy
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		price := &entity.ProductLocation{
			ProductID:      product.ID,
			LocationID:     spec.LocationID,
			CostPrice:      spec.CostPrice,
			RetailPrice:    spec.RetailPrice,
			WholesalePrice: spec.WholesalePrice,
		}
		if err := tx.Create(price).Error; err != nil {
			return err
		}
		product.Locations = []entity.ProductLocation{*price}
		return nil
	})
	if err != nil {
		return nil, err
	}

	item := toCatalogItem(product)
	return &item, nil
}

func toCatalogItem(p *entity.Product) receiving.CatalogItem {
	item := receiving.CatalogItem{
		ID:     p.ID,
		Name:   p.Name,
		SKU:    p.SKU,
		Prices: make(map[uuid.UUID]receiving.LocationPrice, len(p.Locations)),
	}
	if p.Category != nil {
		item.Category = p.Category.Name
	}
	for _, pl := range p.Locations {
		item.Prices[pl.LocationID] = receiving.LocationPrice{
			CostPrice:      pl.CostPrice,
			RetailPrice:    pl.RetailPrice,
			WholesalePrice: pl.WholesalePrice,
		}
	}
	return item
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}
