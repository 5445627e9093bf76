package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
	domainRepo "github.com/sangkips/investify-receiving/internal/domain/repository"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"gorm.io/gorm"
)

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) GetByName(ctx context.Context, name string) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.WithContext(ctx).
		First(&supplier, "LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) ListSuppliers(ctx context.Context) ([]receiving.SupplierRef, error) {
	var suppliers []entity.Supplier
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&suppliers).Error; err != nil {
		return nil, err
	}

	refs := make([]receiving.SupplierRef, 0, len(suppliers))
	for i := range suppliers {
		refs = append(refs, toSupplierRef(&suppliers[i]))
	}
	return refs, nil
}

func (r *supplierRepository) CreateSupplier(ctx context.Context, spec receiving.NewSupplierSpec) (*receiving.SupplierRef, error) {
	supplier := &entity.Supplier{
		Name:  strings.TrimSpace(spec.Name),
		Phone: optional(spec.Phone),
		Email: optional(strings.ToLower(spec.Email)),
		Type:  spec.Type.OrDefault(),
	}
	if spec.CreatedBy != uuid.Nil {
		createdBy := spec.CreatedBy
		supplier.CreatedBy = &createdBy
	}

	if err := r.db.WithContext(ctx).Create(supplier).Error; err != nil {
		return nil, err
	}
	ref := toSupplierRef(supplier)
	return &ref, nil
}

func toSupplierRef(s *entity.Supplier) receiving.SupplierRef {
	return receiving.SupplierRef{
		ID:    s.ID,
		Name:  s.Name,
		Phone: s.PhoneNumber(),
		Type:  s.Type.OrDefault(),
	}
}

// optional returns nil for blank strings
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
