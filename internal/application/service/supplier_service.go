package service

import (
	"context"

	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"github.com/sangkips/investify-receiving/internal/domain/repository"
	"github.com/sangkips/investify-receiving/pkg/apperror"
)

// SupplierService handles supplier-related operations. It is the supplier
// directory of the receiving desk.
type SupplierService struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// ListSuppliers returns all suppliers ordered by name
func (s *SupplierService) ListSuppliers(ctx context.Context) ([]receiving.SupplierRef, error) {
	return s.supplierRepo.ListSuppliers(ctx)
}

// CreateSupplier creates a supplier after checking the name is free
func (s *SupplierService) CreateSupplier(ctx context.Context, spec receiving.NewSupplierSpec) (*receiving.SupplierRef, error) {
	spec.Normalize()
	if err := validateSupplierSpec(spec); err != nil {
		return nil, err
	}

	existing, err := s.supplierRepo.GetByName(ctx, spec.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Supplier with this name already exists")
	}

	return s.supplierRepo.CreateSupplier(ctx, spec)
}

// validateSupplierSpec expects a normalized spec
func validateSupplierSpec(spec receiving.NewSupplierSpec) error {
	var fieldErrors []apperror.FieldError
	if spec.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Supplier name is required"})
	}
	if !spec.Type.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "type", Message: "Unknown supplier type: " + spec.Type.String()})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
