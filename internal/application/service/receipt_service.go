package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
	"github.com/sangkips/investify-receiving/internal/domain/repository"
	infraRepo "github.com/sangkips/investify-receiving/internal/infrastructure/repository"
	"github.com/sangkips/investify-receiving/pkg/apperror"
	"github.com/sangkips/investify-receiving/pkg/pagination"
)

// ReceiptService reads committed goods receipts
type ReceiptService struct {
	receiptRepo  repository.GoodsReceiptRepository
	locationRepo repository.LocationRepository
}

// NewReceiptService creates a new receipt service
func NewReceiptService(receiptRepo repository.GoodsReceiptRepository, locationRepo repository.LocationRepository) *ReceiptService {
	return &ReceiptService{
		receiptRepo:  receiptRepo,
		locationRepo: locationRepo,
	}
}

// ListReceipts lists the receipts of the location in ctx, newest first
func (s *ReceiptService) ListReceipts(ctx context.Context, params *repository.GoodsReceiptFilterParams) (*pagination.PaginatedResult[entity.GoodsReceipt], error) {
	if _, ok := infraRepo.GetLocationID(ctx); !ok {
		return nil, apperror.NewBadRequestError("Location context required")
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	receipts, total, err := s.receiptRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(receipts, p), nil
}

// GetReceipt returns a receipt the actor's locations can see. ref is either
// the receipt id or its receipt number.
func (s *ReceiptService) GetReceipt(ctx context.Context, actor Actor, ref string) (*entity.GoodsReceipt, error) {
	ref = strings.TrimSpace(ref)
	var (
		receipt *entity.GoodsReceipt
		err     error
	)
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		receipt, err = s.receiptRepo.GetByID(ctx, id)
	} else {
		receipt, err = s.receiptRepo.GetByReceiptNo(ctx, ref)
	}
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Goods receipt")
	}

	if !actor.IsSuperAdmin() {
		member, err := s.locationRepo.IsMember(ctx, receipt.LocationID, actor.ID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperror.NewNotFoundError("Goods receipt")
		}
	}
	return receipt, nil
}
