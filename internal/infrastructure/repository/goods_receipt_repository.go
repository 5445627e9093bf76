package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
	domainRepo "github.com/sangkips/investify-receiving/internal/domain/repository"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"github.com/sangkips/investify-receiving/pkg/pagination"
	"github.com/sangkips/investify-receiving/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnknownLocation is returned when a commit targets a location that does not exist
var ErrUnknownLocation = errors.New("location not found")

type goodsReceiptRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// GoodsReceiptStore is both the commit sink and the read side of goods receipts
type GoodsReceiptStore interface {
	domainRepo.CommitSink
	domainRepo.GoodsReceiptRepository
}

// NewGoodsReceiptRepository creates a new goods receipt repository
func NewGoodsReceiptRepository(db *gorm.DB) GoodsReceiptStore {
	return &goodsReceiptRepository{db: db, now: time.Now}
}

// Commit records the receipt and its lines, increments stock at the location
// and writes the committed prices, all in one transaction.
func (r *goodsReceiptRepository) Commit(ctx context.Context, req receiving.CommitRequest) (*entity.GoodsReceipt, error) {
	now := r.now().UTC()
	receipt := &entity.GoodsReceipt{
		LocationID:    req.LocationID,
		SupplierID:    req.SupplierID,
		CreatedByID:   req.ActorID,
		Date:          now,
		Status:        entity.StatusFor(req.TotalAmount, req.PaymentInfo.PaidAmount),
		Subtotal:      req.Subtotal,
		Discount:      req.PaymentInfo.Discount,
		TotalAmount:   req.TotalAmount,
		PaidAmount:    req.PaymentInfo.PaidAmount,
		BalanceDue:    req.RemainingBalance,
		PaymentMethod: req.PaymentInfo.PaymentMethod,
		PaymentType:   req.PaymentInfo.PaymentType.OrFull(),
	}
	if note := strings.TrimSpace(req.Note); note != "" {
		receipt.Note = &note
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var location entity.Location
		if err := tx.First(&location, "id = ?", req.LocationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownLocation
			}
			return err
		}
		receipt.ReceiptNo = utils.GenerateReceiptNo(location.Settings.ReceiptPrefix)

		if err := tx.Omit(clause.Associations).Create(receipt).Error; err != nil {
			return err
		}

		lines := make([]entity.GoodsReceiptLine, 0, len(req.Lines))
		for i, l := range req.Lines {
			lines = append(lines, entity.GoodsReceiptLine{
				GoodsReceiptID:     receipt.ID,
				ProductID:          l.ItemID,
				Position:           i + 1,
				ItemName:           l.ItemName,
				SKU:                l.SKU,
				Quantity:           l.Quantity,
				ImportUnitPrice:    l.ImportUnitPrice,
				RetailUnitPrice:    l.RetailUnitPrice,
				WholesaleUnitPrice: l.WholesaleUnitPrice,
				Total:              l.Quantity * l.ImportUnitPrice,
			})
		}
		if len(lines) > 0 {
			if err := tx.Omit(clause.Associations).Create(&lines).Error; err != nil {
				return err
			}
		}

		for _, l := range req.Lines {
			if err := applyStock(tx, req.LocationID, l, now); err != nil {
				return err
			}
		}

		receipt.Lines = lines
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// applyStock adds the received quantity to the product's stock at the
// location and overwrites its prices. A zero wholesale price keeps the
// stored one.
func applyStock(tx *gorm.DB, locationID uuid.UUID, l receiving.CommitLine, now time.Time) error {
	row := &entity.ProductLocation{
		ProductID:      l.ItemID,
		LocationID:     locationID,
		Quantity:       l.Quantity,
		CostPrice:      l.ImportUnitPrice,
		RetailPrice:    l.RetailUnitPrice,
		WholesalePrice: l.WholesaleUnitPrice,
	}
	wholesale := gorm.Expr(
		"CASE WHEN ? > 0 THEN ? ELSE product_locations.wholesale_price END",
		l.WholesaleUnitPrice, l.WholesaleUnitPrice,
	)
	updates := clause.Assignments(map[string]interface{}{
		"quantity":        gorm.Expr("product_locations.quantity + ?", l.Quantity),
		"cost_price":      l.ImportUnitPrice,
		"retail_price":    l.RetailUnitPrice,
		"wholesale_price": wholesale,
		"updated_at":      now,
	})
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "location_id"}},
		DoUpdates: updates,
	}).Omit(clause.Associations).Create(row).Error
}

func (r *goodsReceiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.GoodsReceipt, error) {
	var receipt entity.GoodsReceipt
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("CreatedBy").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *goodsReceiptRepository) GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.GoodsReceipt, error) {
	var receipt entity.GoodsReceipt
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&receipt, "receipt_no = ?", strings.ToUpper(strings.TrimSpace(receiptNo))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *goodsReceiptRepository) List(ctx context.Context, params *domainRepo.GoodsReceiptFilterParams) ([]entity.GoodsReceipt, int64, error) {
	var receipts []entity.GoodsReceipt
	var total int64

	if params == nil {
		params = &domainRepo.GoodsReceiptFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	query := r.db.WithContext(ctx).Model(&entity.GoodsReceipt{}).
		Scopes(LocationScope(ctx))

	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}

	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if params.Unpaid {
		query = query.Where("status <> ?", enum.ReceiptStatusPaid)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Supplier").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&receipts).Error

	return receipts, total, err
}
