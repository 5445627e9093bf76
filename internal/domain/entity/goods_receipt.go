package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
	"gorm.io/gorm"
)

// GoodsReceipt is a committed delivery from a supplier into a location.
// Amounts are stored in minor currency units.
type GoodsReceipt struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	LocationID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"location_id"`
	SupplierID    *uuid.UUID         `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	CreatedByID   uuid.UUID          `gorm:"type:uuid;not null;column:created_by" json:"created_by"`
	ReceiptNo     string             `gorm:"size:100;unique;not null" json:"receipt_no"`
	Date          time.Time          `gorm:"type:date;not null" json:"date"`
	Status        enum.ReceiptStatus `gorm:"default:0" json:"status"`
	Subtotal      int64              `gorm:"not null" json:"subtotal"`
	Discount      int64              `gorm:"default:0" json:"discount"`
	TotalAmount   int64              `gorm:"not null" json:"total_amount"`
	PaidAmount    int64              `gorm:"default:0" json:"paid_amount"`
	BalanceDue    int64              `gorm:"default:0" json:"balance_due"`
	PaymentMethod enum.PaymentMethod `gorm:"size:50;not null" json:"payment_method"`
	PaymentType   enum.PaymentType   `gorm:"size:50;not null" json:"payment_type"`
	Note          *string            `gorm:"type:text" json:"note,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Location  Location           `gorm:"foreignKey:LocationID" json:"-"`
	Supplier  *Supplier          `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	CreatedBy *User              `gorm:"foreignKey:CreatedByID" json:"created_by_user,omitempty"`
	Lines     []GoodsReceiptLine `gorm:"foreignKey:GoodsReceiptID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new goods receipt
func (r *GoodsReceipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the GoodsReceipt model
func (GoodsReceipt) TableName() string {
	return "goods_receipts"
}

// StatusFor derives the receipt status from what was paid against the total.
func StatusFor(total, paid int64) enum.ReceiptStatus {
	switch {
	case paid >= total:
		return enum.ReceiptStatusPaid
	case paid > 0:
		return enum.ReceiptStatusPartial
	default:
		return enum.ReceiptStatusUnpaid
	}
}

// GoodsReceiptLine is one product line of a goods receipt
type GoodsReceiptLine struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	GoodsReceiptID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"goods_receipt_id"`
	ProductID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Position           int            `gorm:"not null" json:"position"`
	ItemName           string         `gorm:"size:255;not null" json:"item_name"`
	SKU                string         `gorm:"size:100" json:"sku"`
	Quantity           int64          `gorm:"not null" json:"quantity"`
	ImportUnitPrice    int64          `gorm:"not null" json:"import_unit_price"`
	RetailUnitPrice    int64          `gorm:"not null" json:"retail_unit_price"`
	WholesaleUnitPrice int64          `gorm:"default:0" json:"wholesale_unit_price"`
	Total              int64          `gorm:"not null" json:"total"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	GoodsReceipt GoodsReceipt `gorm:"foreignKey:GoodsReceiptID" json:"-"`
	Product      Product      `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new goods receipt line
func (l *GoodsReceiptLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the GoodsReceiptLine model
func (GoodsReceiptLine) TableName() string {
	return "goods_receipt_lines"
}
