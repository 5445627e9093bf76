package request

import "github.com/google/uuid"

// AddItemRequest adds a catalog item by id or by scanned SKU
type AddItemRequest struct {
	ItemID *uuid.UUID `json:"item_id" binding:"required_without=SKU"`
	SKU    string     `json:"sku" binding:"omitempty,max=100"`
}

// NewItemRequest creates a catalog item and adds it to the draft. Prices are
// in minor currency units.
type NewItemRequest struct {
	Name           string     `json:"name" binding:"required,max=255"`
	SKU            string     `json:"sku" binding:"omitempty,max=100"`
	CategoryID     *uuid.UUID `json:"category_id"`
	CostPrice      int64      `json:"cost_price"`
	RetailPrice    int64      `json:"retail_price"`
	WholesalePrice int64      `json:"wholesale_price"`
}

// UpdateLineRequest edits one field of a draft line
type UpdateLineRequest struct {
	Field string   `json:"field" binding:"required,oneof=quantity import_price retail_price wholesale_price"`
	Value *float64 `json:"value" binding:"required"`
}

// SetSupplierRequest selects a supplier; a null supplier_id clears it
type SetSupplierRequest struct {
	SupplierID *uuid.UUID `json:"supplier_id"`
}

// CreateSupplierRequest represents a supplier creation request
type CreateSupplierRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=255"`
	Phone string `json:"phone" binding:"omitempty,max=50"`
	Email string `json:"email" binding:"omitempty,email"`
	Type  string `json:"type" binding:"omitempty,oneof=distributor wholesaler manufacturer farmer"`
}

// DiscountRequest sets the draft discount
type DiscountRequest struct {
	Value float64 `json:"value"`
	Mode  string  `json:"mode" binding:"omitempty,oneof=amount percent"`
}

// SettlementRequest sets the payment choices of the draft
type SettlementRequest struct {
	PaymentMethod     string `json:"payment_method" binding:"omitempty,oneof=cash bank_transfer"`
	PaymentType       string `json:"payment_type" binding:"omitempty,oneof=full partial deferred"`
	PartialAmountPaid int64  `json:"partial_amount_paid" binding:"min=0"`
}

// CommitRequest finalizes the draft
type CommitRequest struct {
	Note string `json:"note" binding:"omitempty,max=1000"`
}

// RecoveryRequest accepts or declines a pending draft recovery
type RecoveryRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// ReceiptFilterRequest represents goods receipt filter parameters
type ReceiptFilterRequest struct {
	SupplierID string `form:"supplier_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Unpaid     bool   `form:"unpaid"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
