package receiving

import (
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/sangkips/investify-receiving/internal/domain/enum"
)

// CommitLine is one line of a commit request.
type CommitLine struct {
	ItemID             uuid.UUID `json:"item_id"`
	ItemName           string    `json:"item_name"`
	SKU                string    `json:"sku"`
	Quantity           int64     `json:"quantity"`
	ImportUnitPrice    int64     `json:"import_unit_price"`
	RetailUnitPrice    int64     `json:"retail_unit_price"`
	WholesaleUnitPrice int64     `json:"wholesale_unit_price"`
}

// PaymentInfo is the settled payment of a commit request.
type PaymentInfo struct {
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	PaymentType   enum.PaymentType   `json:"payment_type"`
	PaidAmount    int64              `json:"paid_amount"`
	Discount      int64              `json:"discount"`
}

// CommitRequest is the finalized transaction handed to the commit sink.
// Build it with BuildCommitRequest; it is not modified afterwards.
type CommitRequest struct {
	LocationID       uuid.UUID    `json:"location_id"`
	SupplierID       *uuid.UUID   `json:"supplier_id,omitempty"`
	Lines            []CommitLine `json:"lines"`
	Subtotal         int64        `json:"subtotal"`
	TotalAmount      int64        `json:"total_amount"`
	RemainingBalance int64        `json:"remaining_balance"`
	Note             string       `json:"note,omitempty"`
	PaymentInfo      PaymentInfo  `json:"payment_info"`
	ActorID          uuid.UUID    `json:"actor_id"`
}

// Validate runs the commit preconditions in order and returns the first
// failure.
func (d *Draft) Validate(canUpdatePrices bool) error {
	if d.ledger.IsEmpty() {
		return preconditionFailure(ErrEmptyLedger)
	}
	if !d.Payment.PaymentMethod.IsSet() {
		return preconditionFailure(ErrPaymentMethodMissing)
	}
	if d.policy.RequirePaymentType && !d.Payment.PaymentType.IsSet() {
		return preconditionFailure(ErrPaymentTypeMissing)
	}
	if d.Payment.PaymentType == enum.PaymentTypePartial && d.Payment.PartialAmountPaid <= 0 {
		return preconditionFailure(ErrPartialAmountMissing)
	}
	if !canUpdatePrices {
		return preconditionFailure(ErrPriceUpdateDenied)
	}
	return nil
}

// BuildCommitRequest validates the draft and builds its commit request. The
// draft itself is not changed.
func (d *Draft) BuildCommitRequest(note string, actorID uuid.UUID, canUpdatePrices bool) (CommitRequest, error) {
	if err := d.Validate(canUpdatePrices); err != nil {
		return CommitRequest{}, err
	}

	s := d.Settlement()
	var supplier *uuid.UUID
	if d.SupplierID != nil {
		id := *d.SupplierID
		supplier = &id
	}
	return CommitRequest{
		LocationID: d.LocationID,
		SupplierID: supplier,
		Lines: lo.Map(d.ledger.Lines(), func(l LineItem, _ int) CommitLine {
			return CommitLine{
				ItemID:             l.ItemID,
				ItemName:           l.DisplayName,
				SKU:                l.SKU,
				Quantity:           l.Quantity,
				ImportUnitPrice:    l.ImportUnitPrice,
				RetailUnitPrice:    l.RetailUnitPrice,
				WholesaleUnitPrice: l.WholesaleUnitPrice,
			}
		}),
		Subtotal:         s.Subtotal,
		TotalAmount:      s.TotalAmount,
		RemainingBalance: s.RemainingBalance,
		Note:             strings.TrimSpace(note),
		PaymentInfo: PaymentInfo{
			PaymentMethod: d.Payment.PaymentMethod,
			PaymentType:   s.PaymentType,
			PaidAmount:    s.PaidAmount,
			Discount:      s.Discount,
		},
		ActorID: actorID,
	}, nil
}
