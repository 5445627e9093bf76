package receiving

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/sangkips/investify-receiving/internal/domain/enum"
)

// Draft is the staged, not yet committed goods receipt of one location.
type Draft struct {
	LocationID   uuid.UUID
	SupplierID   *uuid.UUID
	Discount     int64
	DiscountMode enum.DiscountMode
	Payment      SettlementInput
	SavedAt      time.Time

	policy Policy
	ledger *Ledger
}

// NewDraft returns an empty draft for a location.
func NewDraft(locationID uuid.UUID, policy Policy) *Draft {
	policy = policy.normalized()
	return &Draft{
		LocationID:   locationID,
		DiscountMode: enum.DiscountModeAmount,
		policy:       policy,
		ledger:       NewLedger(policy),
	}
}

func (d *Draft) Policy() Policy {
	return d.policy
}

// Ledger exposes the draft's line items.
func (d *Draft) Ledger() *Ledger {
	return d.ledger
}

// IsEmpty reports whether the draft has neither lines nor a supplier. Empty
// drafts are never persisted.
func (d *Draft) IsEmpty() bool {
	return d.ledger.IsEmpty() && d.SupplierID == nil
}

func (d *Draft) AddOrMerge(item CatalogItem) (MergeOutcome, []Warning) {
	return d.ledger.AddOrMerge(item, d.LocationID)
}

func (d *Draft) UpdateLine(itemID uuid.UUID, field Field, value float64) ([]Warning, bool) {
	return d.ledger.Update(itemID, field, value)
}

func (d *Draft) RemoveLine(itemID uuid.UUID) bool {
	return d.ledger.Remove(itemID)
}

// SetSupplier records a weak reference to a supplier; nil clears it.
func (d *Draft) SetSupplier(supplierID *uuid.UUID) {
	if supplierID == nil || *supplierID == uuid.Nil {
		d.SupplierID = nil
		return
	}
	id := *supplierID
	d.SupplierID = &id
}

// SetDiscount stores a discount. Percent discounts are bounded to 100 and
// negative values become 0, each with a warning.
func (d *Draft) SetDiscount(value float64, mode enum.DiscountMode) []Warning {
	if !mode.IsValid() {
		mode = enum.DiscountModeAmount
	}
	ceiling := int64(math.MaxInt64)
	if mode == enum.DiscountModePercent {
		ceiling = 100
	}
	n, w := clampToRange(fieldDiscount, value, 0, ceiling)
	d.Discount = n
	d.DiscountMode = mode
	if w == nil {
		return nil
	}
	return []Warning{*w}
}

// SetPayment replaces the operator's settlement choices.
func (d *Draft) SetPayment(in SettlementInput) {
	in.PartialAmountPaid = max(in.PartialAmountPaid, 0)
	d.Payment = in
}

// Settlement computes the live totals of the draft.
func (d *Draft) Settlement() Settlement {
	return ComputeSettlement(d.ledger.Subtotal(), d.Discount, d.DiscountMode, d.Payment)
}

// Reset empties the draft and clears the settlement choices.
func (d *Draft) Reset() {
	d.ledger.Reset()
	d.SupplierID = nil
	d.Discount = 0
	d.DiscountMode = enum.DiscountModeAmount
	d.Payment = SettlementInput{}
	d.SavedAt = time.Time{}
}
