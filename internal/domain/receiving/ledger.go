package receiving

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// MergeOutcome tells the caller which branch AddOrMerge took.
type MergeOutcome string

const (
	Appended MergeOutcome = "appended"
	Merged   MergeOutcome = "merged"
)

// Ledger is the ordered set of line items of a draft. It holds at most one
// line per item id, in insertion order.
type Ledger struct {
	policy Policy
	lines  []LineItem
}

// NewLedger returns an empty ledger bound to policy.
func NewLedger(policy Policy) *Ledger {
	return &Ledger{policy: policy.normalized()}
}

func (l *Ledger) indexOf(itemID uuid.UUID) int {
	_, idx, ok := lo.FindIndexOf(l.lines, func(line LineItem) bool {
		return line.ItemID == itemID
	})
	if !ok {
		return -1
	}
	return idx
}

// AddOrMerge increments the quantity of the line for item, or appends a new
// line seeded from the item's prices at locationID.
func (l *Ledger) AddOrMerge(item CatalogItem, locationID uuid.UUID) (MergeOutcome, []Warning) {
	if idx := l.indexOf(item.ID); idx >= 0 {
		line := &l.lines[idx]
		qty, warnings := l.policy.ClampQuantity(float64(line.Quantity) + 1)
		line.Quantity = qty
		return Merged, warnings
	}

	prices := item.PriceAt(locationID)
	importPrice, warnings := l.policy.ClampImportPrice(float64(prices.CostPrice))
	line := LineItem{
		ItemID:             item.ID,
		DisplayName:        item.Name,
		SKU:                item.SKU,
		Quantity:           1,
		ImportUnitPrice:    importPrice,
		RetailUnitPrice:    max(prices.RetailPrice, 0),
		WholesaleUnitPrice: max(prices.WholesalePrice, 0),
	}
	if line.RetailUnitPrice == 0 {
		line.RetailUnitPrice = DeriveRetailPrice(importPrice, l.policy.RetailMarkup)
	}
	l.lines = append(l.lines, line)
	return Appended, warnings
}

// Update replaces one field of one line. The returned bool is false when no
// line has itemID; that is not an error.
func (l *Ledger) Update(itemID uuid.UUID, field Field, value float64) ([]Warning, bool) {
	idx := l.indexOf(itemID)
	if idx < 0 {
		return nil, false
	}
	line := &l.lines[idx]

	var warnings []Warning
	switch field {
	case FieldQuantity:
		line.Quantity, warnings = l.policy.ClampQuantity(value)
	case FieldImportPrice:
		var price int64
		price, warnings = l.policy.ClampImportPrice(value)
		setImportPrice(line, price, l.policy.RetailMarkup)
	case FieldRetailPrice:
		var price int64
		price, warnings = nonNegative(field, value)
		setRetailPrice(line, price)
	case FieldWholesalePrice:
		line.WholesaleUnitPrice, warnings = nonNegative(field, value)
	default:
		return nil, false
	}
	return warnings, true
}

// Remove drops the line for itemID. Removing an absent id is a no-op and
// reports false.
func (l *Ledger) Remove(itemID uuid.UUID) bool {
	idx := l.indexOf(itemID)
	if idx < 0 {
		return false
	}
	l.lines = append(l.lines[:idx], l.lines[idx+1:]...)
	return true
}

// Subtotal is the sum of import price times quantity over all lines.
func (l *Ledger) Subtotal() int64 {
	return lo.SumBy(l.lines, LineItem.LineTotal)
}

// Lines returns a copy of the lines in insertion order.
func (l *Ledger) Lines() []LineItem {
	out := make([]LineItem, len(l.lines))
	copy(out, l.lines)
	return out
}

// Line returns the line for itemID.
func (l *Ledger) Line(itemID uuid.UUID) (LineItem, bool) {
	idx := l.indexOf(itemID)
	if idx < 0 {
		return LineItem{}, false
	}
	return l.lines[idx], true
}

func (l *Ledger) Len() int {
	return len(l.lines)
}

func (l *Ledger) IsEmpty() bool {
	return len(l.lines) == 0
}

// Reset drops every line.
func (l *Ledger) Reset() {
	l.lines = nil
}

// restore replaces the lines with previously persisted ones, re-applying the
// bounds and dropping duplicate item ids.
func (l *Ledger) restore(lines []LineItem) {
	l.lines = l.lines[:0]
	for _, line := range lines {
		if line.ItemID == uuid.Nil || l.indexOf(line.ItemID) >= 0 {
			continue
		}
		line.Quantity, _ = l.policy.ClampQuantity(float64(line.Quantity))
		line.ImportUnitPrice, _ = l.policy.ClampImportPrice(float64(line.ImportUnitPrice))
		line.RetailUnitPrice = max(line.RetailUnitPrice, 0)
		line.WholesaleUnitPrice = max(line.WholesaleUnitPrice, 0)
		l.lines = append(l.lines, line)
	}
}
