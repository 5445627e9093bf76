package receiving

import (
	"github.com/google/uuid"
)

// Field names an editable column of a line item.
type Field string

const (
	FieldQuantity       Field = "quantity"
	FieldImportPrice    Field = "import_price"
	FieldRetailPrice    Field = "retail_price"
	FieldWholesalePrice Field = "wholesale_price"

	fieldDiscount Field = "discount"
)

// Label is the operator-facing name of the field.
func (f Field) Label() string {
	switch f {
	case FieldQuantity:
		return "Quantity"
	case FieldImportPrice:
		return "Import price"
	case FieldRetailPrice:
		return "Retail price"
	case FieldWholesalePrice:
		return "Wholesale price"
	case fieldDiscount:
		return "Discount"
	}
	return string(f)
}

// IsValid reports whether f is an editable field.
func (f Field) IsValid() bool {
	switch f {
	case FieldQuantity, FieldImportPrice, FieldRetailPrice, FieldWholesalePrice:
		return true
	}
	return false
}

// LocationPrice is the price triple a catalog item carries for one location.
type LocationPrice struct {
	CostPrice      int64 `json:"cost_price"`
	RetailPrice    int64 `json:"retail_price"`
	WholesalePrice int64 `json:"wholesale_price"`
}

// CatalogItem is a read-only view of a product as the catalog provider
// exposes it.
type CatalogItem struct {
	ID       uuid.UUID                   `json:"id"`
	Name     string                      `json:"name"`
	SKU      string                      `json:"sku"`
	Category string                      `json:"category,omitempty"`
	Prices   map[uuid.UUID]LocationPrice `json:"prices"`
}

// PriceAt returns the item's prices at a location, or zero prices when the
// item has never been stocked there.
func (c CatalogItem) PriceAt(locationID uuid.UUID) LocationPrice {
	return c.Prices[locationID]
}

// LineItem is one row of a draft goods receipt.
type LineItem struct {
	ItemID              uuid.UUID `json:"item_id"`
	DisplayName         string    `json:"display_name"`
	SKU                 string    `json:"sku"`
	Quantity            int64     `json:"quantity"`
	ImportUnitPrice     int64     `json:"import_unit_price"`
	RetailUnitPrice     int64     `json:"retail_unit_price"`
	WholesaleUnitPrice  int64     `json:"wholesale_unit_price"`
	PriceWasManuallySet bool      `json:"price_was_manually_set"`
}

// LineTotal is the import cost of the whole line.
func (l LineItem) LineTotal() int64 {
	return l.ImportUnitPrice * l.Quantity
}
