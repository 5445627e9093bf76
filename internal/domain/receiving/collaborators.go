package receiving

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
)

// NewItemSpec describes a catalog item created in the middle of a receipt.
// Prices apply to the location the item is being received into.
type NewItemSpec struct {
	LocationID     uuid.UUID  `json:"location_id"`
	Name           string     `json:"name"`
	SKU            string     `json:"sku"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	CostPrice      int64      `json:"cost_price"`
	RetailPrice    int64      `json:"retail_price"`
	WholesalePrice int64      `json:"wholesale_price"`
	CreatedBy      uuid.UUID  `json:"created_by"`
}

// Normalize trims text fields, bounds the prices with p and fills a missing
// retail price from the markup.
func (s *NewItemSpec) Normalize(p Policy) []Warning {
	p = p.normalized()
	s.Name = strings.TrimSpace(s.Name)
	s.SKU = strings.ToUpper(strings.TrimSpace(s.SKU))

	var warnings, w []Warning
	s.CostPrice, w = p.ClampImportPrice(float64(s.CostPrice))
	warnings = append(warnings, w...)
	s.RetailPrice, w = nonNegative(FieldRetailPrice, float64(s.RetailPrice))
	warnings = append(warnings, w...)
	s.WholesalePrice, w = nonNegative(FieldWholesalePrice, float64(s.WholesalePrice))
	warnings = append(warnings, w...)
	if s.RetailPrice == 0 {
		s.RetailPrice = DeriveRetailPrice(s.CostPrice, p.RetailMarkup)
	}
	return warnings
}

// SupplierRef is the directory view of a supplier.
type SupplierRef struct {
	ID    uuid.UUID         `json:"id"`
	Name  string            `json:"name"`
	Phone string            `json:"phone,omitempty"`
	Type  enum.SupplierType `json:"type"`
}

// NewSupplierSpec describes a supplier created from the receiving desk.
type NewSupplierSpec struct {
	Name      string            `json:"name"`
	Phone     string            `json:"phone,omitempty"`
	Email     string            `json:"email,omitempty"`
	Type      enum.SupplierType `json:"type,omitempty"`
	CreatedBy uuid.UUID         `json:"created_by"`
}

// Normalize trims the text fields and fills the default supplier type.
func (s *NewSupplierSpec) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	s.Type = s.Type.OrDefault()
}
