package receiving

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultMaxImportPrice int64 = 50_000_000
	DefaultMaxQuantity    int64 = 10_000
	DefaultStaleAfter           = 24 * time.Hour
)

// DefaultRetailMarkup is applied to the import price to suggest a retail price.
var DefaultRetailMarkup = decimal.NewFromFloat(1.5)

// Policy holds the tunable bounds of the staging engine.
type Policy struct {
	MaxImportPrice int64
	MaxQuantity    int64
	RetailMarkup   decimal.Decimal
	// StaleAfter is the age past which a persisted draft is not offered for recovery.
	StaleAfter time.Duration
	// RequirePaymentType makes an unset payment type a commit precondition
	// failure. When false an unset type is committed as full payment.
	RequirePaymentType bool
}

// DefaultPolicy returns the stock limits.
func DefaultPolicy() Policy {
	return Policy{
		MaxImportPrice:     DefaultMaxImportPrice,
		MaxQuantity:        DefaultMaxQuantity,
		RetailMarkup:       DefaultRetailMarkup,
		StaleAfter:         DefaultStaleAfter,
		RequirePaymentType: true,
	}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()
	if p.MaxImportPrice <= 0 {
		p.MaxImportPrice = d.MaxImportPrice
	}
	if p.MaxQuantity <= 0 {
		p.MaxQuantity = d.MaxQuantity
	}
	if p.RetailMarkup.IsZero() || p.RetailMarkup.IsNegative() {
		p.RetailMarkup = d.RetailMarkup
	}
	if p.StaleAfter <= 0 {
		p.StaleAfter = d.StaleAfter
	}
	return p
}
