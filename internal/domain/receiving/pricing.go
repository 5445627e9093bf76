package receiving

import (
	"github.com/shopspring/decimal"
)

// DeriveRetailPrice suggests a retail price of round(importPrice × markup).
func DeriveRetailPrice(importPrice int64, markup decimal.Decimal) int64 {
	return decimal.NewFromInt(importPrice).Mul(markup).Round(0).IntPart()
}

// setImportPrice stores an already clamped import price and re-derives the
// retail price unless the operator has taken it over.
func setImportPrice(line *LineItem, price int64, markup decimal.Decimal) {
	line.ImportUnitPrice = price
	if !line.PriceWasManuallySet {
		line.RetailUnitPrice = DeriveRetailPrice(price, markup)
	}
}

// setRetailPrice stores an operator-entered retail price and switches the
// line to manual pricing for good.
func setRetailPrice(line *LineItem, price int64) {
	line.RetailUnitPrice = price
	line.PriceWasManuallySet = true
}
