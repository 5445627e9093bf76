package receiving

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Warning is an advisory produced when an operator input had to be adjusted.
// Processing always continues with the Applied value.
type Warning struct {
	Field     Field   `json:"field"`
	Requested float64 `json:"requested"`
	Applied   int64   `json:"applied"`
	Message   string  `json:"message"`
}

// ClampResult is the output of Policy.Clamp.
type ClampResult struct {
	ImportPrice int64     `json:"import_price"`
	Quantity    int64     `json:"quantity"`
	Warnings    []Warning `json:"warnings,omitempty"`
}

// MinLineQuantity is the smallest quantity a ledger line can hold.
const MinLineQuantity int64 = 1

// Clamp rounds both inputs to the nearest integer and bounds them to
// [0, MaxImportPrice] and [0, MaxQuantity]. A warning is emitted for each value
// a bound actually changed; plain rounding is silent.
func (p Policy) Clamp(importPrice, quantity float64) ClampResult {
	p = p.normalized()

	var res ClampResult
	var w *Warning
	res.ImportPrice, w = clampToRange(FieldImportPrice, importPrice, 0, p.MaxImportPrice)
	if w != nil {
		res.Warnings = append(res.Warnings, *w)
	}
	res.Quantity, w = clampToRange(FieldQuantity, quantity, 0, p.MaxQuantity)
	if w != nil {
		res.Warnings = append(res.Warnings, *w)
	}
	return res
}

// ClampImportPrice bounds a single import price.
func (p Policy) ClampImportPrice(v float64) (int64, []Warning) {
	p = p.normalized()
	return single(clampToRange(FieldImportPrice, v, 0, p.MaxImportPrice))
}

// ClampQuantity bounds a line quantity to [MinLineQuantity, MaxQuantity].
func (p Policy) ClampQuantity(v float64) (int64, []Warning) {
	p = p.normalized()
	return single(clampToRange(FieldQuantity, v, MinLineQuantity, p.MaxQuantity))
}

// nonNegative rounds v and floors it at zero. Retail and wholesale prices have
// no ceiling.
func nonNegative(field Field, v float64) (int64, []Warning) {
	return single(clampToRange(field, v, 0, math.MaxInt64))
}

func single(n int64, w *Warning) (int64, []Warning) {
	if w == nil {
		return n, nil
	}
	return n, []Warning{*w}
}

// clampToRange rounds v and bounds it to [floor, ceiling]. The warning, when
// present, always carries the value that was stored.
func clampToRange(field Field, v float64, floor, ceiling int64) (int64, *Warning) {
	if math.IsNaN(v) {
		return floor, newWarning(field, v, floor, fmt.Sprintf("%s is not a number and was set to %d", field.Label(), floor))
	}
	if v <= -0.5 {
		return floor, newWarning(field, v, floor, fmt.Sprintf("%s cannot be negative and was set to %d", field.Label(), floor))
	}
	if v >= float64(ceiling)+0.5 {
		return ceiling, newWarning(field, v, ceiling, fmt.Sprintf(
			"%s %s exceeds the maximum of %d and was set to %d",
			field.Label(), formatFloat(v), ceiling, ceiling,
		))
	}
	// anything in (-0.5, 0) rounds to zero
	n := max(roundHalfUp(v), 0)
	if n < floor {
		return floor, newWarning(field, v, floor, fmt.Sprintf(
			"%s %s is below the minimum of %d and was set to %d",
			field.Label(), formatFloat(v), floor, floor,
		))
	}
	return min(n, ceiling), nil
}

func roundHalfUp(v float64) int64 {
	return decimal.NewFromFloat(v).Round(0).IntPart()
}

func newWarning(field Field, requested float64, applied int64, msg string) *Warning {
	if math.IsNaN(requested) || math.IsInf(requested, 0) {
		requested = 0
	}
	return &Warning{Field: field, Requested: requested, Applied: applied, Message: msg}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
