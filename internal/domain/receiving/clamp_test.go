package receiving

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name         string
		price, qty   float64
		wantPrice    int64
		wantQty      int64
		wantWarnings []Field
	}{
		{name: "in range", price: 1200, qty: 3, wantPrice: 1200, wantQty: 3},
		{name: "rounds half up", price: 10.5, qty: 2.5, wantPrice: 11, wantQty: 3},
		{name: "rounds down", price: 10.49, qty: 2.4, wantPrice: 10, wantQty: 2},
		{name: "small negative rounds to zero silently", price: -0.4, qty: -0.2, wantPrice: 0, wantQty: 0},
		{name: "negative floored", price: -5, qty: -1, wantPrice: 0, wantQty: 0,
			wantWarnings: []Field{FieldImportPrice, FieldQuantity}},
		{name: "price at ceiling", price: 50_000_000, qty: 10_000, wantPrice: 50_000_000, wantQty: 10_000},
		{name: "price over ceiling", price: 50_000_001, qty: 1, wantPrice: 50_000_000, wantQty: 1,
			wantWarnings: []Field{FieldImportPrice}},
		{name: "quantity over ceiling", price: 1, qty: 10_001, wantPrice: 1, wantQty: 10_000,
			wantWarnings: []Field{FieldQuantity}},
		{name: "just below ceiling rounds in", price: 50_000_000.4, qty: 9_999.6, wantPrice: 50_000_000, wantQty: 10_000},
		{name: "not a number", price: math.NaN(), qty: math.Inf(1), wantPrice: 0, wantQty: 10_000,
			wantWarnings: []Field{FieldImportPrice, FieldQuantity}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.Clamp(tt.price, tt.qty)
			assert.Equal(t, tt.wantPrice, res.ImportPrice)
			assert.Equal(t, tt.wantQty, res.Quantity)

			var fields []Field
			for _, w := range res.Warnings {
				fields = append(fields, w.Field)
				assert.NotEmpty(t, w.Message)
			}
			assert.Equal(t, tt.wantWarnings, fields)
		})
	}
}

func TestClampBoundsHoldForAnyInput(t *testing.T) {
	p := DefaultPolicy()
	inputs := []float64{
		math.Inf(-1), -1e18, -10_000.5, -1, -0.5, -0.49, 0, 0.49, 0.5, 1,
		9_999.5, 10_000, 10_000.5, 49_999_999.5, 50_000_000.49, 50_000_000.5,
		1e12, math.MaxFloat64, math.Inf(1), math.NaN(),
	}

	for _, price := range inputs {
		for _, qty := range inputs {
			res := p.Clamp(price, qty)
			require.GreaterOrEqual(t, res.ImportPrice, int64(0))
			require.LessOrEqual(t, res.ImportPrice, DefaultMaxImportPrice)
			require.GreaterOrEqual(t, res.Quantity, int64(0))
			require.LessOrEqual(t, res.Quantity, DefaultMaxQuantity)
		}
	}
}

func TestClampWarningMessage(t *testing.T) {
	res := DefaultPolicy().Clamp(60_000_000, 1)
	require.Len(t, res.Warnings, 1)

	w := res.Warnings[0]
	assert.Equal(t, FieldImportPrice, w.Field)
	assert.Equal(t, float64(60_000_000), w.Requested)
	assert.Equal(t, int64(50_000_000), w.Applied)
	assert.Equal(t, "Import price 60000000 exceeds the maximum of 50000000 and was set to 50000000", w.Message)
}

func TestClampCustomCeilings(t *testing.T) {
	p := Policy{MaxImportPrice: 1_000, MaxQuantity: 5}

	res := p.Clamp(2_000, 6)
	assert.Equal(t, int64(1_000), res.ImportPrice)
	assert.Equal(t, int64(5), res.Quantity)
	assert.Len(t, res.Warnings, 2)
}

func TestClampZeroPolicyUsesDefaults(t *testing.T) {
	res := Policy{}.Clamp(60_000_000, 20_000)
	assert.Equal(t, DefaultMaxImportPrice, res.ImportPrice)
	assert.Equal(t, DefaultMaxQuantity, res.Quantity)
}
