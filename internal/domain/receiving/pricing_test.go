package receiving

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveRetailPrice(t *testing.T) {
	tests := []struct {
		importPrice int64
		want        int64
	}{
		{0, 0},
		{1, 2},
		{3, 5},
		{1_000, 1_500},
		{3_333, 5_000},
		{50_000_000, 75_000_000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveRetailPrice(tt.importPrice, DefaultRetailMarkup), "import %d", tt.importPrice)
	}

	assert.Equal(t, int64(1_250), DeriveRetailPrice(1_000, decimal.RequireFromString("1.25")))
}

func TestManualRetailIsNeverOverwritten(t *testing.T) {
	l := NewLedger(DefaultPolicy())
	item := catalogItem("Flour", "FLOUR", 1_000, 1_500, 1_300)
	l.AddOrMerge(item, testLocation)

	l.Update(item.ID, FieldRetailPrice, 1_999)
	for _, price := range []float64{0, 10, 2_000, 70_000_000, -4} {
		l.Update(item.ID, FieldImportPrice, price)
		line, _ := l.Line(item.ID)
		assert.Equal(t, int64(1_999), line.RetailUnitPrice)
		assert.True(t, line.PriceWasManuallySet)
	}
}

func TestOverrideIsPerLine(t *testing.T) {
	l := NewLedger(DefaultPolicy())
	a := catalogItem("A", "A", 100, 150, 120)
	b := catalogItem("B", "B", 100, 150, 120)
	l.AddOrMerge(a, testLocation)
	l.AddOrMerge(b, testLocation)

	l.Update(a.ID, FieldRetailPrice, 400)
	l.Update(a.ID, FieldImportPrice, 200)
	l.Update(b.ID, FieldImportPrice, 200)

	lineA, _ := l.Line(a.ID)
	lineB, _ := l.Line(b.ID)
	assert.Equal(t, int64(400), lineA.RetailUnitPrice)
	assert.Equal(t, int64(300), lineB.RetailUnitPrice)
	assert.False(t, lineB.PriceWasManuallySet)
}

func TestWholesaleEditDoesNotMarkManual(t *testing.T) {
	l := NewLedger(DefaultPolicy())
	item := catalogItem("A", "A", 100, 150, 120)
	l.AddOrMerge(item, testLocation)

	l.Update(item.ID, FieldWholesalePrice, 130)
	l.Update(item.ID, FieldImportPrice, 200)

	line, _ := l.Line(item.ID)
	assert.Equal(t, int64(130), line.WholesaleUnitPrice)
	assert.Equal(t, int64(300), line.RetailUnitPrice)
}
