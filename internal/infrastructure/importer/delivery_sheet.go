// Package importer reads supplier delivery sheets into rows the receiving
// desk can apply to a draft.
package importer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrNoSheet is returned for workbooks without any worksheet
	ErrNoSheet = errors.New("workbook has no sheets")
	// ErrEmptySheet is returned when the first worksheet has no header row
	ErrEmptySheet = errors.New("sheet is empty")
	// ErrMissingColumn is returned when a required column header is absent
	ErrMissingColumn = errors.New("required column missing")
)

// Row is one parsed delivery line. Line is the 1-based worksheet row.
type Row struct {
	Line        int
	SKU         string
	Quantity    float64
	ImportPrice float64
	RetailPrice *float64
}

// Validate reports a row whose quantity is not positive or whose prices are
// negative. Values must be finite.
func (r Row) Validate() *RowError {
	fail := func(msg string) *RowError {
		return &RowError{Line: r.Line, SKU: r.SKU, Message: msg}
	}
	switch {
	case !finite(r.Quantity) || r.Quantity <= 0:
		return fail("quantity must be greater than 0")
	case !finite(r.ImportPrice) || r.ImportPrice < 0:
		return fail("import price cannot be negative")
	case r.RetailPrice != nil && (!finite(*r.RetailPrice) || *r.RetailPrice < 0):
		return fail("retail price cannot be negative")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// RowError reports a delivery line that could not be used
type RowError struct {
	Line    int    `json:"line"`
	SKU     string `json:"sku,omitempty"`
	Message string `json:"message"`
}

// Sheet is the parse result of a delivery workbook
type Sheet struct {
	Rows   []Row
	Errors []RowError
}

// TotalRows counts every non-empty data row, usable or not
func (s *Sheet) TotalRows() int {
	return len(s.Rows) + len(s.Errors)
}

type column int

const (
	colSKU column = iota
	colQuantity
	colImportPrice
	colRetailPrice
)

var headerAliases = map[string]column{
	"sku":          colSKU,
	"code":         colSKU,
	"item code":    colSKU,
	"quantity":     colQuantity,
	"qty":          colQuantity,
	"import price": colImportPrice,
	"import_price": colImportPrice,
	"cost":         colImportPrice,
	"cost price":   colImportPrice,
	"unit cost":    colImportPrice,
	"retail price": colRetailPrice,
	"retail_price": colRetailPrice,
	"retail":       colRetailPrice,
}

// Parse reads the first worksheet of an XLSX delivery sheet. The first row
// must hold the headers SKU, Quantity and Import price; Retail price is
// optional. Bad data rows are reported in Sheet.Errors, not as an error.
func Parse(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheets[0])
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	index, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	sheet := &Sheet{}
	for i := 1; i < len(rows); i++ {
		cells := rows[i]
		if isRowEmpty(cells) {
			continue
		}
		row, rowErr := parseRow(cells, index, i+1)
		if rowErr != nil {
			sheet.Errors = append(sheet.Errors, *rowErr)
			continue
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func headerIndex(header []string) (map[column]int, error) {
	index := make(map[column]int, 4)
	for i, h := range header {
		key := strings.ToLower(strings.Join(strings.Fields(h), " "))
		if col, ok := headerAliases[key]; ok {
			if _, seen := index[col]; !seen {
				index[col] = i
			}
		}
	}
	for col, name := range map[column]string{
		colSKU:         "SKU",
		colQuantity:    "Quantity",
		colImportPrice: "Import price",
	} {
		if _, ok := index[col]; !ok {
			return nil, errors.Wrap(ErrMissingColumn, name)
		}
	}
	return index, nil
}

func parseRow(cells []string, index map[column]int, line int) (Row, *RowError) {
	row := Row{Line: line, SKU: strings.ToUpper(cell(cells, index[colSKU]))}
	if row.SKU == "" {
		return row, &RowError{Line: line, Message: "SKU is empty"}
	}

	var err error
	if row.Quantity, err = parseNumber(cell(cells, index[colQuantity])); err != nil {
		return row, &RowError{Line: line, SKU: row.SKU, Message: fmt.Sprintf("invalid quantity: %v", err)}
	}
	if row.ImportPrice, err = parseNumber(cell(cells, index[colImportPrice])); err != nil {
		return row, &RowError{Line: line, SKU: row.SKU, Message: fmt.Sprintf("invalid import price: %v", err)}
	}

	if i, ok := index[colRetailPrice]; ok {
		if raw := cell(cells, i); raw != "" {
			retail, err := parseNumber(raw)
			if err != nil {
				return row, &RowError{Line: line, SKU: row.SKU, Message: fmt.Sprintf("invalid retail price: %v", err)}
			}
			row.RetailPrice = &retail
		}
	}
	return row, row.Validate()
}

func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

// parseNumber accepts thousands separators such as "1,250,000". NaN and
// infinities are rejected.
func parseNumber(raw string) (float64, error) {
	if raw == "" {
		return 0, errors.New("value is empty")
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, errors.Newf("%q is not a number", raw)
	}
	if !finite(v) {
		return 0, errors.Newf("%q is not a finite number", raw)
	}
	return v, nil
}

func isRowEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
