// Package loader reads invoice-line tables into raw transaction rows.
//
// Both loaders hand back cell text untouched apart from spreadsheet date
// serials, which are rendered as timestamps. Deciding which rows are usable is
// the cleaning stage's job.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chrisconley/cltv/specs"
)

// Source column labels. Matching is exact: case and spacing matter.
const (
	ColumnInvoice     = "Invoice"
	ColumnStockCode   = "StockCode"
	ColumnDescription = "Description"
	ColumnQuantity    = "Quantity"
	ColumnInvoiceDate = "InvoiceDate"
	ColumnPrice       = "Price"
	ColumnCustomerID  = "Customer ID"
	ColumnCountry     = "Country"
)

// Columns lists every required column.
var Columns = []string{
	ColumnInvoice,
	ColumnStockCode,
	ColumnDescription,
	ColumnQuantity,
	ColumnInvoiceDate,
	ColumnPrice,
	ColumnCustomerID,
	ColumnCountry,
}

// Load reads path by extension: ".csv" or ".xlsx". sheet selects the
// worksheet of a workbook and is ignored for CSV; empty means the first sheet.
func Load(path, sheet string) ([]specs.TransactionRowSpec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path, sheet)
	default:
		return nil, fmt.Errorf("%w: %s", specs.ErrUnsupportedFormat, path)
	}
}

// columnIndex maps each required column to its position in header.
type columnIndex map[string]int

func newColumnIndex(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, label := range header {
		if i == 0 {
			label = strings.TrimPrefix(label, "\ufeff")
		}
		if _, seen := positions[label]; !seen {
			positions[label] = i
		}
	}

	index := make(columnIndex, len(Columns))
	for _, column := range Columns {
		i, ok := positions[column]
		if !ok {
			return nil, fmt.Errorf("%w: %q", specs.ErrMissingColumn, column)
		}
		index[column] = i
	}
	return index, nil
}

// cell returns the value of column in record, or "" if the record is short.
func (c columnIndex) cell(record []string, column string) string {
	i := c[column]
	if i >= len(record) {
		return ""
	}
	return record[i]
}

func (c columnIndex) row(record []string) specs.TransactionRowSpec {
	return specs.TransactionRowSpec{
		Invoice:     c.cell(record, ColumnInvoice),
		StockCode:   c.cell(record, ColumnStockCode),
		Description: c.cell(record, ColumnDescription),
		Quantity:    c.cell(record, ColumnQuantity),
		InvoiceDate: c.cell(record, ColumnInvoiceDate),
		Price:       c.cell(record, ColumnPrice),
		CustomerID:  c.cell(record, ColumnCustomerID),
		Country:     c.cell(record, ColumnCountry),
	}
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
