package internal

import (
	"strconv"
	"strings"

	"github.com/chrisconley/cltv/specs"
)

// Clean implements specs.Clean.
func Clean(rows []specs.TransactionRowSpec) ([]specs.CleanTransactionSpec, specs.CleaningReportSpec) {
	transactions, report := clean(rows)

	cleaned := make([]specs.CleanTransactionSpec, len(transactions))
	for i, t := range transactions {
		cleaned[i] = t.ToSpec()
	}
	return cleaned, report.ToSpec()
}

// CleaningReport tallies the fate of every input row.
type CleaningReport struct {
	Input               int
	Retained            int
	Cancelled           int
	Incomplete          int
	NonPositiveQuantity int
	Malformed           int
}

// Dropped counts the rows removed for any reason.
func (r CleaningReport) Dropped() int {
	return r.Input - r.Retained
}

func (r CleaningReport) ToSpec() specs.CleaningReportSpec {
	return specs.CleaningReportSpec{
		Input:               r.Input,
		Retained:            r.Retained,
		Cancelled:           r.Cancelled,
		Incomplete:          r.Incomplete,
		NonPositiveQuantity: r.NonPositiveQuantity,
		Malformed:           r.Malformed,
	}
}

type dropReason int

const (
	keep dropReason = iota
	dropCancelled
	dropIncomplete
	dropNonPositiveQuantity
	dropMalformed
)

// clean turns raw rows into Transactions. Rows that fail a rule are skipped,
// never reported as errors.
func clean(rows []specs.TransactionRowSpec) ([]Transaction, CleaningReport) {
	report := CleaningReport{Input: len(rows)}
	transactions := make([]Transaction, 0, len(rows))

	for _, row := range rows {
		transaction, reason := cleanRow(row)
		switch reason {
		case keep:
			transactions = append(transactions, transaction)
			report.Retained++
		case dropCancelled:
			report.Cancelled++
		case dropIncomplete:
			report.Incomplete++
		case dropNonPositiveQuantity:
			report.NonPositiveQuantity++
		case dropMalformed:
			report.Malformed++
		}
	}

	return transactions, report
}

func cleanRow(row specs.TransactionRowSpec) (Transaction, dropReason) {
	cells := []string{
		strings.TrimSpace(row.Invoice),
		strings.TrimSpace(row.StockCode),
		strings.TrimSpace(row.Description),
		strings.TrimSpace(row.Quantity),
		strings.TrimSpace(row.InvoiceDate),
		strings.TrimSpace(row.Price),
		strings.TrimSpace(row.CustomerID),
		strings.TrimSpace(row.Country),
	}
	invoice, stockCode, description, quantityCell, dateCell, priceCell, customerCell, country :=
		cells[0], cells[1], cells[2], cells[3], cells[4], cells[5], cells[6], cells[7]

	if strings.HasPrefix(invoice, specs.CancellationMarker) {
		return Transaction{}, dropCancelled
	}

	for _, cell := range cells {
		if cell == "" {
			return Transaction{}, dropIncomplete
		}
	}

	quantity, err := strconv.ParseInt(quantityCell, 10, 64)
	if err != nil {
		return Transaction{}, dropMalformed
	}
	if quantity <= 0 {
		return Transaction{}, dropNonPositiveQuantity
	}

	invoiceDate, err := ParseInvoiceDate(dateCell)
	if err != nil {
		return Transaction{}, dropMalformed
	}

	transaction, err := NewTransaction(specs.CleanTransactionSpec{
		Invoice:     invoice,
		StockCode:   stockCode,
		Description: description,
		Quantity:    quantity,
		InvoiceDate: invoiceDate.ToTime(),
		Price:       priceCell,
		CustomerID:  customerCell,
		Country:     country,
	})
	if err != nil {
		return Transaction{}, dropMalformed
	}

	return transaction, keep
}
