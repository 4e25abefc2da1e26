package specs

import "time"

// CancellationMarker prefixes the invoice identifier of a cancelled invoice.
const CancellationMarker = "C"

// TransactionRowSpec represents one raw invoice line as read from the source table.
//
// Transaction rows are the input boundary of the CLTV pipeline. Every field is
// carried as the untouched cell text so that the cleaning stage, not the loader,
// decides what counts as a usable row. An empty cell (after trimming whitespace)
// is a missing value.
//
// One invoice usually spans several rows, one per product line.
type TransactionRowSpec struct {
	// Invoice identifier.
	//
	// Shared by every line of the same invoice. Identifiers starting with
	// CancellationMarker (e.g., "C489449") mark cancelled invoices; those rows
	// never reach aggregation.
	Invoice string `json:"invoice"`

	// Product code of the line item (e.g., "85048").
	StockCode string `json:"stockCode"`

	// Product name of the line item.
	//
	// Not used by any metric, but a missing description still disqualifies the
	// row: only complete rows are retained.
	Description string `json:"description"`

	// Number of units on the line, as an integer string.
	//
	// Negative quantities represent returns and are excluded during cleaning,
	// as are zero quantities.
	Quantity string `json:"quantity"`

	// Invoice timestamp (e.g., "2009-12-01 07:45:00").
	InvoiceDate string `json:"invoiceDate"`

	// Unit price as a decimal string (e.g., "6.95").
	Price string `json:"price"`

	// Customer identifier.
	//
	// Rows without a customer cannot be attributed to anyone and are dropped.
	// Spreadsheet exports often render identifiers as floats ("13085.0"); the
	// cleaning stage normalizes those to their integer form.
	CustomerID string `json:"customerID"`

	// Country of the customer.
	Country string `json:"country"`
}

// CleanTransactionSpec represents an invoice line that survived cleaning.
//
// Unlike TransactionRowSpec, every field is present and typed, and the line
// total has been computed.
type CleanTransactionSpec struct {
	Invoice     string    `json:"invoice"`
	StockCode   string    `json:"stockCode"`
	Description string    `json:"description"`
	Quantity    int64     `json:"quantity"`
	InvoiceDate time.Time `json:"invoiceDate"`
	Price       string    `json:"price"`
	CustomerID  string    `json:"customerID"`
	Country     string    `json:"country"`

	// Quantity × Price as a decimal string.
	LineTotal string `json:"lineTotal"`
}

// CleaningReportSpec counts how the cleaning stage disposed of the input rows.
//
// Dropped rows are never reported as errors. These counters exist so that a
// run can be audited after the fact.
type CleaningReportSpec struct {
	// Number of rows handed to the cleaning stage.
	Input int `json:"input"`

	// Number of rows retained.
	Retained int `json:"retained"`

	// Rows whose invoice carries the cancellation marker.
	Cancelled int `json:"cancelled"`

	// Rows with at least one missing field.
	Incomplete int `json:"incomplete"`

	// Rows with a quantity of zero or less.
	NonPositiveQuantity int `json:"nonPositiveQuantity"`

	// Rows with a field that could not be parsed (quantity, price, timestamp).
	Malformed int `json:"malformed"`
}
