package internal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chrisconley/cltv/specs"
)

// invoiceDateLayouts are tried in order when parsing an invoice timestamp.
var invoiceDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"1/2/2006 15:04",
	"1/2/06 15:04",
	"2006-01-02",
}

type Transaction struct {
	Invoice     Invoice
	StockCode   StockCode
	Description Description
	Quantity    Quantity
	InvoiceDate InvoiceDate
	Price       Price
	CustomerID  CustomerID
	Country     Country
	LineTotal   Decimal
}

// NewTransaction builds a Transaction from a cleaned row, recomputing the line total.
func NewTransaction(spec specs.CleanTransactionSpec) (Transaction, error) {
	invoice, err := NewInvoice(spec.Invoice)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid invoice: %w", err)
	}
	if invoice.IsCancellation() {
		return Transaction{}, fmt.Errorf("invalid invoice: %q is a cancellation", spec.Invoice)
	}

	stockCode, err := NewStockCode(spec.StockCode)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid stock code: %w", err)
	}

	description, err := NewDescription(spec.Description)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid description: %w", err)
	}

	quantity, err := NewQuantity(spec.Quantity)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid quantity: %w", err)
	}

	invoiceDate, err := NewInvoiceDate(spec.InvoiceDate)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid invoice date: %w", err)
	}

	price, err := ParsePrice(spec.Price)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid price: %w", err)
	}

	customerID, err := NewCustomerID(spec.CustomerID)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid customer ID: %w", err)
	}

	country, err := NewCountry(spec.Country)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid country: %w", err)
	}

	lineTotal, err := quantity.ToDecimal().Mul(price.ToDecimal())
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid line total: %w", err)
	}

	return Transaction{
		Invoice:     invoice,
		StockCode:   stockCode,
		Description: description,
		Quantity:    quantity,
		InvoiceDate: invoiceDate,
		Price:       price,
		CustomerID:  customerID,
		Country:     country,
		LineTotal:   lineTotal,
	}, nil
}

// ToSpec converts a Transaction to specs.CleanTransactionSpec
func (t Transaction) ToSpec() specs.CleanTransactionSpec {
	return specs.CleanTransactionSpec{
		Invoice:     t.Invoice.ToString(),
		StockCode:   t.StockCode.ToString(),
		Description: t.Description.ToString(),
		Quantity:    t.Quantity.ToInt64(),
		InvoiceDate: t.InvoiceDate.ToTime(),
		Price:       t.Price.ToDecimal().String(),
		CustomerID:  t.CustomerID.ToString(),
		Country:     t.Country.ToString(),
		LineTotal:   t.LineTotal.String(),
	}
}

type Invoice struct {
	value string
}

func NewInvoice(value string) (Invoice, error) {
	if value == "" {
		return Invoice{}, fmt.Errorf("invoice is required")
	}
	return Invoice{value: value}, nil
}

func (i Invoice) ToString() string {
	return i.value
}

// IsCancellation reports whether the invoice carries the cancellation marker.
func (i Invoice) IsCancellation() bool {
	return strings.HasPrefix(i.value, specs.CancellationMarker)
}

type StockCode struct {
	value string
}

func NewStockCode(value string) (StockCode, error) {
	if value == "" {
		return StockCode{}, fmt.Errorf("stock code is required")
	}
	return StockCode{value: value}, nil
}

func (s StockCode) ToString() string {
	return s.value
}

type Description struct {
	value string
}

func NewDescription(value string) (Description, error) {
	if value == "" {
		return Description{}, fmt.Errorf("description is required")
	}
	return Description{value: value}, nil
}

func (d Description) ToString() string {
	return d.value
}

type Quantity struct {
	value int64
}

// NewQuantity accepts only strictly positive quantities. Returns and zero
// lines never form part of a customer's history.
func NewQuantity(value int64) (Quantity, error) {
	if value <= 0 {
		return Quantity{}, fmt.Errorf("quantity must be positive, got %d", value)
	}
	return Quantity{value: value}, nil
}

func (q Quantity) ToInt64() int64 {
	return q.value
}

func (q Quantity) ToDecimal() Decimal {
	return NewDecimalFromInt64(q.value)
}

type InvoiceDate struct {
	value time.Time
}

func NewInvoiceDate(value time.Time) (InvoiceDate, error) {
	if value.IsZero() {
		return InvoiceDate{}, fmt.Errorf("invoice date is required")
	}
	return InvoiceDate{value: value}, nil
}

// ParseInvoiceDate parses the timestamp formats found in invoice exports.
func ParseInvoiceDate(value string) (InvoiceDate, error) {
	for _, layout := range invoiceDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return NewInvoiceDate(t)
		}
	}
	return InvoiceDate{}, fmt.Errorf("unrecognized timestamp %q", value)
}

func (d InvoiceDate) ToTime() time.Time {
	return d.value
}

type Price struct {
	value Decimal
}

func ParsePrice(value string) (Price, error) {
	if value == "" {
		return Price{}, fmt.Errorf("price is required")
	}
	d, err := NewDecimal(value)
	if err != nil {
		return Price{}, err
	}
	return Price{value: d}, nil
}

func (p Price) ToDecimal() Decimal {
	return p.value
}

// CustomerID identifies a customer. Identifiers that were exported as floats
// ("13085.0") are normalized to their integer form.
type CustomerID struct {
	value string
}

func NewCustomerID(value string) (CustomerID, error) {
	if value == "" {
		return CustomerID{}, fmt.Errorf("customer ID is required")
	}
	return CustomerID{value: normalizeCustomerID(value)}, nil
}

func (c CustomerID) ToString() string {
	return c.value
}

// Compare orders identifiers numerically when both are integers and lexically
// otherwise. Integer identifiers sort before non-integer ones.
func (c CustomerID) Compare(other CustomerID) int {
	a, aErr := strconv.ParseUint(c.value, 10, 64)
	b, bErr := strconv.ParseUint(other.value, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return strings.Compare(c.value, other.value)
}

func normalizeCustomerID(value string) string {
	whole, fraction, found := strings.Cut(value, ".")
	if !found || whole == "" || strings.Trim(fraction, "0") != "" {
		return value
	}
	if _, err := strconv.ParseUint(whole, 10, 64); err != nil {
		return value
	}
	return whole
}

type Country struct {
	value string
}

func NewCountry(value string) (Country, error) {
	if value == "" {
		return Country{}, fmt.Errorf("country is required")
	}
	return Country{value: value}, nil
}

func (c Country) ToString() string {
	return c.value
}
