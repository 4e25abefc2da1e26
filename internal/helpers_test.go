package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisconley/cltv/specs"
)

// Test helpers

type rowOption func(*specs.TransactionRowSpec)

func withInvoice(invoice string) rowOption {
	return func(r *specs.TransactionRowSpec) { r.Invoice = invoice }
}

func withCustomer(customerID string) rowOption {
	return func(r *specs.TransactionRowSpec) { r.CustomerID = customerID }
}

func withQuantity(quantity string) rowOption {
	return func(r *specs.TransactionRowSpec) { r.Quantity = quantity }
}

func withPrice(price string) rowOption {
	return func(r *specs.TransactionRowSpec) { r.Price = price }
}

func withDescription(description string) rowOption {
	return func(r *specs.TransactionRowSpec) { r.Description = description }
}

func withInvoiceDate(invoiceDate string) rowOption {
	return func(r *specs.TransactionRowSpec) { r.InvoiceDate = invoiceDate }
}

// newTestRow creates a valid raw row with the given options applied.
// Invoice defaults to "489434", Customer to "13085", Quantity to "1" and
// Price to "1.00".
func newTestRow(opts ...rowOption) specs.TransactionRowSpec {
	row := specs.TransactionRowSpec{
		Invoice:     "489434",
		StockCode:   "85048",
		Description: "15CM CHRISTMAS GLASS BALL 20 LIGHTS",
		Quantity:    "1",
		InvoiceDate: "2009-12-01 07:45:00",
		Price:       "1.00",
		CustomerID:  "13085",
		Country:     "United Kingdom",
	}
	for _, opt := range opts {
		opt(&row)
	}
	return row
}

// line is shorthand for a valid row of one customer's invoice.
func line(invoice, customerID, quantity, price string) specs.TransactionRowSpec {
	return newTestRow(
		withInvoice(invoice),
		withCustomer(customerID),
		withQuantity(quantity),
		withPrice(price),
	)
}

// fixtureRows is a small store with four customers and one row for each
// cleaning rule.
//
//	customer  invoices  units  revenue  cltv (profit 0.10)  segment
//	12346     2         7      30       45                  C
//	12347     1         10     10       5                   D
//	12348     1         1      40       80                  B
//	12349     3         8      60       180                 A
//
// Two of four customers repeat, so the churn rate is 0.5.
func fixtureRows() []specs.TransactionRowSpec {
	return []specs.TransactionRowSpec{
		line("100", "12346", "2", "5.00"),
		line("100", "12346", "1", "10.00"),
		line("101", "12346", "4", "2.50"),
		line("102", "12347", "10", "1.00"),
		line("103", "12348", "1", "40.00"),
		line("104", "12349", "5", "4.00"),
		line("105", "12349", "2", "15.00"),
		line("106", "12349", "1", "10.00"),

		line("C107", "12347", "-3", "1.00"),
		line("108", "12348", "-1", "40.00"),
		newTestRow(withInvoice("109"), withCustomer("")),
		newTestRow(withInvoice("110"), withCustomer("12349"), withDescription("")),
		newTestRow(withInvoice("111"), withCustomer("12349"), withPrice("abc")),
		newTestRow(withInvoice("112"), withCustomer("12349"), withQuantity("0")),
		newTestRow(withInvoice("113"), withCustomer("12349"), withQuantity("2.5")),
	}
}

func mustDecimal(t *testing.T, s string) Decimal {
	t.Helper()
	d, err := NewDecimal(s)
	require.NoError(t, err)
	return d
}

// assertDecimal compares decimal strings numerically, so "3.000" equals "3".
func assertDecimal(t *testing.T, want, got string) {
	t.Helper()
	gotDecimal, err := NewDecimal(got)
	require.NoError(t, err)
	assert.Zero(t, mustDecimal(t, want).Cmp(gotDecimal), "want %s, got %s", want, got)
}

func mustAdd(t *testing.T, a, b Decimal) Decimal {
	t.Helper()
	sum, err := a.Add(b)
	require.NoError(t, err)
	return sum
}

// abs is only used on values far from the exponent limits.
func abs(d Decimal) Decimal {
	if d.Sign() >= 0 {
		return d
	}
	negated, _ := d.Mul(NewDecimalFromInt64(-1))
	return negated
}

// decimalsClose reports whether a and b agree to 25 significant digits.
func decimalsClose(a, b Decimal) bool {
	diff, err := a.Sub(b)
	if err != nil {
		return false
	}
	if diff.IsZero() {
		return true
	}
	scale := abs(b)
	one := NewDecimalFromInt64(1)
	if scale.Cmp(one) < 0 {
		scale = one
	}
	tolerance, _ := NewDecimal("1e-25")
	bound, err := scale.Mul(tolerance)
	return err == nil && abs(diff).Cmp(bound) <= 0
}

func customersByID(customers []specs.CustomerScoreSpec) map[string]specs.CustomerScoreSpec {
	byID := make(map[string]specs.CustomerScoreSpec, len(customers))
	for _, c := range customers {
		byID[c.CustomerID] = c
	}
	return byID
}
