package internal

import (
	"fmt"

	"github.com/chrisconley/cltv/specs"
)

type CustomerAggregate struct {
	CustomerID        CustomerID
	TotalTransactions TransactionCount
	TotalUnits        int64
	TotalRevenue      Decimal
}

func NewCustomerAggregate(spec specs.CustomerAggregateSpec) (CustomerAggregate, error) {
	customerID, err := NewCustomerID(spec.CustomerID)
	if err != nil {
		return CustomerAggregate{}, fmt.Errorf("invalid customer ID: %w", err)
	}

	totalTransactions, err := NewTransactionCount(spec.TotalTransactions)
	if err != nil {
		return CustomerAggregate{}, fmt.Errorf("invalid total transactions: %w", err)
	}

	if spec.TotalUnits <= 0 {
		return CustomerAggregate{}, fmt.Errorf("invalid total units: must be positive, got %d", spec.TotalUnits)
	}

	totalRevenue, err := NewDecimal(spec.TotalRevenue)
	if err != nil {
		return CustomerAggregate{}, fmt.Errorf("invalid total revenue: %w", err)
	}

	return CustomerAggregate{
		CustomerID:        customerID,
		TotalTransactions: totalTransactions,
		TotalUnits:        spec.TotalUnits,
		TotalRevenue:      totalRevenue,
	}, nil
}

func (a CustomerAggregate) ToSpec() specs.CustomerAggregateSpec {
	return specs.CustomerAggregateSpec{
		CustomerID:        a.CustomerID.ToString(),
		TotalTransactions: a.TotalTransactions.ToInt(),
		TotalUnits:        a.TotalUnits,
		TotalRevenue:      a.TotalRevenue.String(),
	}
}

// IsRepeat reports whether the customer bought on more than one invoice.
func (a CustomerAggregate) IsRepeat() bool {
	return a.TotalTransactions.ToInt() > 1
}

// TransactionCount is the number of distinct invoices of a customer.
type TransactionCount struct {
	value int
}

func NewTransactionCount(value int) (TransactionCount, error) {
	if value < 1 {
		return TransactionCount{}, fmt.Errorf("transaction count must be at least 1, got %d", value)
	}
	return TransactionCount{value: value}, nil
}

func (c TransactionCount) ToInt() int {
	return c.value
}

func (c TransactionCount) ToDecimal() Decimal {
	return NewDecimalFromInt64(int64(c.value))
}

// CustomerScore is a fully derived output row.
type CustomerScore struct {
	Aggregate         CustomerAggregate
	AverageOrderValue Decimal
	PurchaseFrequency Decimal
	ProfitMargin      Decimal
	CustomerValue     Decimal
	CLTV              Decimal
	Segment           Segment
}

func NewCustomerScore(spec specs.CustomerScoreSpec) (CustomerScore, error) {
	aggregate, err := NewCustomerAggregate(specs.CustomerAggregateSpec{
		CustomerID:        spec.CustomerID,
		TotalTransactions: spec.TotalTransactions,
		TotalUnits:        spec.TotalUnits,
		TotalRevenue:      spec.TotalRevenue,
	})
	if err != nil {
		return CustomerScore{}, err
	}

	averageOrderValue, err := NewDecimal(spec.AverageOrderValue)
	if err != nil {
		return CustomerScore{}, fmt.Errorf("invalid average order value: %w", err)
	}

	purchaseFrequency, err := NewDecimal(spec.PurchaseFrequency)
	if err != nil {
		return CustomerScore{}, fmt.Errorf("invalid purchase frequency: %w", err)
	}

	profitMargin, err := NewDecimal(spec.ProfitMargin)
	if err != nil {
		return CustomerScore{}, fmt.Errorf("invalid profit margin: %w", err)
	}

	customerValue, err := NewDecimal(spec.CustomerValue)
	if err != nil {
		return CustomerScore{}, fmt.Errorf("invalid customer value: %w", err)
	}

	cltv, err := NewDecimal(spec.CLTV)
	if err != nil {
		return CustomerScore{}, fmt.Errorf("invalid CLTV: %w", err)
	}

	score := CustomerScore{
		Aggregate:         aggregate,
		AverageOrderValue: averageOrderValue,
		PurchaseFrequency: purchaseFrequency,
		ProfitMargin:      profitMargin,
		CustomerValue:     customerValue,
		CLTV:              cltv,
	}

	if spec.Segment != "" {
		segment, err := NewSegment(spec.Segment)
		if err != nil {
			return CustomerScore{}, fmt.Errorf("invalid segment: %w", err)
		}
		score.Segment = segment
	}

	return score, nil
}

func (s CustomerScore) ToSpec() specs.CustomerScoreSpec {
	return specs.CustomerScoreSpec{
		CustomerID:        s.Aggregate.CustomerID.ToString(),
		TotalTransactions: s.Aggregate.TotalTransactions.ToInt(),
		TotalUnits:        s.Aggregate.TotalUnits,
		TotalRevenue:      s.Aggregate.TotalRevenue.String(),
		AverageOrderValue: s.AverageOrderValue.String(),
		PurchaseFrequency: s.PurchaseFrequency.String(),
		ProfitMargin:      s.ProfitMargin.String(),
		CustomerValue:     s.CustomerValue.String(),
		CLTV:              s.CLTV.String(),
		Segment:           s.Segment.ToString(),
	}
}

// Segment is a value tier. The zero value means "not yet segmented".
type Segment struct {
	value string
}

var (
	SegmentA = Segment{value: "A"}
	SegmentB = Segment{value: "B"}
	SegmentC = Segment{value: "C"}
	SegmentD = Segment{value: "D"}
)

// segmentsByQuartile maps quartile index (0 = lowest CLTV) to tier.
var segmentsByQuartile = []Segment{SegmentD, SegmentC, SegmentB, SegmentA}

func NewSegment(value string) (Segment, error) {
	switch value {
	case "A", "B", "C", "D":
		return Segment{value: value}, nil
	case "":
		return Segment{}, fmt.Errorf("segment is required")
	default:
		return Segment{}, fmt.Errorf("invalid segment: %q", value)
	}
}

func (s Segment) ToString() string {
	return s.value
}

func (s Segment) IsAssigned() bool {
	return s.value != ""
}
