package internal

import (
	"fmt"
	"slices"

	"github.com/chrisconley/cltv/specs"
)

// Aggregate implements specs.Aggregate.
// Converts specs to domain objects, transforms, and converts back to specs.
func Aggregate(rowSpecs []specs.CleanTransactionSpec) ([]specs.CustomerAggregateSpec, error) {
	// Convert row specs to domain objects
	transactions := make([]Transaction, len(rowSpecs))
	for i, spec := range rowSpecs {
		transaction, err := NewTransaction(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid row at index %d: %w", i, err)
		}
		transactions[i] = transaction
	}

	aggregates, err := aggregate(transactions)
	if err != nil {
		return nil, err
	}

	// Convert domain objects back to specs
	aggregateSpecs := make([]specs.CustomerAggregateSpec, len(aggregates))
	for i, a := range aggregates {
		aggregateSpecs[i] = a.ToSpec()
	}
	return aggregateSpecs, nil
}

// customerGroup accumulates the rows of one customer.
type customerGroup struct {
	invoices map[string]struct{}
	units    int64
	revenue  Decimal
}

// aggregate groups transactions by customer and totals each group.
// This is the private domain-level function that operates on domain objects.
//
// Transactions count distinct invoices, not rows: one invoice with five product
// lines is one transaction. The result is ordered by customer identifier.
func aggregate(transactions []Transaction) ([]CustomerAggregate, error) {
	groups := make(map[CustomerID]*customerGroup)
	for _, t := range transactions {
		group, ok := groups[t.CustomerID]
		if !ok {
			group = &customerGroup{invoices: make(map[string]struct{})}
			groups[t.CustomerID] = group
		}
		group.invoices[t.Invoice.ToString()] = struct{}{}
		group.units += t.Quantity.ToInt64()
		revenue, err := group.revenue.Add(t.LineTotal)
		if err != nil {
			return nil, fmt.Errorf("customer %s revenue: %w", t.CustomerID.ToString(), err)
		}
		group.revenue = revenue
	}

	customerIDs := make([]CustomerID, 0, len(groups))
	for id := range groups {
		customerIDs = append(customerIDs, id)
	}
	slices.SortFunc(customerIDs, CustomerID.Compare)

	aggregates := make([]CustomerAggregate, 0, len(customerIDs))
	for _, id := range customerIDs {
		group := groups[id]

		totalTransactions, err := NewTransactionCount(len(group.invoices))
		if err != nil {
			return nil, fmt.Errorf("customer %s: %w", id.ToString(), err)
		}

		aggregates = append(aggregates, CustomerAggregate{
			CustomerID:        id,
			TotalTransactions: totalTransactions,
			TotalUnits:        group.units,
			TotalRevenue:      group.revenue,
		})
	}

	return aggregates, nil
}
