package internal

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/chrisconley/cltv/specs"
)

// rowsFromSeeds expands each seed into one raw row. Nine customers share
// fifteen invoice numbers; quantities range over -1..4 so some rows are
// dropped by cleaning.
func rowsFromSeeds(seeds []int) []specs.TransactionRowSpec {
	rows := make([]specs.TransactionRowSpec, len(seeds))
	for i, s := range seeds {
		rows[i] = line(
			fmt.Sprint(500000+(s/9)%15),
			fmt.Sprint(10000+s%9),
			fmt.Sprint((s/135)%6-1),
			fmt.Sprintf("%d.%02d", 1+s%50, (s/7)%100),
		)
	}
	return rows
}

func seedsGen() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 1<<20))
}

func TestCleaningProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every row is retained or dropped for exactly one reason", prop.ForAll(
		func(seeds []int) bool {
			cleaned, r := Clean(rowsFromSeeds(seeds))
			dropped := r.Cancelled + r.Incomplete + r.NonPositiveQuantity + r.Malformed
			return r.Input == len(seeds) && r.Retained == len(cleaned) && r.Retained+dropped == r.Input
		},
		seedsGen(),
	))

	properties.Property("retained rows have positive quantity", prop.ForAll(
		func(seeds []int) bool {
			cleaned, _ := Clean(rowsFromSeeds(seeds))
			for _, row := range cleaned {
				if row.Quantity <= 0 {
					return false
				}
			}
			return true
		},
		seedsGen(),
	))

	properties.TestingRun(t)
}

func TestAggregationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("transactions count distinct invoices per customer", prop.ForAll(
		func(seeds []int) bool {
			cleaned, _ := Clean(rowsFromSeeds(seeds))
			invoices := map[string]map[string]bool{}
			for _, row := range cleaned {
				if invoices[row.CustomerID] == nil {
					invoices[row.CustomerID] = map[string]bool{}
				}
				invoices[row.CustomerID][row.Invoice] = true
			}

			aggregates, err := Aggregate(cleaned)
			if err != nil || len(aggregates) != len(invoices) {
				return false
			}
			for _, a := range aggregates {
				if a.TotalTransactions != len(invoices[a.CustomerID]) {
					return false
				}
			}
			return true
		},
		seedsGen(),
	))

	properties.Property("revenue is conserved", prop.ForAll(
		func(seeds []int) bool {
			cleaned, _ := Clean(rowsFromSeeds(seeds))
			aggregates, err := Aggregate(cleaned)
			if err != nil {
				return false
			}

			var rowTotal, customerTotal Decimal
			for _, row := range cleaned {
				d, err := NewDecimal(row.LineTotal)
				if err != nil {
					return false
				}
				if rowTotal, err = rowTotal.Add(d); err != nil {
					return false
				}
			}
			for _, a := range aggregates {
				d, err := NewDecimal(a.TotalRevenue)
				if err != nil {
					return false
				}
				if customerTotal, err = customerTotal.Add(d); err != nil {
					return false
				}
			}
			return rowTotal.Cmp(customerTotal) == 0
		},
		seedsGen(),
	))

	properties.TestingRun(t)
}

func TestPipelineProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	// Inputs either score or fail with one of the two population errors.
	run := func(seeds []int, rate string) (specs.CLTVReportSpec, bool, bool) {
		report, err := ComputeCLTV(rowsFromSeeds(seeds), specs.CLTVConfigSpec{ProfitRate: rate})
		if err == nil {
			return report, true, true
		}
		expected := errors.Is(err, specs.ErrDegeneratePopulation) || errors.Is(err, specs.ErrInsufficientPopulation)
		return report, false, expected
	}

	properties.Property("runs are deterministic", prop.ForAll(
		func(seeds []int) bool {
			first, ok1, expected := run(seeds, "0.10")
			second, ok2, _ := run(seeds, "0.10")
			if !expected || ok1 != ok2 {
				return false
			}
			return !ok1 || fmt.Sprint(first) == fmt.Sprint(second)
		},
		seedsGen(),
	))

	properties.Property("purchase frequencies sum to transactions per customer", prop.ForAll(
		func(seeds []int) bool {
			report, ok, expected := run(seeds, "0.10")
			if !ok {
				return expected
			}

			var sum Decimal
			transactions := 0
			for _, c := range report.Customers {
				pf, err := NewDecimal(c.PurchaseFrequency)
				if err != nil {
					return false
				}
				if sum, err = sum.Add(pf); err != nil {
					return false
				}
				transactions += c.TotalTransactions
			}
			want, err := NewDecimalFromInt64(int64(transactions)).Div(NewDecimalFromInt64(int64(len(report.Customers))))
			return err == nil && decimalsClose(sum, want)
		},
		seedsGen(),
	))

	// A power of ten keeps the scaling exact at every precision.
	properties.Property("scaling profit rate scales cltv and keeps segments", prop.ForAll(
		func(seeds []int) bool {
			base, ok, expected := run(seeds, "0.10")
			scaled, okScaled, _ := run(seeds, "1.00")
			if ok != okScaled {
				return false
			}
			if !ok {
				return expected
			}

			ten := NewDecimalFromInt64(10)
			for i := range base.Customers {
				b, err1 := NewDecimal(base.Customers[i].CLTV)
				s, err2 := NewDecimal(scaled.Customers[i].CLTV)
				if err1 != nil || err2 != nil {
					return false
				}
				want, err := b.Mul(ten)
				if err != nil || want.Cmp(s) != 0 || base.Customers[i].Segment != scaled.Customers[i].Segment {
					return false
				}
			}
			return true
		},
		seedsGen(),
	))

	// Other factors agree up to the rounding of the last digit.
	properties.Property("tripling profit rate triples cltv", prop.ForAll(
		func(seeds []int) bool {
			base, ok, expected := run(seeds, "0.10")
			scaled, okScaled, _ := run(seeds, "0.30")
			if ok != okScaled {
				return false
			}
			if !ok {
				return expected
			}

			three := NewDecimalFromInt64(3)
			for i := range base.Customers {
				b, err1 := NewDecimal(base.Customers[i].CLTV)
				s, err2 := NewDecimal(scaled.Customers[i].CLTV)
				if err1 != nil || err2 != nil {
					return false
				}
				want, err := b.Mul(three)
				if err != nil || !decimalsClose(s, want) {
					return false
				}
			}
			return true
		},
		seedsGen(),
	))

	properties.Property("higher cltv never lands in a lower segment", prop.ForAll(
		func(seeds []int) bool {
			report, ok, expected := run(seeds, "0.10")
			if !ok {
				return expected
			}

			rank := map[string]int{"D": 0, "C": 1, "B": 2, "A": 3}
			for _, a := range report.Customers {
				for _, b := range report.Customers {
					ca, _ := NewDecimal(a.CLTV)
					cb, _ := NewDecimal(b.CLTV)
					if ca.Cmp(cb) > 0 && rank[a.Segment] < rank[b.Segment] {
						return false
					}
				}
			}
			return true
		},
		seedsGen(),
	))

	properties.Property("every customer gets a segment", prop.ForAll(
		func(seeds []int) bool {
			report, ok, expected := run(seeds, "0.10")
			if !ok {
				return expected
			}
			for _, c := range report.Customers {
				if c.Segment == "" {
					return false
				}
			}
			return true
		},
		seedsGen(),
	))

	properties.TestingRun(t)
}
