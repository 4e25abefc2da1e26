package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisconley/cltv/specs"
)

func TestAggregate(t *testing.T) {
	t.Run("counts distinct invoices, not rows", func(t *testing.T) {
		cleaned, _ := Clean([]specs.TransactionRowSpec{
			line("500", "12346", "1", "1.00"),
			line("500", "12346", "2", "1.00"),
			line("500", "12346", "3", "1.00"),
			line("500", "12346", "4", "1.00"),
			line("500", "12346", "5", "1.00"),
		})

		aggregates, err := Aggregate(cleaned)

		require.NoError(t, err)
		require.Len(t, aggregates, 1)
		assert.Equal(t, 1, aggregates[0].TotalTransactions)
		assert.Equal(t, int64(15), aggregates[0].TotalUnits)
		assertDecimal(t, "15", aggregates[0].TotalRevenue)
	})

	t.Run("totals the fixture per customer", func(t *testing.T) {
		cleaned, _ := Clean(fixtureRows())

		aggregates, err := Aggregate(cleaned)

		require.NoError(t, err)
		require.Len(t, aggregates, 4)

		want := []struct {
			id           string
			transactions int
			units        int64
			revenue      string
		}{
			{"12346", 2, 7, "30"},
			{"12347", 1, 10, "10"},
			{"12348", 1, 1, "40"},
			{"12349", 3, 8, "60"},
		}
		for i, w := range want {
			got := aggregates[i]
			assert.Equal(t, w.id, got.CustomerID)
			assert.Equal(t, w.transactions, got.TotalTransactions, "customer %s", w.id)
			assert.Equal(t, w.units, got.TotalUnits, "customer %s", w.id)
			assertDecimal(t, w.revenue, got.TotalRevenue)
		}
	})

	t.Run("orders customers numerically by identifier", func(t *testing.T) {
		cleaned, _ := Clean([]specs.TransactionRowSpec{
			line("1", "100", "1", "1"),
			line("2", "99", "1", "1"),
			line("3", "guest", "1", "1"),
			line("4", "1000", "1", "1"),
		})

		aggregates, err := Aggregate(cleaned)

		require.NoError(t, err)
		ids := make([]string, len(aggregates))
		for i, a := range aggregates {
			ids[i] = a.CustomerID
		}
		assert.Equal(t, []string{"99", "100", "1000", "guest"}, ids)
	})

	t.Run("merges float and integer forms of the same identifier", func(t *testing.T) {
		cleaned, _ := Clean([]specs.TransactionRowSpec{
			line("1", "13085", "1", "1"),
			line("2", "13085.0", "1", "1"),
		})

		aggregates, err := Aggregate(cleaned)

		require.NoError(t, err)
		require.Len(t, aggregates, 1)
		assert.Equal(t, 2, aggregates[0].TotalTransactions)
	})

	t.Run("conserves revenue", func(t *testing.T) {
		cleaned, _ := Clean(fixtureRows())

		aggregates, err := Aggregate(cleaned)
		require.NoError(t, err)

		var rowTotal, customerTotal Decimal
		for _, row := range cleaned {
			rowTotal = mustAdd(t, rowTotal, mustDecimal(t, row.LineTotal))
		}
		for _, a := range aggregates {
			customerTotal = mustAdd(t, customerTotal, mustDecimal(t, a.TotalRevenue))
		}
		assert.Zero(t, rowTotal.Cmp(customerTotal))
	})

	t.Run("empty input yields no customers", func(t *testing.T) {
		aggregates, err := Aggregate(nil)

		require.NoError(t, err)
		assert.Empty(t, aggregates)
	})

	t.Run("rejects rows that did not pass cleaning", func(t *testing.T) {
		_, err := Aggregate([]specs.CleanTransactionSpec{{Invoice: "C1"}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid row at index 0")
	})
}
