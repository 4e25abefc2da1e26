package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisconley/cltv/specs"
)

func fixtureReport(t *testing.T) specs.CLTVReportSpec {
	t.Helper()
	report, err := ComputeCLTV(fixtureRows(), specs.CLTVConfigSpec{})
	require.NoError(t, err)
	return report
}

func TestSummarizeSegments(t *testing.T) {
	t.Run("one summary per tier, best first", func(t *testing.T) {
		summaries, err := SummarizeSegments(fixtureReport(t).Customers)

		require.NoError(t, err)
		require.Len(t, summaries, SegmentCount)
		for i, want := range []string{"A", "B", "C", "D"} {
			assert.Equal(t, want, summaries[i].Segment)
			assert.Equal(t, 1, summaries[i].Customers)
		}

		a := summaries[0]
		assertDecimal(t, "3", a.TotalTransactions.Sum)
		assertDecimal(t, "8", a.TotalUnits.Sum)
		assertDecimal(t, "60", a.TotalRevenue.Sum)
		assertDecimal(t, "180", a.CLTV.Sum)
		assertDecimal(t, "180", a.CLTV.Mean)
	})

	t.Run("means divide by tier size", func(t *testing.T) {
		customers := []specs.CustomerScoreSpec{
			scoreSpec("1", "10"),
			scoreSpec("2", "20"),
			scoreSpec("3", "30"),
			scoreSpec("4", "40"),
			scoreSpec("5", "50"),
		}
		segmented, err := SegmentCustomers(customers)
		require.NoError(t, err)

		summaries, err := SummarizeSegments(segmented)

		require.NoError(t, err)
		d := summaries[3]
		assert.Equal(t, "D", d.Segment)
		assert.Equal(t, 2, d.Customers)
		assertDecimal(t, "30", d.CLTV.Sum)
		assertDecimal(t, "15", d.CLTV.Mean)
		assertDecimal(t, "2", d.TotalTransactions.Sum)
		assertDecimal(t, "1", d.TotalTransactions.Mean)
	})

	t.Run("empty tiers report zero", func(t *testing.T) {
		customer := scoreSpec("1", "10")
		customer.Segment = "A"

		summaries, err := SummarizeSegments([]specs.CustomerScoreSpec{customer})

		require.NoError(t, err)
		assert.Equal(t, 0, summaries[3].Customers)
		assertDecimal(t, "0", summaries[3].CLTV.Sum)
		assertDecimal(t, "0", summaries[3].CLTV.Mean)
	})

	t.Run("rejects unsegmented customers", func(t *testing.T) {
		_, err := SummarizeSegments([]specs.CustomerScoreSpec{scoreSpec("1", "10")})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not segmented")
	})

	t.Run("rejects unknown tiers", func(t *testing.T) {
		customer := scoreSpec("1", "10")
		customer.Segment = "E"

		_, err := SummarizeSegments([]specs.CustomerScoreSpec{customer})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid segment")
	})
}

func TestTopCustomers(t *testing.T) {
	t.Run("returns highest cltv first", func(t *testing.T) {
		top, err := TopCustomers(fixtureReport(t).Customers, 2)

		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, "12349", top[0].CustomerID)
		assert.Equal(t, "12348", top[1].CustomerID)
	})

	t.Run("ties break by customer identifier", func(t *testing.T) {
		customers := []specs.CustomerScoreSpec{
			scoreSpec("30", "5"),
			scoreSpec("4", "5"),
			scoreSpec("200", "9"),
		}

		top, err := TopCustomers(customers, 3)

		require.NoError(t, err)
		assert.Equal(t, "200", top[0].CustomerID)
		assert.Equal(t, "4", top[1].CustomerID)
		assert.Equal(t, "30", top[2].CustomerID)
	})

	t.Run("n beyond population returns everyone", func(t *testing.T) {
		top, err := TopCustomers(fixtureReport(t).Customers, 100)

		require.NoError(t, err)
		assert.Len(t, top, 4)
	})

	t.Run("zero returns nobody", func(t *testing.T) {
		top, err := TopCustomers(fixtureReport(t).Customers, 0)

		require.NoError(t, err)
		assert.Empty(t, top)
	})

	t.Run("rejects negative n", func(t *testing.T) {
		_, err := TopCustomers(fixtureReport(t).Customers, -1)

		require.Error(t, err)
	})
}
