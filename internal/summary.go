package internal

import (
	"fmt"
	"slices"

	"github.com/chrisconley/cltv/specs"
)

// SummarizeSegments implements specs.Summarize.
func SummarizeSegments(customerSpecs []specs.CustomerScoreSpec) ([]specs.SegmentSummarySpec, error) {
	scores, err := scoresFromSpecs(customerSpecs)
	if err != nil {
		return nil, err
	}

	summaries, err := summarize(scores)
	if err != nil {
		return nil, err
	}

	out := make([]specs.SegmentSummarySpec, len(summaries))
	for i, s := range summaries {
		out[i] = s.ToSpec()
	}
	return out, nil
}

// TopCustomers implements specs.Top.
func TopCustomers(customerSpecs []specs.CustomerScoreSpec, n int) ([]specs.CustomerScoreSpec, error) {
	if n < 0 {
		return nil, fmt.Errorf("n must not be negative, got %d", n)
	}
	scores, err := scoresFromSpecs(customerSpecs)
	if err != nil {
		return nil, err
	}
	return scoresToSpecs(top(scores, n)), nil
}

// SegmentSummary aggregates the customers of one tier.
type SegmentSummary struct {
	Segment           Segment
	Customers         int
	TotalTransactions MetricSummary
	TotalUnits        MetricSummary
	TotalRevenue      MetricSummary
	CLTV              MetricSummary
}

func (s SegmentSummary) ToSpec() specs.SegmentSummarySpec {
	return specs.SegmentSummarySpec{
		Segment:           s.Segment.ToString(),
		Customers:         s.Customers,
		TotalTransactions: s.TotalTransactions.ToSpec(),
		TotalUnits:        s.TotalUnits.ToSpec(),
		TotalRevenue:      s.TotalRevenue.ToSpec(),
		CLTV:              s.CLTV.ToSpec(),
	}
}

type MetricSummary struct {
	Sum  Decimal
	Mean Decimal
}

func (m MetricSummary) ToSpec() specs.MetricSummarySpec {
	return specs.MetricSummarySpec{
		Sum:  m.Sum.String(),
		Mean: m.Mean.String(),
	}
}

// summarize groups segmented scores by tier, A first.
func summarize(scores []CustomerScore) ([]SegmentSummary, error) {
	type sums struct {
		customers    int
		transactions Decimal
		units        Decimal
		revenue      Decimal
		cltv         Decimal
	}
	bySegment := make(map[Segment]*sums, SegmentCount)
	for _, s := range segmentsByQuartile {
		bySegment[s] = &sums{}
	}

	for _, score := range scores {
		acc, ok := bySegment[score.Segment]
		if !ok {
			return nil, fmt.Errorf("customer %s is not segmented", score.Aggregate.CustomerID.ToString())
		}
		acc.customers++
		for _, m := range []struct {
			total *Decimal
			value Decimal
		}{
			{&acc.transactions, score.Aggregate.TotalTransactions.ToDecimal()},
			{&acc.units, NewDecimalFromInt64(score.Aggregate.TotalUnits)},
			{&acc.revenue, score.Aggregate.TotalRevenue},
			{&acc.cltv, score.CLTV},
		} {
			sum, err := m.total.Add(m.value)
			if err != nil {
				return nil, fmt.Errorf("segment %s: %w", score.Segment.ToString(), err)
			}
			*m.total = sum
		}
	}

	summaries := make([]SegmentSummary, 0, SegmentCount)
	for i := len(segmentsByQuartile) - 1; i >= 0; i-- {
		tier := segmentsByQuartile[i]
		acc := bySegment[tier]
		count := NewDecimalFromInt64(int64(acc.customers))

		summary := SegmentSummary{Segment: tier, Customers: acc.customers}
		for _, m := range []struct {
			sum  Decimal
			dest *MetricSummary
		}{
			{acc.transactions, &summary.TotalTransactions},
			{acc.units, &summary.TotalUnits},
			{acc.revenue, &summary.TotalRevenue},
			{acc.cltv, &summary.CLTV},
		} {
			m.dest.Sum = m.sum
			if acc.customers > 0 {
				mean, err := m.sum.Div(count)
				if err != nil {
					return nil, fmt.Errorf("segment %s: %w", tier.ToString(), err)
				}
				m.dest.Mean = mean
			}
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// top returns the n highest-CLTV scores, highest first, ties by customer identifier.
func top(scores []CustomerScore, n int) []CustomerScore {
	ranked := slices.Clone(scores)
	slices.SortStableFunc(ranked, func(a, b CustomerScore) int {
		if c := b.CLTV.Cmp(a.CLTV); c != 0 {
			return c
		}
		return a.Aggregate.CustomerID.Compare(b.Aggregate.CustomerID)
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

func scoresFromSpecs(customerSpecs []specs.CustomerScoreSpec) ([]CustomerScore, error) {
	scores := make([]CustomerScore, len(customerSpecs))
	for i, spec := range customerSpecs {
		score, err := NewCustomerScore(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid customer at index %d: %w", i, err)
		}
		scores[i] = score
	}
	return scores, nil
}
