package internal

import (
	"fmt"
	"slices"

	"github.com/chrisconley/cltv/specs"
)

// SegmentCount is the number of value tiers.
const SegmentCount = 4

// SegmentCustomers implements specs.Segment.
// Converts specs to domain objects, transforms, and converts back to specs.
func SegmentCustomers(customerSpecs []specs.CustomerScoreSpec) ([]specs.CustomerScoreSpec, error) {
	scores, err := scoresFromSpecs(customerSpecs)
	if err != nil {
		return nil, err
	}

	segmented, err := segment(scores)
	if err != nil {
		return nil, err
	}
	return scoresToSpecs(segmented), nil
}

// segment assigns quartile tiers by CLTV rank.
// This is the private domain-level function that operates on domain objects.
//
// Algorithm:
//  1. Rank customers by CLTV ascending; equal CLTV ranks by customer identifier
//  2. Place quartile edges on ranks 1..n with linear interpolation
//  3. Rank r joins the lowest quartile i with 4(r-1) <= (n-1)(i+1)
//
// Ranking first makes the binning tolerant of duplicate CLTV values: every
// tier is non-empty for n >= 4 and ties on a boundary split deterministically.
// Returns a new slice in the input order.
func segment(scores []CustomerScore) ([]CustomerScore, error) {
	n := len(scores)
	if n < SegmentCount {
		return nil, fmt.Errorf("%w: %d customers, need at least %d",
			specs.ErrInsufficientPopulation, n, SegmentCount)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if c := scores[a].CLTV.Cmp(scores[b].CLTV); c != 0 {
			return c
		}
		return scores[a].Aggregate.CustomerID.Compare(scores[b].Aggregate.CustomerID)
	})

	segmented := slices.Clone(scores)
	for i, idx := range order {
		segmented[idx].Segment = segmentsByQuartile[quartileOfRank(i+1, n)]
	}
	return segmented, nil
}

// quartileOfRank returns the quartile index (0 = lowest) of 1-based rank r
// among n ranks.
func quartileOfRank(r, n int) int {
	for i := 0; i < SegmentCount-1; i++ {
		if SegmentCount*(r-1) <= (n-1)*(i+1) {
			return i
		}
	}
	return SegmentCount - 1
}
