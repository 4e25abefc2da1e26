package specs

// SegmentSummarySpec describes one tier of a segmented population.
//
// Used to sanity-check a segmentation: a healthy run shows tier A well ahead
// of the others on CLTV, with B and C often close together.
type SegmentSummarySpec struct {
	// Tier label, "A" through "D".
	Segment string `json:"segment" yaml:"segment"`

	// Number of customers in the tier.
	Customers int `json:"customers" yaml:"customers"`

	TotalTransactions MetricSummarySpec `json:"totalTransactions" yaml:"total_transactions"`
	TotalUnits        MetricSummarySpec `json:"totalUnits" yaml:"total_units"`
	TotalRevenue      MetricSummarySpec `json:"totalRevenue" yaml:"total_revenue"`
	CLTV              MetricSummarySpec `json:"cltv" yaml:"cltv"`
}

// MetricSummarySpec is the sum and mean of one metric within a tier.
//
// Both are decimal strings. The mean of an empty tier is "0".
type MetricSummarySpec struct {
	Sum  string `json:"sum" yaml:"sum"`
	Mean string `json:"mean" yaml:"mean"`
}

// Summarize groups segmented customers by tier.
//
// Returns one summary per tier in the order A, B, C, D, including tiers with
// no customers. Returns error if a customer has no valid segment.
//
// This is the spec-level interface using only primitive types.
// See internal.SummarizeSegments for the reference implementation.
type Summarize func(customers []CustomerScoreSpec) ([]SegmentSummarySpec, error)

// Top returns the n customers with the highest CLTV, highest first.
//
// Ties are ordered by customer identifier. Returns all customers when n
// exceeds the population.
//
// This is the spec-level interface using only primitive types.
// See internal.TopCustomers for the reference implementation.
type Top func(customers []CustomerScoreSpec, n int) ([]CustomerScoreSpec, error)
