package specs

// DefaultProfitRate is applied when CLTVConfigSpec.ProfitRate is empty.
const DefaultProfitRate = "0.10"

// CLTVConfigSpec holds the tunable parameters of a CLTV run.
type CLTVConfigSpec struct {
	// Fraction of revenue assumed to be retained as profit, as a decimal string.
	//
	// Scales ProfitMargin and therefore CLTV linearly; segment assignments are
	// unaffected because segmentation is rank-based. Must be positive.
	// Defaults to DefaultProfitRate.
	ProfitRate string `json:"profitRate,omitempty"`
}

// CLTVReportSpec is the result of a full pipeline run.
type CLTVReportSpec struct {
	// What the cleaning stage kept and dropped.
	Cleaning CleaningReportSpec `json:"cleaning"`

	// Global scalars shared by all customer scores.
	Population PopulationSpec `json:"population"`

	// One score per customer, ordered by customer identifier.
	Customers []CustomerScoreSpec `json:"customers"`
}

// Clean filters raw rows down to completed, positive-quantity lines with a known customer.
//
// A row is retained only if:
//  1. Its invoice does not start with CancellationMarker
//  2. No field is missing
//  3. Quantity parses as an integer greater than zero
//  4. Price and InvoiceDate parse
//
// Retained rows gain LineTotal = Quantity × Price. Rows failing any rule are
// dropped silently and counted in the returned report. Never returns an error
// for bad rows.
//
// This is the spec-level interface using only primitive types.
// See internal.Clean for the reference implementation.
type Clean func(rows []TransactionRowSpec) ([]CleanTransactionSpec, CleaningReportSpec)

// Aggregate groups cleaned rows by customer identifier.
//
// For each customer:
//   - TotalTransactions: count of distinct invoices
//   - TotalUnits: sum of quantities
//   - TotalRevenue: sum of line totals
//
// Returns one aggregate per customer, ordered by customer identifier.
// Returns error only if a row is invalid.
//
// This is the spec-level interface using only primitive types.
// See internal.Aggregate for the reference implementation.
type Aggregate func(rows []CleanTransactionSpec) ([]CustomerAggregateSpec, error)

// Derive scores every customer aggregate.
//
// Process:
//  1. Global pass: customer count, repeat rate, churn rate
//  2. Per-customer pass: average order value, purchase frequency, profit margin,
//     customer value, CLTV (in that order)
//
// Returns a report with empty segments and an empty cleaning section.
// Returns ErrDegeneratePopulation if there are no customers or the churn rate
// is zero.
//
// This is the spec-level interface using only primitive types.
// See internal.Derive for the reference implementation.
type Derive func(customers []CustomerAggregateSpec, config CLTVConfigSpec) (CLTVReportSpec, error)

// Segment assigns each scored customer to a quartile tier by CLTV rank.
//
// Lowest quartile is "D", highest is "A". Customers with equal CLTV are ordered
// by customer identifier, so the same input always yields the same tiers.
// The returned slice keeps the input order.
//
// Returns ErrInsufficientPopulation for fewer than four customers.
//
// This is the spec-level interface using only primitive types.
// See internal.SegmentCustomers for the reference implementation.
type Segment func(customers []CustomerScoreSpec) ([]CustomerScoreSpec, error)

// ComputeCLTV runs Clean, Aggregate, Derive and Segment in sequence.
//
// Any error aborts the run and no partial report is returned.
//
// This is the spec-level interface using only primitive types.
// See internal.ComputeCLTV for the reference implementation.
type ComputeCLTV func(rows []TransactionRowSpec, config CLTVConfigSpec) (CLTVReportSpec, error)
