package specs

// CustomerAggregateSpec represents the per-customer totals produced by aggregation.
//
// One aggregate exists per distinct customer identifier in the cleaned data.
// Aggregates carry only what can be computed from the customer's own rows;
// metrics that need the whole population are added later by derivation.
type CustomerAggregateSpec struct {
	// Customer identifier shared by all rows in the group.
	CustomerID string `json:"customerID"`

	// Number of distinct invoices.
	//
	// An invoice with several product lines counts once.
	TotalTransactions int `json:"totalTransactions"`

	// Sum of quantities over all retained rows.
	TotalUnits int64 `json:"totalUnits"`

	// Sum of line totals over all retained rows, as a decimal string.
	TotalRevenue string `json:"totalRevenue"`
}

// CustomerScoreSpec represents one row of the output table.
//
// All monetary values and rates are decimal strings computed with 34
// significant digits. Segment is empty until segmentation has run.
type CustomerScoreSpec struct {
	CustomerID        string `json:"customerID"`
	TotalTransactions int    `json:"totalTransactions"`
	TotalUnits        int64  `json:"totalUnits"`
	TotalRevenue      string `json:"totalRevenue"`

	// TotalRevenue / TotalTransactions.
	AverageOrderValue string `json:"averageOrderValue"`

	// TotalTransactions / customer count of the whole population.
	PurchaseFrequency string `json:"purchaseFrequency"`

	// TotalRevenue × profit rate.
	ProfitMargin string `json:"profitMargin"`

	// AverageOrderValue × PurchaseFrequency.
	CustomerValue string `json:"customerValue"`

	// (CustomerValue / churn rate) × ProfitMargin.
	CLTV string `json:"cltv"`

	// Value tier: "A" (top quartile by CLTV) through "D" (bottom quartile).
	Segment string `json:"segment,omitempty"`
}

// PopulationSpec holds the scalars computed once over the whole cleaned dataset.
//
// Every customer's score depends on these values, which is why derivation runs
// in two passes.
type PopulationSpec struct {
	// Number of distinct customers after cleaning.
	CustomerCount int `json:"customerCount"`

	// Number of customers with more than one transaction.
	RepeatCustomers int `json:"repeatCustomers"`

	// RepeatCustomers / CustomerCount, as a decimal string.
	RepeatRate string `json:"repeatRate"`

	// 1 - RepeatRate, as a decimal string.
	ChurnRate string `json:"churnRate"`
}
