package internal

import (
	"fmt"

	"github.com/chrisconley/cltv/specs"
)

// Derive implements specs.Derive.
// Converts specs to domain objects, transforms, and converts back to specs.
func Derive(customerSpecs []specs.CustomerAggregateSpec, configSpec specs.CLTVConfigSpec) (specs.CLTVReportSpec, error) {
	aggregates := make([]CustomerAggregate, len(customerSpecs))
	for i, spec := range customerSpecs {
		a, err := NewCustomerAggregate(spec)
		if err != nil {
			return specs.CLTVReportSpec{}, fmt.Errorf("invalid customer at index %d: %w", i, err)
		}
		aggregates[i] = a
	}

	config, err := NewCLTVConfig(configSpec)
	if err != nil {
		return specs.CLTVReportSpec{}, fmt.Errorf("invalid config: %w", err)
	}

	population, scores, err := derive(aggregates, config)
	if err != nil {
		return specs.CLTVReportSpec{}, err
	}

	return specs.CLTVReportSpec{
		Population: population.ToSpec(),
		Customers:  scoresToSpecs(scores),
	}, nil
}

// derive scores every customer in two passes: the population scalars first,
// then each customer against those scalars.
// This is the private domain-level function that operates on domain objects.
func derive(aggregates []CustomerAggregate, config CLTVConfig) (Population, []CustomerScore, error) {
	population, err := NewPopulation(aggregates)
	if err != nil {
		return Population{}, nil, err
	}

	scores := make([]CustomerScore, len(aggregates))
	for i, a := range aggregates {
		score, err := population.Score(a, config.ProfitRate())
		if err != nil {
			return Population{}, nil, fmt.Errorf("customer %s: %w", a.CustomerID.ToString(), err)
		}
		scores[i] = score
	}

	return population, scores, nil
}

// Population holds the scalars that need the whole customer set.
type Population struct {
	customerCount   int
	repeatCustomers int
	repeatRate      Decimal
	churnRate       Decimal
}

// NewPopulation computes customer count, repeat rate and churn rate.
// Returns specs.ErrDegeneratePopulation when there are no customers or when
// every customer is a repeat purchaser.
func NewPopulation(aggregates []CustomerAggregate) (Population, error) {
	customerCount := len(aggregates)
	if customerCount == 0 {
		return Population{}, fmt.Errorf("%w: no customers after cleaning", specs.ErrDegeneratePopulation)
	}

	repeatCustomers := 0
	for _, a := range aggregates {
		if a.IsRepeat() {
			repeatCustomers++
		}
	}

	repeatRate, err := NewDecimalFromInt64(int64(repeatCustomers)).Div(NewDecimalFromInt64(int64(customerCount)))
	if err != nil {
		return Population{}, fmt.Errorf("repeat rate: %w", err)
	}

	churnRate, err := NewDecimalFromInt64(1).Sub(repeatRate)
	if err != nil {
		return Population{}, fmt.Errorf("churn rate: %w", err)
	}
	if churnRate.IsZero() {
		return Population{}, fmt.Errorf("%w: all %d customers are repeat customers, churn rate is zero",
			specs.ErrDegeneratePopulation, customerCount)
	}

	return Population{
		customerCount:   customerCount,
		repeatCustomers: repeatCustomers,
		repeatRate:      repeatRate,
		churnRate:       churnRate,
	}, nil
}

// CustomerCount is the number of customers that survived cleaning.
func (p Population) CustomerCount() int {
	return p.customerCount
}

func (p Population) RepeatCustomers() int {
	return p.repeatCustomers
}

// RepeatRate is the share of customers with more than one invoice.
func (p Population) RepeatRate() Decimal {
	return p.repeatRate
}

// ChurnRate is 1 - RepeatRate, never zero.
func (p Population) ChurnRate() Decimal {
	return p.churnRate
}

func (p Population) ToSpec() specs.PopulationSpec {
	return specs.PopulationSpec{
		CustomerCount:   p.customerCount,
		RepeatCustomers: p.repeatCustomers,
		RepeatRate:      p.repeatRate.String(),
		ChurnRate:       p.churnRate.String(),
	}
}

// Score derives one customer's metrics. Each step uses only values computed
// before it plus the population scalars:
//
//	average_order_value = total_revenue / total_transactions
//	purchase_frequency  = total_transactions / customer_count
//	profit_margin       = total_revenue × profit_rate
//	customer_value      = average_order_value × purchase_frequency
//	cltv                = (customer_value / churn_rate) × profit_margin
//
// The result is unsegmented.
func (p Population) Score(a CustomerAggregate, profitRate ProfitRate) (CustomerScore, error) {
	transactions := a.TotalTransactions.ToDecimal()

	averageOrderValue, err := a.TotalRevenue.Div(transactions)
	if err != nil {
		return CustomerScore{}, fmt.Errorf("average order value: %w", err)
	}

	purchaseFrequency, err := transactions.Div(NewDecimalFromInt64(int64(p.customerCount)))
	if err != nil {
		return CustomerScore{}, fmt.Errorf("%w: purchase frequency: %v", specs.ErrDegeneratePopulation, err)
	}

	profitMargin, err := a.TotalRevenue.Mul(profitRate.ToDecimal())
	if err != nil {
		return CustomerScore{}, fmt.Errorf("profit margin: %w", err)
	}

	customerValue, err := averageOrderValue.Mul(purchaseFrequency)
	if err != nil {
		return CustomerScore{}, fmt.Errorf("customer value: %w", err)
	}

	if p.churnRate.IsZero() {
		return CustomerScore{}, fmt.Errorf("%w: churn rate is zero", specs.ErrDegeneratePopulation)
	}
	retained, err := customerValue.Div(p.churnRate)
	if err != nil {
		return CustomerScore{}, fmt.Errorf("cltv: %w", err)
	}

	cltv, err := retained.Mul(profitMargin)
	if err != nil {
		return CustomerScore{}, fmt.Errorf("cltv: %w", err)
	}

	return CustomerScore{
		Aggregate:         a,
		AverageOrderValue: averageOrderValue,
		PurchaseFrequency: purchaseFrequency,
		ProfitMargin:      profitMargin,
		CustomerValue:     customerValue,
		CLTV:              cltv,
	}, nil
}

func scoresToSpecs(scores []CustomerScore) []specs.CustomerScoreSpec {
	out := make([]specs.CustomerScoreSpec, len(scores))
	for i, s := range scores {
		out[i] = s.ToSpec()
	}
	return out
}
