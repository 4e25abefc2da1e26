package internal

import (
	"fmt"

	"github.com/chrisconley/cltv/specs"
)

type CLTVConfig struct {
	profitRate ProfitRate
}

func NewCLTVConfig(spec specs.CLTVConfigSpec) (CLTVConfig, error) {
	value := spec.ProfitRate
	if value == "" {
		value = specs.DefaultProfitRate
	}

	profitRate, err := NewProfitRate(value)
	if err != nil {
		return CLTVConfig{}, fmt.Errorf("invalid profit rate: %w", err)
	}

	return CLTVConfig{
		profitRate: profitRate,
	}, nil
}

func (c CLTVConfig) ProfitRate() ProfitRate {
	return c.profitRate
}

// ProfitRate is the fraction of revenue retained as profit.
type ProfitRate struct {
	value Decimal
}

func NewProfitRate(value string) (ProfitRate, error) {
	d, err := NewDecimal(value)
	if err != nil {
		return ProfitRate{}, err
	}
	if d.Sign() <= 0 {
		return ProfitRate{}, fmt.Errorf("profit rate must be positive, got %s", d)
	}
	return ProfitRate{value: d}, nil
}

func (r ProfitRate) ToDecimal() Decimal {
	return r.value
}
