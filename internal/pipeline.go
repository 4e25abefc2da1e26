package internal

import (
	"fmt"

	"github.com/chrisconley/cltv/internal/infra"
	"github.com/chrisconley/cltv/specs"
)

// === STAGE EVENTS ===

type RowsCleanedEvent struct {
	Report CleaningReport
}

func (e RowsCleanedEvent) EventType() infra.EventType {
	return infra.RowsCleaned
}

type CustomersAggregatedEvent struct {
	Customers int
}

func (e CustomersAggregatedEvent) EventType() infra.EventType {
	return infra.CustomersAggregated
}

type PopulationDerivedEvent struct {
	Population Population
}

func (e PopulationDerivedEvent) EventType() infra.EventType {
	return infra.PopulationDerived
}

type CustomersSegmentedEvent struct {
	Summaries []SegmentSummary
}

func (e CustomersSegmentedEvent) EventType() infra.EventType {
	return infra.CustomersSegmented
}

// Pipeline runs the cleaning, aggregation, derivation and segmentation stages
// in sequence, announcing each finished stage on the bus.
type Pipeline struct {
	bus *infra.Bus
}

// NewPipeline returns a Pipeline publishing to bus. bus may be nil.
func NewPipeline(bus *infra.Bus) *Pipeline {
	return &Pipeline{bus: bus}
}

// ComputeCLTV implements specs.ComputeCLTV.
func ComputeCLTV(rows []specs.TransactionRowSpec, configSpec specs.CLTVConfigSpec) (specs.CLTVReportSpec, error) {
	return NewPipeline(nil).Run(rows, configSpec)
}

// Run executes a full pipeline over one input snapshot. Any stage failure
// aborts the run without a partial report.
func (p *Pipeline) Run(rows []specs.TransactionRowSpec, configSpec specs.CLTVConfigSpec) (specs.CLTVReportSpec, error) {
	config, err := NewCLTVConfig(configSpec)
	if err != nil {
		return specs.CLTVReportSpec{}, fmt.Errorf("invalid config: %w", err)
	}

	transactions, cleaning := clean(rows)
	p.bus.Publish(RowsCleanedEvent{Report: cleaning})

	aggregates, err := aggregate(transactions)
	if err != nil {
		return specs.CLTVReportSpec{}, fmt.Errorf("aggregate: %w", err)
	}
	p.bus.Publish(CustomersAggregatedEvent{Customers: len(aggregates)})

	population, scores, err := derive(aggregates, config)
	if err != nil {
		return specs.CLTVReportSpec{}, fmt.Errorf("derive: %w", err)
	}
	p.bus.Publish(PopulationDerivedEvent{Population: population})

	segmented, err := segment(scores)
	if err != nil {
		return specs.CLTVReportSpec{}, fmt.Errorf("segment: %w", err)
	}

	summaries, err := summarize(segmented)
	if err != nil {
		return specs.CLTVReportSpec{}, fmt.Errorf("summarize: %w", err)
	}
	p.bus.Publish(CustomersSegmentedEvent{Summaries: summaries})

	return specs.CLTVReportSpec{
		Cleaning:   cleaning.ToSpec(),
		Population: population.ToSpec(),
		Customers:  scoresToSpecs(segmented),
	}, nil
}
