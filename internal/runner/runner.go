// Package runner executes one CLTV batch job: load the input table, run the
// pipeline, write the results.
package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/chrisconley/cltv/internal"
	"github.com/chrisconley/cltv/internal/config"
	"github.com/chrisconley/cltv/internal/infra"
	"github.com/chrisconley/cltv/internal/loader"
	"github.com/chrisconley/cltv/internal/report"
	"github.com/chrisconley/cltv/specs"
)

// RowsLoadedEvent announces the raw input of a run.
type RowsLoadedEvent struct {
	Source string
	Rows   int
}

func (e RowsLoadedEvent) EventType() infra.EventType {
	return infra.RowsLoaded
}

// Result describes a completed run.
type Result struct {
	RunID     string
	Report    specs.CLTVReportSpec
	Summaries []specs.SegmentSummarySpec
}

// Run executes the job described by settings. Every stage failure is
// terminal; no output file is written unless the pipeline succeeded.
func Run(ctx context.Context, settings *config.Settings) (*Result, error) {
	if err := InitLogger(settings.LogLevel); err != nil {
		return nil, fmt.Errorf("log level %q: %w", settings.LogLevel, err)
	}

	runID := uuid.NewString()
	bus := infra.NewBus()
	subscribeLogging(bus, runID)

	rows, err := loader.Load(settings.Input.Path, settings.Input.Sheet)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	bus.Publish(RowsLoadedEvent{Source: settings.Input.Path, Rows: len(rows)})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cltvReport, err := internal.NewPipeline(bus).Run(rows, settings.CLTVConfig())
	if err != nil {
		log.Errorf("[%s] pipeline failed: %v", runID, err)
		return nil, err
	}

	summaries, err := internal.SummarizeSegments(cltvReport.Customers)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := writeOutputs(settings.Output, cltvReport, summaries); err != nil {
		return nil, err
	}
	log.Infof("[%s] wrote %d customers to %s", runID, len(cltvReport.Customers), settings.Output.Path)

	return &Result{RunID: runID, Report: cltvReport, Summaries: summaries}, nil
}

func writeOutputs(output config.OutputSettings, cltvReport specs.CLTVReportSpec, summaries []specs.SegmentSummarySpec) error {
	var write func(io.Writer) error
	switch output.Format {
	case config.FormatJSON:
		write = func(w io.Writer) error { return report.WriteJSON(w, cltvReport) }
	default:
		write = func(w io.Writer) error { return report.WriteCSV(w, cltvReport.Customers) }
	}
	if err := report.ExportFile(output.Path, write); err != nil {
		return fmt.Errorf("export %s: %w", output.Path, err)
	}

	if output.SummaryPath != "" {
		err := report.ExportFile(output.SummaryPath, func(w io.Writer) error {
			return report.WriteSummaryYAML(w, summaries)
		})
		if err != nil {
			return fmt.Errorf("export %s: %w", output.SummaryPath, err)
		}
	}
	return nil
}

func subscribeLogging(bus *infra.Bus, runID string) {
	bus.Subscribe(infra.RowsLoaded, func(e infra.Event) {
		loaded := e.(RowsLoadedEvent)
		log.Infof("[%s] loaded %d rows from %s", runID, loaded.Rows, loaded.Source)
	})

	bus.Subscribe(infra.RowsCleaned, func(e infra.Event) {
		r := e.(internal.RowsCleanedEvent).Report
		log.Infof("[%s] retained %d of %d rows", runID, r.Retained, r.Input)
		log.Debugf("[%s] dropped %d rows: cancelled=%d incomplete=%d non-positive=%d malformed=%d",
			runID, r.Dropped(), r.Cancelled, r.Incomplete, r.NonPositiveQuantity, r.Malformed)
	})

	bus.Subscribe(infra.CustomersAggregated, func(e infra.Event) {
		log.Infof("[%s] aggregated %d customers", runID, e.(internal.CustomersAggregatedEvent).Customers)
	})

	bus.Subscribe(infra.PopulationDerived, func(e infra.Event) {
		p := e.(internal.PopulationDerivedEvent).Population
		log.Infof("[%s] population: customers=%d repeat_rate=%s churn_rate=%s",
			runID, p.CustomerCount(), p.RepeatRate(), p.ChurnRate())
	})

	bus.Subscribe(infra.CustomersSegmented, func(e infra.Event) {
		for _, s := range e.(internal.CustomersSegmentedEvent).Summaries {
			log.Debugf("[%s] segment %s: customers=%d mean_cltv=%s",
				runID, s.Segment.ToString(), s.Customers, s.CLTV.Mean)
		}
	})
}
