// Package report writes CLTV results: the customer table as CSV or JSON and
// the segment summary as YAML.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/chrisconley/cltv/specs"
)

// Header is the column order of the CSV customer table.
var Header = []string{
	"customer_id",
	"total_transactions",
	"total_units",
	"total_revenue",
	"average_order_value",
	"purchase_frequency",
	"profit_margin",
	"customer_value",
	"cltv",
	"segment",
}

// WriteCSV writes one row per customer, in the given order, after a header.
func WriteCSV(w io.Writer, customers []specs.CustomerScoreSpec) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, c := range customers {
		record := []string{
			c.CustomerID,
			strconv.Itoa(c.TotalTransactions),
			strconv.FormatInt(c.TotalUnits, 10),
			c.TotalRevenue,
			c.AverageOrderValue,
			c.PurchaseFrequency,
			c.ProfitMargin,
			c.CustomerValue,
			c.CLTV,
			c.Segment,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write customer %s: %w", c.CustomerID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the whole report as indented JSON.
func WriteJSON(w io.Writer, report specs.CLTVReportSpec) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// WriteSummaryYAML writes the segment summaries as a YAML document.
func WriteSummaryYAML(w io.Writer, summaries []specs.SegmentSummarySpec) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(struct {
		Segments []specs.SegmentSummarySpec `yaml:"segments"`
	}{Segments: summaries}); err != nil {
		return fmt.Errorf("failed to write YAML: %w", err)
	}
	return enc.Close()
}

// ExportFile creates path, including missing parent directories, and hands
// it to write.
func ExportFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
