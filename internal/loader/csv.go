package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chrisconley/cltv/specs"
)

// LoadCSV reads a comma-separated file with a header row.
func LoadCSV(path string) ([]specs.TransactionRowSpec, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	rows, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// ReadCSV reads CSV rows from r. Rows may have fewer cells than the header;
// missing cells read as empty. Blank lines are skipped.
func ReadCSV(r io.Reader) ([]specs.TransactionRowSpec, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index, err := newColumnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []specs.TransactionRowSpec
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		if isBlank(record) {
			continue
		}
		rows = append(rows, index.row(record))
	}

	return rows, nil
}
