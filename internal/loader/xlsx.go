package loader

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/chrisconley/cltv/specs"
)

const invoiceDateLayout = "2006-01-02 15:04:05"

// LoadXLSX reads one worksheet of an Excel workbook.
func LoadXLSX(path, sheet string) ([]specs.TransactionRowSpec, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := readWorkbook(f, sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// ReadXLSX reads one worksheet of the workbook in r.
func ReadXLSX(r io.Reader, sheet string) ([]specs.TransactionRowSpec, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return readWorkbook(f, sheet)
}

func readWorkbook(f *excelize.File, sheet string) ([]specs.TransactionRowSpec, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	// Raw values keep numbers unformatted; dates come back as serials.
	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet %q: no header row", sheet)
	}

	index, err := newColumnIndex(records[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	rows := make([]specs.TransactionRowSpec, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		row := index.row(record)
		row.InvoiceDate = serialToTimestamp(row.InvoiceDate)
		rows = append(rows, row)
	}
	return rows, nil
}

// serialToTimestamp renders an Excel date serial as a timestamp. Anything
// that is not a serial is returned unchanged.
func serialToTimestamp(value string) string {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}
	return t.Round(time.Second).Format(invoiceDateLayout)
}
