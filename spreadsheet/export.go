package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/rpametrics"
	"github.com/xuri/excelize/v2"
)

// ExportSheet is the name of the worksheet of XLSX exports.
const ExportSheet = "RPA Metrics"

// Format is an export file format.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// ParseFormat parses "csv" or "xlsx", case insensitive.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, XLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q, want csv or xlsx", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// FileName returns the export file name for the day, e.g. rpa_metrics_20240131.csv.
func (f Format) FileName(on time.Time) string {
	return fmt.Sprintf("rpa_metrics_%s.%s", on.Format("20060102"), f)
}

// ExportColumns are the columns of an export: the source columns followed by
// the derived ones.
var ExportColumns = []string{
	ColYear, ColMonthNum, ColMonth, ColDate,
	ColBusinessArea, ColBusinessSubArea, ColProcess, ColApplication, ColMachine,
	ColExecutions, ColSuccessful, ColExceptions, ColHours, ColSavings,
	"Quarter", "Year_Quarter", "Year_Month", "Week",
}

func record(r rpametrics.Run) []string {
	nullable := func(v interface{ String() string }, valid bool) string {
		if !valid {
			return ""
		}
		return v.String()
	}
	return []string{
		strconv.Itoa(r.Year), strconv.Itoa(r.MonthNum), r.Month, r.Date.String(),
		r.BusinessArea, r.BusinessSubArea, r.Process, r.Application, r.Machine,
		strconv.Itoa(r.Executions), strconv.Itoa(r.Successful), strconv.Itoa(r.Exceptions),
		nullable(r.Hours.Decimal, r.Hours.Valid), nullable(r.Savings.Decimal, r.Savings.Valid),
		strconv.Itoa(r.Quarter()), r.YearQuarter(), r.YearMonth(), strconv.Itoa(r.Week()),
	}
}

// WriteCSV writes the header and one line per run.
func WriteCSV(w io.Writer, runs []rpametrics.Run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return err
	}
	for _, r := range runs {
		if err := cw.Write(record(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with a single ExportSheet sheet: the header
// and one row per run. Numbers are written as numbers.
func WriteXLSX(w io.Writer, runs []rpametrics.Run) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return err
	}
	for i, header := range ExportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ExportSheet, cell, header); err != nil {
			return err
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(ExportSheet, col, col, 18); err != nil {
			return err
		}
	}
	for row, r := range runs {
		values := []any{
			r.Year, r.MonthNum, r.Month, r.Date.String(),
			r.BusinessArea, r.BusinessSubArea, r.Process, r.Application, r.Machine,
			r.Executions, r.Successful, r.Exceptions, "", "",
			r.Quarter(), r.YearQuarter(), r.YearMonth(), r.Week(),
		}
		if r.Hours.Valid {
			values[12] = r.Hours.Decimal.InexactFloat64()
		}
		if r.Savings.Valid {
			values[13] = r.Savings.Decimal.InexactFloat64()
		}
		cell, _ := excelize.CoordinatesToCellName(1, row+2)
		if err := f.SetSheetRow(ExportSheet, cell, &values); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// Write writes the runs in the given format.
func Write(w io.Writer, format Format, runs []rpametrics.Run) error {
	switch format {
	case CSV:
		return WriteCSV(w, runs)
	case XLSX:
		return WriteXLSX(w, runs)
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}
