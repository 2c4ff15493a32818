package spreadsheet

import (
	"strings"

	"github.com/etnz/rpametrics"
	"github.com/shopspring/decimal"
)

// category column candidates of the functional savings file.
var categoryColumns = []string{"Functional_Area", "Category", "Business_Area"}

// ParseSavings converts the table into functional savings. The category is
// read from a Functional_Area or Category column, or else the first column.
// Every column whose header names a fiscal year holds amounts. A "Total" row
// is ignored.
func ParseSavings(t *Table) (*rpametrics.FunctionalSavings, error) {
	cols := t.Columns()
	category := 0
	for _, name := range categoryColumns {
		if i := cols.Index(name); i >= 0 {
			category = i
			break
		}
	}

	var years []rpametrics.FiscalYear
	var yearCols []int
	for i, h := range t.Header {
		if i == category {
			continue
		}
		if fy, ok := rpametrics.ParseFiscalYear(h); ok {
			years = append(years, fy)
			yearCols = append(yearCols, i)
		}
	}
	if len(years) == 0 {
		return nil, &MissingColumnsError{File: t.Name, Columns: []string{"fiscal year (e.g. FY2024)"}}
	}

	var rows []rpametrics.SavingsRow
	for i := range t.Rows {
		name := t.Cell(i, category)
		if name == "" || strings.EqualFold(name, "total") {
			continue
		}
		row := rpametrics.SavingsRow{Category: name, Amounts: make([]decimal.NullDecimal, len(years))}
		for j, c := range yearCols {
			row.Amounts[j] = Decimal(t.Cell(i, c))
		}
		rows = append(rows, row)
	}
	return rpametrics.NewFunctionalSavings(years, rows)
}

// ReadSavings reads and parses the functional savings file at path.
func ReadSavings(path, sheet string) (*rpametrics.FunctionalSavings, error) {
	t, err := ReadFile(path, sheet)
	if err != nil {
		return nil, err
	}
	return ParseSavings(t)
}
