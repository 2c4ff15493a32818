package spreadsheet

import (
	"strings"
)

// Column names of the automation-run file.
const (
	ColYear            = "Run_Year"
	ColMonthNum        = "Run_Month"
	ColMonth           = "Month"
	ColDate            = "Run_Date"
	ColBusinessArea    = "Business_Area"
	ColBusinessSubArea = "Business_SubArea"
	ColProcess         = "Process_Name"
	ColApplication     = "Application"
	ColMachine         = "Machine_Name"
	ColExecutions      = "Total_Executions"
	ColSuccessful      = "Successful_Executions"
	ColExceptions      = "Exception_Executions"
	ColHours           = "Manual_Hours_Saved"
	ColSavings         = "Cost_Savings_Dollars"
)

// RequiredColumns must all be present in the run file.
var RequiredColumns = []string{
	ColYear, ColMonthNum,
	ColBusinessArea, ColBusinessSubArea, ColProcess, ColApplication, ColMachine,
	ColExecutions, ColSuccessful, ColExceptions,
	ColHours, ColSavings,
}

// OptionalColumns are derived when absent.
var OptionalColumns = []string{ColMonth, ColDate}

// normalize folds a header for matching: case, blanks and underscores are ignored.
func normalize(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.ReplaceAll(h, "_", "")
	h = strings.ReplaceAll(h, " ", "")
	return h
}

// Columns maps normalized header names to their index.
type Columns map[string]int

// Columns indexes the header of the table. The first occurrence of a header wins.
func (t *Table) Columns() Columns {
	c := Columns{}
	for i, h := range t.Header {
		k := normalize(h)
		if _, ok := c[k]; !ok && k != "" {
			c[k] = i
		}
	}
	return c
}

// Index returns the index of the named column, -1 when absent.
func (c Columns) Index(name string) int {
	if i, ok := c[normalize(name)]; ok {
		return i
	}
	return -1
}

// Has reports whether the named column exists.
func (c Columns) Has(name string) bool { return c.Index(name) >= 0 }

// Validate checks that every required column is present. The error is a
// *MissingColumnsError listing all the absent ones, in the required order.
func (t *Table) Validate(required []string) error {
	cols := t.Columns()
	var missing []string
	for _, name := range required {
		if !cols.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{File: t.Name, Columns: missing}
	}
	return nil
}
