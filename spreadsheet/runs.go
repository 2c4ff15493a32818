package spreadsheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/rpametrics"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// RowIssue is a data row that could not be read as is. Skipped rows could not
// be placed in time, the others were kept with a default value.
type RowIssue struct {
	Line    int // 1-based line in the sheet, the header is line 1
	Reason  string
	Skipped bool
}

func (s RowIssue) String() string {
	if s.Skipped {
		return fmt.Sprintf("line %d: %s, row skipped", s.Line, s.Reason)
	}
	return fmt.Sprintf("line %d: %s", s.Line, s.Reason)
}

// ParseRuns converts the table into runs. Numeric cells are coerced: counts
// that are not numbers count as zero, hours and savings that are not numbers
// are missing. Rows without a valid year and month are skipped and reported.
// A Run_Date that is not a date is reported and the run is dated on the first
// day of its month.
func ParseRuns(t *Table) ([]rpametrics.Run, []RowIssue, error) {
	if err := t.Validate(RequiredColumns); err != nil {
		return nil, nil, err
	}
	cols := t.Columns()
	idx := func(name string) int { return cols.Index(name) }
	var (
		iYear, iMonthNum, iMonth, iDate = idx(ColYear), idx(ColMonthNum), idx(ColMonth), idx(ColDate)
		iArea, iSubArea, iProcess       = idx(ColBusinessArea), idx(ColBusinessSubArea), idx(ColProcess)
		iApp, iMachine                  = idx(ColApplication), idx(ColMachine)
		iExec, iSucc, iExc              = idx(ColExecutions), idx(ColSuccessful), idx(ColExceptions)
		iHours, iSavings                = idx(ColHours), idx(ColSavings)
	)

	runs := make([]rpametrics.Run, 0, len(t.Rows))
	var issues []RowIssue
	for i := range t.Rows {
		line := i + 2
		year, ok := Int(t.Cell(i, iYear))
		if !ok || year <= 0 {
			issues = append(issues, RowIssue{line, fmt.Sprintf("invalid %s %q", ColYear, t.Cell(i, iYear)), true})
			continue
		}
		month, err := rpametrics.ParseMonth(t.Cell(i, iMonthNum))
		if err != nil {
			issues = append(issues, RowIssue{line, fmt.Sprintf("invalid %s %q", ColMonthNum, t.Cell(i, iMonthNum)), true})
			continue
		}
		r := rpametrics.Run{
			Year:            year,
			MonthNum:        int(month),
			Month:           t.Cell(i, iMonth),
			BusinessArea:    t.Cell(i, iArea),
			BusinessSubArea: t.Cell(i, iSubArea),
			Process:         t.Cell(i, iProcess),
			Application:     t.Cell(i, iApp),
			Machine:         t.Cell(i, iMachine),
			Executions:      Count(t.Cell(i, iExec)),
			Successful:      Count(t.Cell(i, iSucc)),
			Exceptions:      Count(t.Cell(i, iExc)),
			Hours:           Decimal(t.Cell(i, iHours)),
			Savings:         Decimal(t.Cell(i, iSavings)),
		}
		// the month name always follows the month number.
		if m, err := rpametrics.ParseMonth(r.Month); err != nil || int(m) != r.MonthNum {
			r.Month = ""
		} else {
			r.Month = rpametrics.MonthAbbrev(m)
		}
		if cell := t.Cell(i, iDate); cell != "" {
			if d, ok := Date(cell); ok {
				r.Date = d
			} else {
				issues = append(issues, RowIssue{Line: line, Reason: fmt.Sprintf("invalid %s %q, dated on the first of the month", ColDate, cell)})
			}
		}
		r.Normalize()
		runs = append(runs, r)
	}
	return runs, issues, nil
}

// ReadRuns reads and parses the run file at path.
func ReadRuns(path, sheet string) ([]rpametrics.Run, []RowIssue, error) {
	t, err := ReadFile(path, sheet)
	if err != nil {
		return nil, nil, err
	}
	return ParseRuns(t)
}

// cleanNumber removes currency symbols, thousand separators and blanks.
// Accounting negatives "(100)" become "-100".
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if neg {
		s = s[1 : len(s)-1]
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ', '\u00a0':
			return -1
		}
		return r
	}, s)
	if neg {
		s = "-" + s
	}
	return s
}

// Int parses a whole number, accepting "1,234" and "12.0".
func Int(s string) (int, bool) {
	s = cleanNumber(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0, false
	}
	return int(d.IntPart()), true
}

// Count parses an execution count. Anything that is not a number counts as 0.
func Count(s string) int {
	n, _ := Int(s)
	return n
}

// Decimal parses an amount. Anything that is not a number is missing.
func Decimal(s string) decimal.NullDecimal {
	s = cleanNumber(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// Date parses a cell as a date. Spreadsheet serial numbers are accepted.
func Date(s string) (rpametrics.Date, bool) {
	if s == "" {
		return rpametrics.Date{}, false
	}
	if d, err := rpametrics.ParseDate(s); err == nil {
		return d, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		if t, err := excelize.ExcelDateToTime(f, false); err == nil {
			return rpametrics.NewDate(t.Date()), true
		}
	}
	return rpametrics.Date{}, false
}
