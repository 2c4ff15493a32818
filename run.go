package rpametrics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Run is one automation-run observation: the monthly activity of a process
// on a machine.
type Run struct {
	Year            int                 `json:"run_year"`
	MonthNum        int                 `json:"run_month"`
	Month           string              `json:"month"`
	Date            Date                `json:"run_date"`
	BusinessArea    string              `json:"business_area"`
	BusinessSubArea string              `json:"business_subarea"`
	Process         string              `json:"process_name"`
	Application     string              `json:"application"`
	Machine         string              `json:"machine_name"`
	Executions      int                 `json:"total_executions"`
	Successful      int                 `json:"successful_executions"`
	Exceptions      int                 `json:"exception_executions"`
	Hours           decimal.NullDecimal `json:"manual_hours_saved"`
	Savings         decimal.NullDecimal `json:"cost_savings_dollars"`
}

// Normalize fills the derived fields: the month name from the month number
// and the run date, which defaults to the first day of the run month.
func (r *Run) Normalize() {
	if r.Month == "" {
		r.Month = MonthAbbrev(time.Month(r.MonthNum))
	}
	if r.Date.IsZero() && r.Year > 0 && r.MonthNum > 0 {
		r.Date = NewDate(r.Year, time.Month(r.MonthNum), 1)
	}
}

// Quarter returns the quarter of the run month, in [1..4].
func (r Run) Quarter() int { return (r.MonthNum-1)/3 + 1 }

// YearQuarter returns the quarter label, e.g. "2024 Q1".
func (r Run) YearQuarter() string { return fmt.Sprintf("%d Q%d", r.Year, r.Quarter()) }

// YearMonth returns the month label, e.g. "2024-Jan".
func (r Run) YearMonth() string { return fmt.Sprintf("%d-%s", r.Year, r.Month) }

// Week returns the ISO week of the run date.
func (r Run) Week() int {
	_, w := r.Date.ISOWeek()
	return w
}

// HoursValue returns the hours saved, 0 when missing.
func (r Run) HoursValue() decimal.Decimal {
	if !r.Hours.Valid {
		return decimal.Zero
	}
	return r.Hours.Decimal
}

// SavingsValue returns the cost savings, 0 when missing.
func (r Run) SavingsValue() decimal.Decimal {
	if !r.Savings.Valid {
		return decimal.Zero
	}
	return r.Savings.Decimal
}
