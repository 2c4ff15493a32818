package rpametrics

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPIs are the headline metrics of the dashboard.
type KPIs struct {
	Executions      int             `json:"total_executions"`
	Hours           decimal.Decimal `json:"hours_saved"`
	Savings         Money           `json:"cost_savings"`
	SuccessRate     Percent         `json:"success_rate"`
	ActiveProcesses int             `json:"active_processes"`
}

// ComputeKPIs computes the headline metrics of the runs. No runs give zero
// valued metrics.
func ComputeKPIs(runs []Run, currency string) KPIs {
	t := Sum(runs)
	return KPIs{
		Executions:      t.Executions,
		Hours:           t.Hours,
		Savings:         M(t.Savings, currency),
		SuccessRate:     t.SuccessRate(),
		ActiveProcesses: countDistinct(runs, func(r Run) string { return r.Process }),
	}
}

// Summary describes the extent of the filtered data.
type Summary struct {
	Rows          int   `json:"rows"`
	From          Date  `json:"from"`
	To            Date  `json:"to"`
	AvgHourlyRate Money `json:"avg_hourly_rate"`
	Processes     int   `json:"unique_processes"`
	BusinessAreas int   `json:"business_areas"`
}

// Period returns the data period as "January 2024 to March 2024".
func (s Summary) Period() string {
	if s.From.IsZero() {
		return "-"
	}
	return s.From.Format("January 2006") + " to " + s.To.Format("January 2006")
}

// Summarize computes the data summary of the runs. The average hourly rate is
// savings per hour saved, 0 when no hours were saved.
func Summarize(runs []Run, currency string) Summary {
	s := Summary{
		Rows:          len(runs),
		AvgHourlyRate: M(0, currency),
		Processes:     countDistinct(runs, func(r Run) string { return r.Process }),
		BusinessAreas: countDistinct(runs, func(r Run) string { return r.BusinessArea }),
	}
	for _, r := range runs {
		month := NewDate(r.Year, time.Month(r.MonthNum), 1)
		if s.From.IsZero() || month.Before(s.From) {
			s.From = month
		}
		if s.To.IsZero() || month.After(s.To) {
			s.To = month
		}
	}
	t := Sum(runs)
	if !t.Hours.IsZero() {
		s.AvgHourlyRate = M(t.Savings.Div(t.Hours), currency)
	}
	return s
}

func countDistinct(runs []Run, key func(Run) string) int {
	seen := map[string]bool{}
	for _, r := range runs {
		seen[key(r)] = true
	}
	return len(seen)
}
