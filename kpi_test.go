package rpametrics

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeKPIs(t *testing.T) {
	got := ComputeKPIs(sampleRuns(), "USD")
	if got.Executions != 1170 {
		t.Errorf("Executions = %d, want 1170", got.Executions)
	}
	if want := decimal.RequireFromString("301.1"); !got.Hours.Equal(want) {
		t.Errorf("Hours = %v, want %v", got.Hours, want)
	}
	if want := USD(8580.5); !got.Savings.Equal(want) {
		t.Errorf("Savings = %v, want %v", got.Savings, want)
	}
	if want := Ratio(1116, 1170); !got.SuccessRate.Equal(want) {
		t.Errorf("SuccessRate = %v, want %v", got.SuccessRate, want)
	}
	if got.ActiveProcesses != 6 {
		t.Errorf("ActiveProcesses = %d, want 6", got.ActiveProcesses)
	}
}

// TestComputeKPIs_Empty checks that an empty selection gives zero valued
// metrics rather than an error or a division by zero.
func TestComputeKPIs_Empty(t *testing.T) {
	runs := Filter{BusinessArea: "Nowhere"}.Apply(sampleRuns())
	got := ComputeKPIs(runs, "USD")
	if got.Executions != 0 || !got.Hours.IsZero() || !got.Savings.IsZero() || got.SuccessRate != 0 || got.ActiveProcesses != 0 {
		t.Errorf("ComputeKPIs(empty) = %+v, want zero values", got)
	}
	s := Summarize(runs, "USD")
	if s.Rows != 0 || !s.AvgHourlyRate.IsZero() || s.Processes != 0 || s.BusinessAreas != 0 {
		t.Errorf("Summarize(empty) = %+v, want zero values", s)
	}
	if s.Period() != "-" {
		t.Errorf("Summarize(empty).Period() = %q, want %q", s.Period(), "-")
	}
}

func TestSummarize(t *testing.T) {
	runs := []Run{
		run(2024, 3, "IT", "A", "M", 10, 10, "10", "500"),
		run(2023, 11, "HR", "B", "M", 10, 10, "30", "700"),
	}
	got := Summarize(runs, "USD")
	if got.From != NewDate(2023, 11, 1) || got.To != NewDate(2024, 3, 1) {
		t.Errorf("Summarize() range = %v..%v, want 2023-11-01..2024-03-01", got.From, got.To)
	}
	if got.Period() != "November 2023 to March 2024" {
		t.Errorf("Period() = %q", got.Period())
	}
	if want := USD(30); !got.AvgHourlyRate.Equal(want) {
		t.Errorf("AvgHourlyRate = %v, want %v", got.AvgHourlyRate, want)
	}
	if got.Processes != 2 || got.BusinessAreas != 2 {
		t.Errorf("Processes, BusinessAreas = %d, %d, want 2, 2", got.Processes, got.BusinessAreas)
	}
}

func TestSummarize_NoHours(t *testing.T) {
	runs := []Run{run(2024, 3, "IT", "A", "M", 10, 10, "", "500")}
	if got := Summarize(runs, "USD").AvgHourlyRate; !got.IsZero() {
		t.Errorf("AvgHourlyRate without hours = %v, want 0", got)
	}
}
