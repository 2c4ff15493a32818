package rpametrics

import (
	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// dec is a helper for test to create a valid nullable decimal from a string.
func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// run is a helper for test to create a normalized Run.
func run(year, month int, area, process, machine string, executions, successful int, hours, savings string) Run {
	r := Run{
		Year:            year,
		MonthNum:        month,
		BusinessArea:    area,
		BusinessSubArea: area + " Ops",
		Process:         process,
		Application:     process + " App",
		Machine:         machine,
		Executions:      executions,
		Successful:      successful,
		Exceptions:      executions - successful,
	}
	if hours != "" {
		r.Hours = dec(hours)
	}
	if savings != "" {
		r.Savings = dec(savings)
	}
	r.Normalize()
	return r
}

// sampleRuns is a small dataset covering two years, three areas and a few
// missing values.
func sampleRuns() []Run {
	return []Run{
		run(2023, 11, "Finance", "Invoice Matching", "BOT-01", 120, 110, "40", "1600"),
		run(2023, 12, "Finance", "Invoice Matching", "BOT-01", 130, 125, "42.5", "1700"),
		run(2024, 1, "Finance", "Invoice Matching", "BOT-02", 140, 135, "45", "1800"),
		run(2024, 1, "Finance", "Vendor Onboarding", "BOT-02", 30, 28, "12", "480.50"),
		run(2024, 2, "HR", "Payroll Check", "BOT-03", 60, 54, "20", "800"),
		run(2024, 2, "HR", "Leave Requests", "BOT-03", 90, 90, "", "300"),
		run(2024, 3, "IT", "Password Reset", "BOT-01", 400, 380, "66.6", ""),
		run(2024, 3, "IT", "Account Provisioning", "BOT-04", 50, 45, "25", "-100"),
		run(2024, 4, "Finance", "Invoice Matching", "BOT-01", 150, 149, "50", "2000"),
	}
}
