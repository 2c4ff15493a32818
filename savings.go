package rpametrics

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FiscalYear identifies a savings column of the functional savings file.
type FiscalYear struct {
	Label string // header as found in the file
	Start int    // calendar year the fiscal year starts in
}

func (f FiscalYear) String() string { return f.Label }

var fiscalYearRe = regexp.MustCompile(`^(?i)(?:FY\s*)?(\d{2}|\d{4})(?:\s*[-/]\s*(\d{2}|\d{4}))?$`)

// ParseFiscalYear recognizes a fiscal-year header such as "FY23", "FY 2023",
// "FY2023-24" or "2023". Bare two digit numbers need the FY prefix.
func ParseFiscalYear(header string) (FiscalYear, bool) {
	h := strings.TrimSpace(strings.ReplaceAll(header, "_", " "))
	m := fiscalYearRe.FindStringSubmatch(h)
	if m == nil {
		return FiscalYear{}, false
	}
	hasPrefix := strings.HasPrefix(strings.ToUpper(h), "FY")
	if len(m[1]) == 2 && !hasPrefix {
		return FiscalYear{}, false
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return FiscalYear{}, false
	}
	if y < 100 {
		y += 2000
	}
	return FiscalYear{Label: strings.TrimSpace(header), Start: y}, true
}

// SavingsRow is the savings of one functional area, one amount per fiscal year.
type SavingsRow struct {
	Category string                `json:"category"`
	Amounts  []decimal.NullDecimal `json:"amounts"`
}

// Total returns the savings of the category across all fiscal years.
func (r SavingsRow) Total() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Amounts {
		if a.Valid {
			total = total.Add(a.Decimal)
		}
	}
	return total
}

// At returns the amount for the i-th fiscal year, 0 when missing.
func (r SavingsRow) At(i int) decimal.Decimal {
	if i < 0 || i >= len(r.Amounts) || !r.Amounts[i].Valid {
		return decimal.Zero
	}
	return r.Amounts[i].Decimal
}

// FunctionalSavings is the content of the optional functional-area savings file.
type FunctionalSavings struct {
	Years []FiscalYear `json:"years"`
	Rows  []SavingsRow `json:"rows"`
}

// NewFunctionalSavings builds the table and orders the fiscal-year columns
// chronologically. Every row must have one amount per fiscal year.
func NewFunctionalSavings(years []FiscalYear, rows []SavingsRow) (*FunctionalSavings, error) {
	for _, r := range rows {
		if len(r.Amounts) != len(years) {
			return nil, fmt.Errorf("category %q has %d amounts for %d fiscal years", r.Category, len(r.Amounts), len(years))
		}
	}
	order := make([]int, len(years))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return years[a].Start - years[b].Start })

	fs := &FunctionalSavings{Years: make([]FiscalYear, len(years))}
	for i, o := range order {
		fs.Years[i] = years[o]
	}
	for _, r := range rows {
		nr := SavingsRow{Category: r.Category, Amounts: make([]decimal.NullDecimal, len(years))}
		for i, o := range order {
			nr.Amounts[i] = r.Amounts[o]
		}
		fs.Rows = append(fs.Rows, nr)
	}
	return fs, nil
}

// YearTotals returns the total savings per fiscal year, aligned with Years.
func (fs *FunctionalSavings) YearTotals() []decimal.Decimal {
	totals := make([]decimal.Decimal, len(fs.Years))
	for i := range totals {
		totals[i] = decimal.Zero
		for _, r := range fs.Rows {
			totals[i] = totals[i].Add(r.At(i))
		}
	}
	return totals
}

// Ranked returns the categories ordered by savings in the latest fiscal year,
// highest first.
func (fs *FunctionalSavings) Ranked() []SavingsRow {
	rows := slices.Clone(fs.Rows)
	last := len(fs.Years) - 1
	slices.SortStableFunc(rows, func(a, b SavingsRow) int {
		if c := b.At(last).Cmp(a.At(last)); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return rows
}

// Growth returns the year-over-year growth of the total savings. Element i is
// the growth from Years[i] to Years[i+1], 0 when the previous total is 0.
func (fs *FunctionalSavings) Growth() []Percent {
	totals := fs.YearTotals()
	if len(totals) < 2 {
		return nil
	}
	growth := make([]Percent, len(totals)-1)
	for i := 1; i < len(totals); i++ {
		prev := totals[i-1]
		if prev.IsZero() {
			continue
		}
		g, _ := totals[i].Sub(prev).Div(prev.Abs()).Mul(decimal.NewFromInt(100)).Float64()
		growth[i-1] = Percent(g)
	}
	return growth
}
