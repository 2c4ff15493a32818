package rpametrics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestParseFiscalYear(t *testing.T) {
	tests := []struct {
		header string
		start  int
		ok     bool
	}{
		{"FY23", 2023, true},
		{"fy23", 2023, true},
		{"FY 2023", 2023, true},
		{"FY_2023", 2023, true},
		{"FY2023-24", 2023, true},
		{"FY23/24", 2023, true},
		{"2023", 2023, true},
		{"23", 0, false},
		{"Category", 0, false},
		{"Total", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := ParseFiscalYear(tt.header)
			if ok != tt.ok {
				t.Fatalf("ParseFiscalYear(%q) ok = %v, want %v", tt.header, ok, tt.ok)
			}
			if ok && got.Start != tt.start {
				t.Errorf("ParseFiscalYear(%q).Start = %d, want %d", tt.header, got.Start, tt.start)
			}
		})
	}
}

func sampleSavings(t *testing.T) *FunctionalSavings {
	t.Helper()
	years := []FiscalYear{{"FY24", 2024}, {"FY22", 2022}, {"FY23", 2023}}
	rows := []SavingsRow{
		{Category: "Finance", Amounts: []decimal.NullDecimal{dec("300"), dec("100"), dec("200")}},
		{Category: "HR", Amounts: []decimal.NullDecimal{dec("50"), {}, dec("25")}},
		{Category: "IT", Amounts: []decimal.NullDecimal{dec("400"), dec("100"), {}}},
	}
	fs, err := NewFunctionalSavings(years, rows)
	if err != nil {
		t.Fatalf("NewFunctionalSavings() error = %v", err)
	}
	return fs
}

func TestFunctionalSavings(t *testing.T) {
	fs := sampleSavings(t)

	var years []string
	for _, y := range fs.Years {
		years = append(years, y.String())
	}
	if diff := cmp.Diff([]string{"FY22", "FY23", "FY24"}, years); diff != "" {
		t.Errorf("Years not chronological (-want +got):\n%s", diff)
	}

	totals := fs.YearTotals()
	for i, want := range []int64{200, 225, 750} {
		if !totals[i].Equal(decimal.NewFromInt(want)) {
			t.Errorf("YearTotals()[%d] = %v, want %d", i, totals[i], want)
		}
	}

	if got := fs.Rows[0].Total(); !got.Equal(decimal.NewFromInt(600)) {
		t.Errorf("Finance Total() = %v, want 600", got)
	}

	var ranked []string
	for _, r := range fs.Ranked() {
		ranked = append(ranked, r.Category)
	}
	if diff := cmp.Diff([]string{"IT", "Finance", "HR"}, ranked); diff != "" {
		t.Errorf("Ranked() mismatch (-want +got):\n%s", diff)
	}

	growth := fs.Growth()
	if len(growth) != 2 || !growth[0].Equal(12.5) || !growth[1].Equal(Percent(525.0/225.0*100)) {
		t.Errorf("Growth() = %v, want [12.5%% 233.3%%]", growth)
	}
}

func TestNewFunctionalSavings_Mismatch(t *testing.T) {
	_, err := NewFunctionalSavings([]FiscalYear{{"FY23", 2023}}, []SavingsRow{{Category: "X"}})
	if err == nil {
		t.Error("NewFunctionalSavings() with missing amounts should fail")
	}
}
