package spreadsheet

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

const header = "Run_Year,Run_Month,Month,Business_Area,Business_SubArea,Process_Name,Application,Machine_Name,Total_Executions,Successful_Executions,Exception_Executions,Manual_Hours_Saved,Cost_Savings_Dollars\n"

const sampleCSV = header +
	"2024,1,Jan,Finance,AP,Invoice Matching,SAP,BOT-01,120,110,10,40.5,\"$1,600.00\"\n" +
	"2024,2,Feb,HR,Payroll,Payroll Check,Workday,BOT-02,n/a,50,5,,800\n" +
	"2024,3,Mar,IT,Support,Password Reset,AD,BOT-03,400,380,20,66,(100)\n" +
	"\n" +
	"year?,3,Mar,IT,Support,Password Reset,AD,BOT-03,1,1,0,1,1\n" +
	"2024,13,,IT,Support,Password Reset,AD,BOT-03,1,1,0,1,1\n"

func TestParseRuns(t *testing.T) {
	table, err := Read(strings.NewReader(sampleCSV), "runs.csv", "")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	runs, skipped, err := ParseRuns(table)
	if err != nil {
		t.Fatalf("ParseRuns() error = %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("ParseRuns() returned %d runs, want 3", len(runs))
	}
	if len(skipped) != 2 || skipped[0].Line != 5 || skipped[1].Line != 6 {
		t.Errorf("skipped = %v, want lines 5 and 6", skipped)
	}

	r := runs[0]
	if r.Executions != 120 || r.Successful != 110 || r.Exceptions != 10 {
		t.Errorf("counts = %d/%d/%d", r.Executions, r.Successful, r.Exceptions)
	}
	if !r.Savings.Valid || !r.Savings.Decimal.Equal(decimal.NewFromInt(1600)) {
		t.Errorf("Savings = %v, want 1600", r.Savings)
	}
	if r.Date.String() != "2024-01-01" || r.Month != "Jan" {
		t.Errorf("Date, Month = %v, %q", r.Date, r.Month)
	}

	// non numeric count is zero, empty hours is missing
	if runs[1].Executions != 0 || runs[1].Hours.Valid {
		t.Errorf("coercion failed: executions %d, hours %v", runs[1].Executions, runs[1].Hours)
	}
	if !runs[2].Savings.Decimal.Equal(decimal.NewFromInt(-100)) {
		t.Errorf("accounting negative = %v, want -100", runs[2].Savings)
	}
}

func TestParseRuns_HeaderMatching(t *testing.T) {
	csv := " run year ,RUN_MONTH,business area,Business SubArea,process_name,application,machine name,total executions,Successful Executions,exception_executions,manual hours saved,cost savings dollars,Run_Date\n" +
		"2024,Feb,Finance,AP,Invoice,SAP,BOT,1,1,0,1,1,2024-02-15\n"
	table, err := Read(strings.NewReader(csv), "runs.csv", "")
	if err != nil {
		t.Fatal(err)
	}
	runs, _, err := ParseRuns(table)
	if err != nil {
		t.Fatalf("ParseRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("ParseRuns() returned %d runs, want 1", len(runs))
	}
	if runs[0].MonthNum != 2 || runs[0].Month != "Feb" || runs[0].Date.String() != "2024-02-15" {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestParseRuns_MissingColumns(t *testing.T) {
	csv := "Run_Year,Run_Month,Business_Area,Process_Name\n2024,1,Finance,X\n"
	table, err := Read(strings.NewReader(csv), "bad.csv", "")
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = ParseRuns(table)
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("ParseRuns() error = %v, want *MissingColumnsError", err)
	}
	want := []string{"Business_SubArea", "Application", "Machine_Name", "Total_Executions", "Successful_Executions", "Exception_Executions", "Manual_Hours_Saved", "Cost_Savings_Dollars"}
	if diff := cmp.Diff(want, missing.Columns); diff != "" {
		t.Errorf("missing columns mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(err.Error(), "bad.csv") || !strings.Contains(err.Error(), "Machine_Name") {
		t.Errorf("error message %q should name the file and the columns", err)
	}
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadFile() error = %v, want ErrNotFound", err)
	}
}

func TestRead_Unsupported(t *testing.T) {
	_, err := Read(strings.NewReader("x"), "runs.json", "")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Read() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader("\n,,\n"), "runs.csv", "")
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("Read() error = %v, want ErrEmpty", err)
	}
}

func TestReadRuns_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.csv")
	if err := os.WriteFile(path, []byte("\ufeff"+sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	runs, _, err := ReadRuns(path, "")
	if err != nil {
		t.Fatalf("ReadRuns() error = %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("ReadRuns() returned %d runs, want 3", len(runs))
	}
}

func TestCoercion(t *testing.T) {
	ints := map[string]int{"12": 12, "1,234": 1234, "12.0": 12, " 7 ": 7, "abc": 0, "": 0, "1.5": 0}
	for in, want := range ints {
		if got := Count(in); got != want {
			t.Errorf("Count(%q) = %d, want %d", in, got, want)
		}
	}
	decimals := map[string]string{"1.5": "1.5", "$2,000.25": "2000.25", "(3)": "-3", "-4": "-4"}
	for in, want := range decimals {
		got := Decimal(in)
		if !got.Valid || !got.Decimal.Equal(decimal.RequireFromString(want)) {
			t.Errorf("Decimal(%q) = %v, want %s", in, got, want)
		}
	}
	for _, in := range []string{"", "n/a", "#VALUE!"} {
		if got := Decimal(in); got.Valid {
			t.Errorf("Decimal(%q) = %v, want missing", in, got.Decimal)
		}
	}
}

func TestDate(t *testing.T) {
	tests := map[string]string{
		"2024-03-15": "2024-03-15",
		"3/15/2024":  "2024-03-15",
		"45366":      "2024-03-15", // spreadsheet serial number
	}
	for in, want := range tests {
		got, ok := Date(in)
		if !ok || got.String() != want {
			t.Errorf("Date(%q) = %v, %v, want %s", in, got, ok, want)
		}
	}
	if _, ok := Date("soon"); ok {
		t.Error(`Date("soon") should fail`)
	}
}
