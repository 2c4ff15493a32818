package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/etnz/rpametrics"
	"github.com/xuri/excelize/v2"
)

func sampleRuns(t *testing.T) []rpametrics.Run {
	t.Helper()
	table, err := Read(strings.NewReader(sampleCSV), "runs.csv", "")
	if err != nil {
		t.Fatal(err)
	}
	runs, _, err := ParseRuns(table)
	if err != nil {
		t.Fatal(err)
	}
	return runs
}

// TestExport_RowCount checks that exports hold one header row plus one row
// per filtered run.
func TestExport_RowCount(t *testing.T) {
	runs := sampleRuns(t)
	for _, f := range []rpametrics.Filter{{}, {BusinessArea: "IT"}, {BusinessArea: "Nowhere"}} {
		filtered := f.Apply(runs)

		var buf bytes.Buffer
		if err := WriteCSV(&buf, filtered); err != nil {
			t.Fatalf("WriteCSV() error = %v", err)
		}
		records, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != len(filtered)+1 {
			t.Errorf("CSV export of %+v has %d records, want %d", f, len(records), len(filtered)+1)
		}

		buf.Reset()
		if err := WriteXLSX(&buf, filtered); err != nil {
			t.Fatalf("WriteXLSX() error = %v", err)
		}
		book, err := excelize.OpenReader(&buf)
		if err != nil {
			t.Fatal(err)
		}
		rows, err := book.GetRows(ExportSheet)
		if err != nil {
			t.Fatalf("GetRows(%q) error = %v", ExportSheet, err)
		}
		if len(rows) != len(filtered)+1 {
			t.Errorf("XLSX export of %+v has %d rows, want %d", f, len(rows), len(filtered)+1)
		}
		_ = book.Close()
	}
}

// TestExport_ReadBack checks that an export can be loaded again.
func TestExport_ReadBack(t *testing.T) {
	runs := sampleRuns(t)
	for _, format := range []Format{CSV, XLSX} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, format, runs); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			table, err := Read(&buf, "export."+string(format), "")
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			got, skipped, err := ParseRuns(table)
			if err != nil {
				t.Fatalf("ParseRuns() error = %v", err)
			}
			if len(got) != len(runs) || len(skipped) != 0 {
				t.Fatalf("read back %d runs (%d skipped), want %d", len(got), len(skipped), len(runs))
			}
			want, have := rpametrics.Sum(runs), rpametrics.Sum(got)
			if !want.Equal(have) {
				t.Errorf("read back totals = %+v, want %+v", have, want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	on := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	if got := CSV.FileName(on); got != "rpa_metrics_20240131.csv" {
		t.Errorf("CSV.FileName() = %q", got)
	}
	if got := XLSX.FileName(on); got != "rpa_metrics_20240131.xlsx" {
		t.Errorf("XLSX.FileName() = %q", got)
	}
	if f, err := ParseFormat(" XLSX "); err != nil || f != XLSX {
		t.Errorf("ParseFormat(XLSX) = %q, %v", f, err)
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("ParseFormat(pdf) should fail")
	}
}
