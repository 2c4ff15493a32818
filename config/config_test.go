package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(`
addr: ":9000"
data_file: data/runs.csv
savings_file: data/savings.xlsx
cache_ttl: 90s
top_n: 5
sql:
  driver: sqlite
  dsn: file:runs.db
`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := Default()
	want.Addr = ":9000"
	want.DataFile = "data/runs.csv"
	want.SavingsFile = "data/savings.xlsx"
	want.CacheTTL = Duration(90 * time.Second)
	want.TopN = 5
	want.SQL = SQL{Driver: "sqlite", DSN: "file:runs.db", Table: "rpa_metrics"}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
	if !c.SQL.Enabled() {
		t.Error("SQL.Enabled() = false with a dsn")
	}
}

func TestDecode_Empty(t *testing.T) {
	c, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode(empty) error = %v", err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Errorf("Decode(empty) mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown field":  "port: 80\n",
		"bad duration":   "cache_ttl: soon\n",
		"bad driver":     "sql:\n  driver: oracle\n  dsn: x\n",
		"no source":      "data_file: \"\"\n",
		"zero top":       "top_n: 0\n",
		"malformed yaml": "addr: [\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(doc)); err == nil {
				t.Errorf("Decode(%q) should fail", doc)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	if err != nil || c.Addr != ":8050" {
		t.Errorf("Load(\"\") = %v, %v, want defaults", c, err)
	}

	path := filepath.Join(t.TempDir(), "rpa.yaml")
	if err := os.WriteFile(path, []byte("currency: EUR\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", c.Currency)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) should fail")
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "cache_ttl: 5m0s") {
		t.Errorf("Encode() = %s, want a readable duration", buf.String())
	}
	c, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Errorf("Encode() did not round trip (-want +got):\n%s", diff)
	}
}
