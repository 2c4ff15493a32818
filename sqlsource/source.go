// Package sqlsource loads automation runs from a SQL table instead of a
// spreadsheet. The table has the same columns as the run file.
package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/etnz/rpametrics"
	"github.com/etnz/rpametrics/spreadsheet"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DefaultTable is the table read when none is configured.
const DefaultTable = "rpa_metrics"

var tableRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Source reads runs from a table.
type Source struct {
	db    *sql.DB
	table string
}

// Open connects to the database. driver is "mysql" or "sqlite".
func Open(ctx context.Context, driver, dsn, table string) (*Source, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s database: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot connect to %s database: %w", driver, err)
	}
	s, err := New(db, table)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database. The table name must be a plain identifier.
func New(db *sql.DB, table string) (*Source, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Source{db: db, table: table}, nil
}

// Close closes the database.
func (s *Source) Close() error { return s.db.Close() }

// Load reads every row of the table. Columns are validated and coerced like
// the columns of a run file.
func (s *Source) Load(ctx context.Context) (*rpametrics.Dataset, error) {
	log := zerolog.Ctx(ctx)
	t, err := s.readTable(ctx)
	if err != nil {
		return nil, err
	}
	runs, issues, err := spreadsheet.ParseRuns(t)
	if err != nil {
		return nil, err
	}
	ds := rpametrics.NewDataset("sql:"+s.table, runs)
	for _, issue := range issues {
		ds.Warnings = append(ds.Warnings, issue.String())
	}
	log.Info().Str("table", s.table).Int("runs", len(runs)).Int("issues", len(issues)).Msg("runs loaded")
	return ds, nil
}

// readTable reads the whole table as text cells.
func (s *Source) readTable(ctx context.Context) (*spreadsheet.Table, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+s.table)
	if err != nil {
		return nil, fmt.Errorf("cannot query %s: %w", s.table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	t := &spreadsheet.Table{Name: s.table, Header: header}
	values := make([]any, len(header))
	ptrs := make([]any, len(header))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("cannot scan %s: %w", s.table, err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = text(v)
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", s.table, err)
	}
	return t, nil
}

// text converts a driver value to the cell text a spreadsheet would hold.
func text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(rpametrics.DateFormat)
	default:
		return fmt.Sprint(v)
	}
}

var _ rpametrics.Loader = (*Source)(nil)
