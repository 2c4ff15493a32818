// Package spreadsheet reads the RPA metrics files (.xlsx, .xls and .csv) and
// writes the filtered view back as CSV or XLSX.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// maxXLSRows bounds the rows read from a legacy workbook.
const maxXLSRows = 1_000_000

// Table is the raw content of a sheet: a header row and the data rows.
// Data rows may be shorter than the header.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Cell returns the value of column col in row i, "" when absent.
func (t *Table) Cell(i, col int) string {
	if col < 0 || i < 0 || i >= len(t.Rows) || col >= len(t.Rows[i]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[i][col])
}

// ReadFile reads a sheet of the file at path. An empty sheet name selects the
// first sheet. A missing file is reported as ErrNotFound.
func ReadFile(path, sheet string) (*Table, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", path, err)
	}
	t, err := Read(bytes.NewReader(data), path, sheet)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q: %w", path, err)
	}
	return t, nil
}

// Read reads a sheet from r. The format is chosen from the extension of name.
func Read(r io.Reader, name, sheet string) (*Table, error) {
	var rows [][]string
	var err error
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv":
		rows, err = readCSV(r)
	case ".xls":
		rows, err = readXLS(r, sheet)
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(r, sheet)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	// the header is the first non blank row.
	for len(rows) > 0 && blank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	t := &Table{Name: name, Header: rows[0]}
	for _, row := range rows[1:] {
		if !blank(row) {
			t.Rows = append(t.Rows, row)
		}
	}
	return t, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	// strip the UTF-8 byte order mark written by spreadsheet tools.
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func readXLSX(r io.Reader, sheet string) ([][]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	if sheet == "" {
		sheet = file.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	// stored values, the display format would round numbers and reformat dates.
	return file.GetRows(sheet, excelize.Options{RawCellValue: true})
}

func readXLS(r io.Reader, sheet string) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("no worksheet found")
	}
	if sheet == "" && workbook.NumSheets() == 1 {
		return workbook.ReadAllCells(maxXLSRows), nil
	}
	for i := 0; i < workbook.NumSheets(); i++ {
		ws := workbook.GetSheet(i)
		if ws == nil || (sheet != "" && ws.Name != sheet) {
			continue
		}
		var rows [][]string
		for j := 0; j <= int(ws.MaxRow); j++ {
			row := ws.Row(j)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, 0, row.LastCol())
			for k := 0; k < row.LastCol(); k++ {
				cells = append(cells, row.Col(k))
			}
			rows = append(rows, cells)
		}
		return rows, nil
	}
	return nil, fmt.Errorf("no worksheet named %q", sheet)
}
