package spreadsheet

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a data file does not exist.
var ErrNotFound = errors.New("data file not found")

// ErrUnsupportedFormat is returned for file extensions that cannot be read or written.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrEmpty is returned when a sheet has no header row.
var ErrEmpty = errors.New("worksheet is empty")

// MissingColumnsError reports the expected columns absent from a file.
type MissingColumnsError struct {
	File    string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.File, strings.Join(e.Columns, ", "))
}
