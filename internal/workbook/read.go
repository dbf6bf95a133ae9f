// Package workbook reads the first worksheet of an uploaded spreadsheet into a
// tagged cell model.
package workbook

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrParse             = errors.New("unreadable spreadsheet")
	ErrNoSheets          = errors.New("workbook has no worksheets")
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrTooManyRows       = errors.New("too many rows")
)

// xmlPartLimit caps a single worksheet part held in memory; larger parts
// spill to temp files inside excelize.
const xmlPartLimit = 16 << 20

type readOptions struct {
	maxRows    int
	unzipLimit int64
}

type ReadOption func(*readOptions)

// WithMaxRows fails the read once more than n data rows are found.
// Zero means no cap.
func WithMaxRows(n int) ReadOption {
	return func(o *readOptions) { o.maxRows = n }
}

// WithUnzipLimit bounds the total uncompressed size of an xlsx package.
// Zero keeps the excelize default.
func WithUnzipLimit(n int64) ReadOption {
	return func(o *readOptions) { o.unzipLimit = n }
}

func newReadOptions(opts []ReadOption) readOptions {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// exceeds reports whether a sheet holding rows populated rows, header
// included, is over the data row cap.
func (o readOptions) exceeds(rows int) bool {
	return o.maxRows > 0 && rows-1 > o.maxRows
}

func (o readOptions) tooManyRows() error {
	return fmt.Errorf("%w (> %d)", ErrTooManyRows, o.maxRows)
}

// blank decides whether a cell value counts as empty. Both readers use it so
// participant counts do not depend on the file format.
func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// DetectFormat picks a reader from the file name suffix.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func Read(r io.Reader, format Format, opts ...ReadOption) (*Sheet, error) {
	switch format {
	case FormatXLSX:
		return ReadXLSX(r, opts...)
	case FormatCSV:
		return ReadCSV(r, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func Open(path string, format Format, opts ...ReadOption) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, format, opts...)
}

// ReadXLSX reads the first worksheet of an OOXML package. Shared-string cells
// are interned into the sheet's table and kept as references.
func ReadXLSX(r io.Reader, opts ...ReadOption) (*Sheet, error) {
	o := newReadOptions(opts)
	var xo excelize.Options
	if o.unzipLimit > 0 {
		xo.UnzipSizeLimit = o.unzipLimit
		xo.UnzipXMLSizeLimit = min(o.unzipLimit, xmlPartLimit)
	}
	f, err := excelize.OpenReader(r, xo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, ErrNoSheets
	}
	name := names[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	table := NewSharedStrings()
	sheet := &Sheet{Name: name, Strings: table}
	for i, values := range rows {
		index := i + 1
		cells := make([]Cell, len(values))
		populated := false
		for col, value := range values {
			if blank(value) {
				continue
			}
			populated = true
			axis, err := excelize.CoordinatesToCellName(col+1, index)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrParse, err)
			}
			typ, err := f.GetCellType(name, axis)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrParse, axis, err)
			}
			cells[col] = classify(typ, value, table)
		}
		// Blank rows are not participants.
		if populated {
			sheet.Rows = append(sheet.Rows, Row{Index: index, Cells: cells})
			if o.exceeds(len(sheet.Rows)) {
				return nil, o.tooManyRows()
			}
		}
	}
	return sheet, nil
}

func classify(typ excelize.CellType, value string, table *SharedStrings) Cell {
	switch typ {
	case excelize.CellTypeSharedString:
		return Shared(table.Intern(value))
	case excelize.CellTypeNumber, excelize.CellTypeDate, excelize.CellTypeUnset:
		return Number(value)
	default:
		return Inline(value)
	}
}

// ReadCSV reads a comma-separated file; every cell is inline text.
func ReadCSV(r io.Reader, opts ...ReadOption) (*Sheet, error) {
	o := newReadOptions(opts)
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	sheet := &Sheet{Name: "csv", Strings: NewSharedStrings()}
	for i, record := range records {
		cells := make([]Cell, len(record))
		populated := false
		for col, value := range record {
			if blank(value) {
				continue
			}
			populated = true
			cells[col] = Inline(value)
		}
		if populated {
			sheet.Rows = append(sheet.Rows, Row{Index: i + 1, Cells: cells})
			if o.exceeds(len(sheet.Rows)) {
				return nil, o.tooManyRows()
			}
		}
	}
	return sheet, nil
}
