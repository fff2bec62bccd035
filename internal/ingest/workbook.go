package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is the minimal surface the pipeline needs from an uploaded file.
// Rows returns every row of a sheet as raw cell strings, first row included.
type Workbook interface {
	SheetNames() []string
	Rows(sheet string) ([][]string, error)
}

// ExcelWorkbook reads sheets out of an xlsx stream.
type ExcelWorkbook struct {
	f *excelize.File
}

func OpenExcel(r io.Reader) (*ExcelWorkbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &ExcelWorkbook{f: f}, nil
}

func (w *ExcelWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

func (w *ExcelWorkbook) Rows(sheet string) ([][]string, error) {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func (w *ExcelWorkbook) Close() error {
	return w.f.Close()
}

// MemoryWorkbook backs tests and synthetic inputs.
type MemoryWorkbook struct {
	Order  []string
	Sheets map[string][][]string
}

func (w *MemoryWorkbook) SheetNames() []string { return w.Order }

func (w *MemoryWorkbook) Rows(sheet string) ([][]string, error) {
	rows, ok := w.Sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("no such sheet %q", sheet)
	}
	return rows, nil
}

// Sheet is one loaded sheet with its header split off. Data rows keep the
// trailing-cell raggedness excelize produces; Cell pads on demand.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// LoadSheet reads a sheet and splits the first row off as the header. An
// empty sheet comes back with a nil header and no rows.
func LoadSheet(w Workbook, name string) (*Sheet, error) {
	rows, err := w.Rows(name)
	if err != nil {
		return nil, err
	}
	s := &Sheet{Name: name}
	if len(rows) > 0 {
		s.Header = rows[0]
		s.Rows = rows[1:]
	}
	return s, nil
}

// Width is the column count of the sheet as declared by its header.
func (s *Sheet) Width() int { return len(s.Header) }

// Cell returns the trimmed value of row[col], "" when the row is too short.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
