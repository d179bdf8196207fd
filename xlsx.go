package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"
)

// NumberFormatFunc returns the spreadsheet number format for a column format
// with the given options.
type NumberFormatFunc func(options string) string

// DefaultNumberFormats returns a new map of the built-in format types to
// spreadsheet number formats. Date options use PHP date letters and are
// converted; without options dates show as m/d/yyyy.
func DefaultNumberFormats() map[string]NumberFormatFunc {
	return map[string]NumberFormatFunc{
		FormatCurrency:      func(string) string { return "$#,##0.00" },
		FormatPercentage:    func(string) string { return "0%" },
		FormatSingleDecimal: func(string) string { return "0.0" },
		FormatDate: func(options string) string {
			if options == "" {
				return "m/d/yyyy"
			}
			return phpDateToExcel(options)
		},
	}
}

const (
	defaultTempPrefix = "xlsreport"
	minColumnWidth    = 8
	maxColumnWidth    = 80
)

// XLSXRenderer writes a report as a spreadsheet workbook with one sheet.
//
// The first row holds the headings in bold and stays frozen while scrolling.
// Data starts on the second row. Empty-string values leave their cell blank,
// values of date columns are stored as spreadsheet dates, and columns whose
// format type has an entry in NumberFormats get that number format.
type XLSXRenderer struct {
	// SheetName names the sheet. Empty keeps the workbook default.
	SheetName string
	// NumberFormats maps format types to number formats. nil applies none.
	NumberFormats map[string]NumberFormatFunc
}

// Workbook builds the workbook. The caller must Close it.
func (x XLSXRenderer) Workbook(m Model) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := x.fill(f, m); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (x XLSXRenderer) fill(f *excelize.File, m Model) error {
	sheet := f.GetSheetName(0)
	if x.SheetName != "" && x.SheetName != sheet {
		if err := f.SetSheetName(sheet, x.SheetName); err != nil {
			return fmt.Errorf("xlsx: sheet name: %w", err)
		}
		sheet = x.SheetName
	}
	if m.blank() {
		return nil
	}

	widths := make([]int, len(m.Columns))
	for i, col := range m.Columns {
		if err := setCell(f, sheet, i+1, 1, col.Heading); err != nil {
			return err
		}
		widths[i] = runewidth.StringWidth(col.Heading)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}
	if err := styleRange(f, sheet, 1, 1, len(m.Columns), 1, bold); err != nil {
		return err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("xlsx: freeze header: %w", err)
	}

	for r, row := range m.Rows {
		for i, col := range m.Columns {
			cell, ok := row.Cell(col.Key)
			if !ok {
				continue
			}
			v := spreadsheetValue(col, cell.Value)
			if v == nil {
				continue
			}
			if err := setCell(f, sheet, i+1, r+2, v); err != nil {
				return err
			}
			if w := runewidth.StringWidth(Stringify(cell.Value)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	if len(m.Rows) > 0 {
		for i, col := range m.Columns {
			fn := x.NumberFormats[col.FormatType()]
			if fn == nil {
				continue
			}
			code := fn(col.Format.Options)
			style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &code})
			if err != nil {
				return fmt.Errorf("xlsx: number format %q: %w", code, err)
			}
			if err := styleRange(f, sheet, i+1, 2, i+1, len(m.Rows)+1, style); err != nil {
				return err
			}
		}
	}

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("xlsx: column %d: %w", i+1, err)
		}
		width := min(max(w+2, minColumnWidth), maxColumnWidth)
		if err := f.SetColWidth(sheet, name, name, float64(width)); err != nil {
			return fmt.Errorf("xlsx: column width: %w", err)
		}
	}
	return nil
}

// Render writes the workbook to w.
func (x XLSXRenderer) Render(w io.Writer, m Model) error {
	f, err := x.Workbook(m)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// WriteTempFile saves the workbook under dir (os.TempDir when empty) with a
// unique name starting with prefix, and returns its path. The caller removes
// the file.
func (x XLSXRenderer) WriteTempFile(dir, prefix string, m Model) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if prefix == "" {
		prefix = defaultTempPrefix
	}
	path := filepath.Join(dir, prefix+"-"+uuid.NewString()+XLSX.Extension())

	f, err := x.Workbook(m)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("xlsx: write temp file: %w", err)
	}
	return path, nil
}

// spreadsheetValue converts a cell value into what is stored in the sheet,
// or nil to leave the cell blank.
func spreadsheetValue(col Column, v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case *Object, []any:
		return Stringify(t)
	}
	switch col.FormatType() {
	case FormatDate:
		if t, ok := parseTime(v); ok {
			return t
		}
	case FormatCurrency, FormatPercentage, FormatSingleDecimal:
		if f, ok := toFloat(v); ok {
			return f
		}
	}
	return v
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("xlsx: cell (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, name, v); err != nil {
		return fmt.Errorf("xlsx: cell %s: %w", name, err)
	}
	return nil
}

func styleRange(f *excelize.File, sheet string, col1, row1, col2, row2, style int) error {
	from, err := excelize.CoordinatesToCellName(col1, row1)
	if err != nil {
		return fmt.Errorf("xlsx: style range: %w", err)
	}
	to, err := excelize.CoordinatesToCellName(col2, row2)
	if err != nil {
		return fmt.Errorf("xlsx: style range: %w", err)
	}
	if err := f.SetCellStyle(sheet, from, to, style); err != nil {
		return fmt.Errorf("xlsx: style %s:%s: %w", from, to, err)
	}
	return nil
}
