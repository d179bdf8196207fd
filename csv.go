package report

import (
	"encoding/csv"
	"io"
)

// CSVRenderer writes a header record of column headings followed by one
// record per row.
type CSVRenderer struct {
	// Comma is the field delimiter. Zero means a comma.
	Comma rune
	// Formatters display values of formatted columns. nil writes raw values,
	// which is usually what spreadsheet imports want.
	Formatters Formatters
}

// Render writes the records. A model without columns renders nothing.
func (c CSVRenderer) Render(w io.Writer, m Model) error {
	if len(m.Columns) == 0 {
		return nil
	}
	header, rows := displayGrid(m, c.Formatters)
	cw := csv.NewWriter(w)
	if c.Comma != 0 {
		cw.Comma = c.Comma
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
