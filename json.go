package report

import (
	"encoding/json"
	"io"
)

// JSONRenderer writes the canonical model as one JSON document.
type JSONRenderer struct {
	// Indent is the per-level indentation. Empty writes compact JSON.
	Indent string
}

// Render writes the model.
func (j JSONRenderer) Render(w io.Writer, m Model) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if j.Indent != "" {
		enc.SetIndent("", j.Indent)
	}
	return enc.Encode(m)
}

// JSONLRenderer writes one JSON object per row, keyed by column key, in
// column order. Missing cells are null.
type JSONLRenderer struct{}

// Render writes the rows.
func (JSONLRenderer) Render(w io.Writer, m Model) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, row := range m.Rows {
		obj := NewObject()
		for _, col := range m.Columns {
			obj.Set(col.Key, row.Value(col.Key))
		}
		if err := enc.Encode(obj); err != nil {
			return err
		}
	}
	return nil
}
