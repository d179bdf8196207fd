package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLRenderer writes the canonical model as one YAML document.
type YAMLRenderer struct {
	// Indent is the number of spaces per level. Zero uses the encoder default.
	Indent int
}

// Render writes the model.
func (y YAMLRenderer) Render(w io.Writer, m Model) error {
	enc := yaml.NewEncoder(w)
	if y.Indent > 0 {
		enc.SetIndent(y.Indent)
	}
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}
