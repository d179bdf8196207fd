package report

import (
	"errors"
	"fmt"
	"io"
	"text/template"
)

// TemplateRenderer executes a Go text/template once against the model. Rows
// expose their values with the Value method:
//
//	{{range .Rows}}{{.Value "Last"}}, {{.Value "First"}}
//	{{end}}
//
// The template also gets a display function that applies formatters:
// {{display $col $row}}.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses tmpl with the default formatters available to
// the display function.
func NewTemplateRenderer(tmpl string) (TemplateRenderer, error) {
	return NewTemplateRendererWith(tmpl, DefaultFormatters())
}

// NewTemplateRendererWith parses tmpl with the given formatters available to
// the display function.
func NewTemplateRendererWith(tmpl string, f Formatters) (TemplateRenderer, error) {
	t, err := template.New("report").Funcs(template.FuncMap{
		"display": func(col Column, row Row) string {
			c, ok := row.Cell(col.Key)
			if !ok {
				return ""
			}
			return f.Display(col, c)
		},
	}).Parse(tmpl)
	if err != nil {
		return TemplateRenderer{}, fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	return TemplateRenderer{tmpl: t}, nil
}

// Render executes the template. Execution failures, such as a missing
// field, wrap [ErrInvalidTemplate]; write errors are returned as is.
func (t TemplateRenderer) Render(w io.Writer, m Model) error {
	if t.tmpl == nil {
		return fmt.Errorf("%w: no template parsed", ErrInvalidTemplate)
	}
	err := t.tmpl.Execute(w, m)
	var execErr template.ExecError
	if errors.As(err, &execErr) {
		return fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	return err
}
