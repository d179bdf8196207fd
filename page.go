package report

import (
	"html"
	"io"
	"maps"
	"slices"
	"strings"
)

// DefaultPageTemplate is the document [Page] fills in. {TITLE} and {REPORT}
// are replaced by the escaped title and the table markup.
const DefaultPageTemplate = `<!DOCTYPE html>
<html>
    <head>
        <title>{TITLE}</title>
        <meta charset="utf-8" />
    </head>
    <body>
        <h1>{TITLE}</h1>
        {REPORT}
    </body>
</html>
`

// DefaultPageTitle is used when the report has no title.
const DefaultPageTitle = "Report"

// Page renders a whole HTML document around an [HTMLRenderer] table.
type Page struct {
	// Template is the document with merge fields such as {TITLE}.
	Template string
	// MergeFields are extra placeholders and their replacement text. They
	// take precedence over {TITLE} and {REPORT}.
	MergeFields map[string]string
	// Table renders the {REPORT} field.
	Table HTMLRenderer
}

// NewPage returns a Page with the default template and a table of class
// "report".
func NewPage() Page {
	return Page{
		Template:    DefaultPageTemplate,
		MergeFields: map[string]string{},
		Table:       HTMLRenderer{TableClass: "report", Formatters: DefaultFormatters()},
	}
}

// Render writes the document. The title defaults to [DefaultPageTitle] and
// is also used as the table caption.
func (p Page) Render(w io.Writer, m Model) error {
	if m.Title == "" {
		m.Title = DefaultPageTitle
	}
	var table strings.Builder
	if err := p.Table.Render(&table, m); err != nil {
		return err
	}

	pairs := make([]string, 0, 2*len(p.MergeFields)+4)
	for _, k := range slices.Sorted(maps.Keys(p.MergeFields)) {
		pairs = append(pairs, k, p.MergeFields[k])
	}
	pairs = append(pairs,
		"{REPORT}", table.String(),
		"{TITLE}", html.EscapeString(m.Title),
	)

	tmpl := p.Template
	if tmpl == "" {
		tmpl = DefaultPageTemplate
	}
	_, err := strings.NewReplacer(pairs...).WriteString(w, tmpl)
	return err
}
