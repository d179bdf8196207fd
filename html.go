package report

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// HTMLRenderer writes a report as an HTML table fragment.
//
// Every th and td carries the class "column-N" (plus the column's class) and
// a data-column-key attribute; every td also carries data-sort-value so that
// client-side sorting can use the cell's sort value. Rows missing a column
// get an empty td.
type HTMLRenderer struct {
	// TableClass is set as the class of the table element when not empty.
	TableClass string
	// Formatters display values of formatted columns. nil shows raw values.
	Formatters Formatters
}

// Render writes the table. A model without columns or without data renders
// nothing.
func (h HTMLRenderer) Render(w io.Writer, m Model) error {
	if m.blank() {
		return nil
	}
	var b strings.Builder

	if h.TableClass != "" {
		fmt.Fprintf(&b, "<table class=\"%s\">\n", html.EscapeString(h.TableClass))
	} else {
		b.WriteString("<table>\n")
	}
	if m.Title != "" {
		fmt.Fprintf(&b, "  <caption>%s</caption>\n", html.EscapeString(m.Title))
	}

	b.WriteString("  <thead>\n    <tr>\n")
	for _, col := range m.Columns {
		fmt.Fprintf(&b, "      <th class=\"%s\" data-column-key=\"%s\">%s</th>\n",
			html.EscapeString(columnClass(col)), html.EscapeString(col.Key), html.EscapeString(col.Heading))
	}
	b.WriteString("    </tr>\n  </thead>\n")

	b.WriteString("  <tbody>\n")
	for _, row := range m.Rows {
		b.WriteString("    <tr>\n")
		for _, col := range m.Columns {
			cell, ok := row.Cell(col.Key)
			if !ok {
				cell = Cell{Value: ""}
			}
			fmt.Fprintf(&b, "      <td class=\"%s\" data-column-key=\"%s\" data-sort-value=\"%s\">%s</td>\n",
				html.EscapeString(columnClass(col)),
				html.EscapeString(col.Key),
				html.EscapeString(Stringify(cell.SortKey())),
				html.EscapeString(h.Formatters.Display(col, cell)))
		}
		b.WriteString("    </tr>\n")
	}
	b.WriteString("  </tbody>\n")
	b.WriteString("</table>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func columnClass(col Column) string {
	class := fmt.Sprintf("column-%d", col.Index)
	if col.Class != "" {
		class += " " + col.Class
	}
	return class
}
