package report

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownRenderer writes a report as a GitHub-flavored Markdown table, with
// the title as a bold line above it. Numeric-format columns get right
// alignment markers.
type MarkdownRenderer struct {
	// Formatters display values of formatted columns. nil shows raw values.
	Formatters Formatters
}

// Render writes the table. A model without columns renders nothing.
func (md MarkdownRenderer) Render(w io.Writer, m Model) error {
	if len(m.Columns) == 0 {
		return nil
	}
	header, rows := displayGrid(m, md.Formatters)
	header = escapeMarkdownCells(header)
	for i := range rows {
		rows[i] = escapeMarkdownCells(rows[i])
	}

	// Minimum width 3 leaves room for alignment markers.
	widths := computeWidths(header, rows)
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}
	aligns := columnAlignments(m.Columns)

	if m.Title != "" {
		if _, err := fmt.Fprintf(w, "**%s**\n\n", escapeMarkdown(m.Title)); err != nil {
			return err
		}
	}
	if err := writeMarkdownRow(w, header, widths, aligns); err != nil {
		return err
	}

	sep := make([]string, len(widths))
	for i, width := range widths {
		switch aligns[i] {
		case AlignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case AlignCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}

	for _, row := range rows {
		if err := writeMarkdownRow(w, row, widths, aligns); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		padded[i] = alignCell(cells[i], width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ", "\r", "")

func escapeMarkdown(s string) string { return markdownEscaper.Replace(s) }

func escapeMarkdownCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = escapeMarkdown(c)
	}
	return out
}
