// Package report builds tabular reports from loosely structured
// configurations and renders them in several outputs.
//
// A configuration names columns, supplies rows of cells, and optionally gives
// a title and sort directives. [New] accepts it as JSON text, as a bare list
// of rows, as a [Config], or as an object with "columns", "data" and
// "options" keys:
//
//	r, err := report.New(`{
//	    "columns": ["First", {"key": "Last", "heading": "Surname"}],
//	    "data": [{"First": "Philip", "Last": "Fry"}],
//	    "options": {"title": "Crew", "sort": ["!Last"]}
//	}`)
//
// Every input is normalized eagerly into a [Model]: columns in index order
// and rows in sorted order. Invalid input fails with an error wrapping one of
// the package's sentinel errors; [IsConfigError] tells those apart from I/O
// failures.
//
// # Columns
//
// A column descriptor is a string, used as both key and heading, or an object
// with key, heading, index, class and format. Explicit indices reorder
// columns and are then renumbered densely. When no columns are given they are
// inferred from the data in the order keys first appear.
//
// # Cells and Sorting
//
// A cell is a bare value or an object {value, sortValue}. Rows are sorted by
// the sort value when present. Sort directives are column keys, "!Key" for
// descending order, or {column, reverse} objects. Later directives break ties
// of earlier ones and rows tied on every directive keep their input order.
//
// # Outputs
//
// Use [ParseOutput] to turn a flag or URL segment into an [Output] and
// [Write] or [Marshal] to render:
//
//   - [HTML]: a table fragment, see [HTMLRenderer]
//   - [HTMLPage]: a whole document, see [Page]
//   - [XLSX]: a workbook, see [XLSXRenderer]
//   - [Table]: a terminal table, see [TextRenderer]
//   - [Markdown], [CSV] and [TSV]
//   - [JSON], [JSONL] and [YAML]: the canonical model
//   - [GoTemplate]: a Go [text/template] executed against the model
//
// Renderers that display values apply the column format through a
// [Formatters] registry; [DefaultFormatters] covers currency, date,
// percentage and singleDecimal.
package report
