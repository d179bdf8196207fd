package report

import (
	"errors"
	"fmt"
	"slices"
)

// Sentinel errors for programmatic error handling. Every error returned while
// building a report wraps one of the configuration errors; see
// [IsConfigError].
var (
	ErrMissingValue            = errors.New("missing cell value")
	ErrMissingColumnIdentifier = errors.New("missing column key and heading")
	ErrInvalidColumnDescriptor = errors.New("invalid column descriptor")
	ErrInvalidDataShape        = errors.New("invalid data shape")
	ErrInvalidSortDirective    = errors.New("invalid sort directive")
	ErrEmptyColumnSet          = errors.New("empty column set")
	ErrInvalidConfig           = errors.New("invalid report configuration")
	ErrUnsupportedOutput       = errors.New("unsupported output")
	ErrInvalidTemplate         = errors.New("invalid template")
)

// IsConfigError reports whether err was caused by the report configuration
// rather than by I/O.
func IsConfigError(err error) bool {
	for _, target := range []error{
		ErrMissingValue,
		ErrMissingColumnIdentifier,
		ErrInvalidColumnDescriptor,
		ErrInvalidDataShape,
		ErrInvalidSortDirective,
		ErrEmptyColumnSet,
		ErrInvalidConfig,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Config is the structured form of a report configuration.
type Config struct {
	// Columns is a list of column descriptors: strings, objects, or Columns.
	// When nil, columns are inferred from Data.
	Columns any
	// Data is a list of rows. Each row is an object of column key to cell,
	// where a cell is a bare value or an object {value, sortValue}.
	Data any
	// Title is an optional caption.
	Title string
	// Sort is a list of sort directives: "Key", "!Key", or {column, reverse}.
	Sort any
}

// Model is the finished report handed to renderers: columns in index order
// and rows in sorted order.
type Model struct {
	Title   string   `json:"title,omitempty" yaml:"title,omitempty"`
	Columns []Column `json:"columns" yaml:"columns"`
	Rows    []Row    `json:"rows" yaml:"rows"`
	// HasData is false until data was set on the report. Table renderers
	// write nothing for a model without data.
	HasData bool `json:"-" yaml:"-"`
}

// blank reports whether table renderers should write nothing: there are no
// columns, or no data was ever set. A hand-built model with rows counts as
// having data.
func (m Model) blank() bool {
	return len(m.Columns) == 0 || (!m.HasData && len(m.Rows) == 0)
}

// Report builds a [Model] from a loosely structured configuration.
//
// A Report is not safe for concurrent use; build one per request.
type Report struct {
	title    string
	columns  []Column
	explicit bool
	sort     []SortDirective
	data     []Row // normalized, in input order
	rows     []Row // data sorted by sort
	hasData  bool
}

// New builds a report from config, which may be:
//
//   - nil, for an empty report to be filled with the setters
//   - a JSON document as string or []byte
//   - a list of rows, whose columns are inferred
//   - a [Config], or an object with "columns", "data" and "options"
//     ("title", "sort") keys
//
// Columns are set first, then the title and sort directives, then the data.
func New(config any) (*Report, error) {
	in, err := classify(config)
	if err != nil {
		return nil, err
	}
	r := &Report{}
	if err := in.apply(r); err != nil {
		return nil, err
	}
	return r, nil
}

// SetColumns replaces the column set. nil clears it, so that the next
// [Report.SetData] infers columns again. Rows already set are kept.
func (r *Report) SetColumns(descriptors any) error {
	if descriptors == nil {
		var cols []Column
		if r.hasData {
			var err error
			if cols, err = InferColumns(r.data); err != nil {
				return err
			}
		}
		r.columns, r.explicit = cols, false
		return nil
	}
	cols, err := BuildColumns(descriptors)
	if err != nil {
		return err
	}
	if err := checkColumns(cols, r.data); err != nil {
		return err
	}
	r.columns, r.explicit = cols, true
	return nil
}

// SetData normalizes data and replaces the rows. Columns are inferred from
// the rows unless they were set explicitly. The rows are then sorted by the
// current sort directives.
func (r *Report) SetData(data any) error {
	rows, err := NormalizeRows(data)
	if err != nil {
		return err
	}
	cols := r.columns
	if !r.explicit {
		if cols, err = InferColumns(rows); err != nil {
			return err
		}
	}
	if err := checkColumns(cols, rows); err != nil {
		return err
	}
	r.columns = cols
	r.data = rows
	r.rows = SortRows(rows, r.sort)
	r.hasData = true
	return nil
}

// SetTitle sets the report title.
func (r *Report) SetTitle(title string) { r.title = title }

// SetSort replaces the sort directives and re-sorts the rows from their input
// order.
func (r *Report) SetSort(directives any) error {
	ds, err := ParseSortDirectives(directives)
	if err != nil {
		return err
	}
	r.sort = ds
	if r.hasData {
		r.rows = SortRows(r.data, ds)
	}
	return nil
}

// Title returns the report title.
func (r *Report) Title() string { return r.title }

// Columns returns the columns in index order.
func (r *Report) Columns() []Column { return slices.Clone(r.columns) }

// Rows returns the rows in sorted order.
func (r *Report) Rows() []Row { return slices.Clone(r.rows) }

// Sort returns the sort directives.
func (r *Report) Sort() []SortDirective { return slices.Clone(r.sort) }

// HasData reports whether data has been set.
func (r *Report) HasData() bool { return r.hasData }

// Model returns a snapshot of the report for rendering.
func (r *Report) Model() Model {
	cols := r.Columns()
	if cols == nil {
		cols = []Column{}
	}
	rows := r.Rows()
	if rows == nil {
		rows = []Row{}
	}
	return Model{Title: r.title, Columns: cols, Rows: rows, HasData: r.hasData}
}

func checkColumns(cols []Column, rows []Row) error {
	if len(cols) == 0 && len(rows) > 0 {
		return fmt.Errorf("%w: %d rows but no columns", ErrEmptyColumnSet, len(rows))
	}
	return nil
}
