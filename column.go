package report

import (
	"cmp"
	"fmt"
	"slices"
)

// Format names how a column's values are presented. Renderers look Type up in
// their own registry; unknown types render the raw value.
type Format struct {
	Type    string `json:"type" yaml:"type"`
	Options string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Format types understood by the default renderers.
const (
	FormatCurrency      = "currency"
	FormatDate          = "date"
	FormatPercentage    = "percentage"
	FormatSingleDecimal = "singleDecimal"
)

// Column describes one report column.
type Column struct {
	Index   int     `json:"index" yaml:"index"`
	Key     string  `json:"key" yaml:"key"`
	Heading string  `json:"heading" yaml:"heading"`
	Class   string  `json:"class,omitempty" yaml:"class,omitempty"`
	Format  *Format `json:"format,omitempty" yaml:"format,omitempty"`
}

// FormatType returns the column's format type, or "" when it has none.
func (c Column) FormatType() string {
	if c.Format == nil {
		return ""
	}
	return c.Format.Type
}

// NormalizeColumn coerces a raw column descriptor into a Column.
//
// A string becomes a column whose key and heading are both that string. An
// object has its recognised fields copied: a missing heading is taken from
// the key and a missing key from the heading. An explicit "index" wins over
// the positional index. A bare string "format" is expanded to {type: format}.
func NormalizeColumn(x any, index int) (Column, error) {
	switch v := x.(type) {
	case Column:
		return v, nil
	case *Column:
		if v == nil {
			return Column{}, fmt.Errorf("%w: nil column", ErrInvalidColumnDescriptor)
		}
		return *v, nil
	case string:
		if v == "" {
			return Column{}, fmt.Errorf("%w: empty column name", ErrMissingColumnIdentifier)
		}
		return Column{Index: index, Key: v, Heading: v}, nil
	}

	obj, ok := asObject(x)
	if !ok {
		return Column{}, fmt.Errorf("%w: unexpected %T", ErrInvalidColumnDescriptor, x)
	}

	col := Column{Index: index}
	key, hasKey, err := textField(obj, "key")
	if err != nil {
		return Column{}, err
	}
	heading, hasHeading, err := textField(obj, "heading")
	if err != nil {
		return Column{}, err
	}
	switch {
	case hasKey && hasHeading:
		col.Key, col.Heading = key, heading
	case hasKey:
		col.Key, col.Heading = key, key
	case hasHeading:
		col.Key, col.Heading = heading, heading
	default:
		return Column{}, ErrMissingColumnIdentifier
	}

	if raw, ok := lookup(obj, "index"); ok {
		i, ok := toInt(raw)
		if !ok {
			return Column{}, fmt.Errorf("%w: index %v is not an integer", ErrInvalidColumnDescriptor, raw)
		}
		col.Index = i
	}
	if col.Class, _, err = textField(obj, "class"); err != nil {
		return Column{}, err
	}
	if raw, ok := lookup(obj, "format"); ok {
		if col.Format, err = normalizeFormat(raw); err != nil {
			return Column{}, err
		}
	}
	return col, nil
}

// textField reads an optional string field. Numbers are accepted and
// converted; other shapes are invalid.
func textField(obj *Object, name string) (string, bool, error) {
	raw, ok := lookup(obj, name)
	if !ok {
		return "", false, nil
	}
	s, ok := scalarString(raw)
	if !ok {
		return "", false, fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidColumnDescriptor, name, raw)
	}
	return s, s != "", nil
}

func normalizeFormat(x any) (*Format, error) {
	switch v := x.(type) {
	case string:
		if v == "" {
			return nil, nil
		}
		return &Format{Type: v}, nil
	case Format:
		return &v, nil
	case *Format:
		f := *v
		return &f, nil
	}
	obj, ok := asObject(x)
	if !ok {
		return nil, fmt.Errorf("%w: format must be a string or object, got %T", ErrInvalidColumnDescriptor, x)
	}
	typ, ok, err := textField(obj, "type")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: format is missing its type", ErrInvalidColumnDescriptor)
	}
	options, _, err := textField(obj, "options")
	if err != nil {
		return nil, err
	}
	return &Format{Type: typ, Options: options}, nil
}

// BuildColumns normalizes a list of raw column descriptors.
//
// Each descriptor is normalized with its position as the provisional index.
// The columns are then stable-sorted by index, so explicit indices reorder
// columns and equal indices keep their declared order, and finally renumbered
// 0..n-1.
func BuildColumns(descriptors any) ([]Column, error) {
	list, ok := asSequence(descriptors)
	if !ok {
		return nil, fmt.Errorf("%w: columns must be a list, got %T", ErrInvalidColumnDescriptor, descriptors)
	}
	cols := make([]Column, 0, len(list))
	for i, d := range list {
		col, err := NormalizeColumn(d, i)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		cols = append(cols, col)
	}
	slices.SortStableFunc(cols, func(a, b Column) int {
		return cmp.Compare(a.Index, b.Index)
	})
	for i := range cols {
		cols[i].Index = i
	}
	return cols, nil
}

// InferColumnKeys returns the union of the rows' keys in the order each key
// first appears.
func InferColumnKeys(rows []Row) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, row := range rows {
		for _, k := range row.keys {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// InferColumns builds columns from the keys found in rows. It fails with
// [ErrEmptyColumnSet] when there are rows but none of them has a field.
func InferColumns(rows []Row) ([]Column, error) {
	keys := InferColumnKeys(rows)
	if len(keys) == 0 {
		if len(rows) > 0 {
			return nil, fmt.Errorf("%w: %d rows without fields", ErrEmptyColumnSet, len(rows))
		}
		return []Column{}, nil
	}
	return BuildColumns(keys)
}
