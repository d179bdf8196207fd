package report

import "fmt"

// Cell is one row/column intersection.
type Cell struct {
	Value     any `json:"value" yaml:"value"`
	SortValue any `json:"sortValue,omitempty" yaml:"sortValue,omitempty"`
}

// SortKey returns the value rows are ordered by: SortValue when set,
// otherwise Value.
func (c Cell) SortKey() any {
	if c.SortValue != nil {
		return c.SortValue
	}
	return c.Value
}

// MarshalYAML encodes the cell with numbers decoded from JSON kept numeric.
func (c Cell) MarshalYAML() (any, error) {
	return struct {
		Value     any `yaml:"value"`
		SortValue any `yaml:"sortValue,omitempty"`
	}{yamlValue(c.Value), yamlValue(c.SortValue)}, nil
}

// NormalizeCell coerces a raw field value into a Cell.
//
// An object carrying a "value" key is taken as a cell as-is, together with
// its optional "sortValue". An object without "value" fails with
// [ErrMissingValue]. Anything else, null included, becomes the Value of a new
// cell.
func NormalizeCell(x any) (Cell, error) {
	switch v := x.(type) {
	case Cell:
		return v, nil
	case *Cell:
		if v == nil {
			return Cell{}, nil
		}
		return *v, nil
	}
	obj, ok := asObject(x)
	if !ok {
		return Cell{Value: x}, nil
	}
	value, ok := obj.Get("value")
	if !ok {
		return Cell{}, fmt.Errorf("%w: object has keys %q", ErrMissingValue, obj.Keys())
	}
	sortValue, _ := obj.Get("sortValue")
	return Cell{Value: value, SortValue: sortValue}, nil
}
