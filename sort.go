package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// negationMarker prefixes a string sort directive to sort descending.
const negationMarker = "!"

// SortDirective orders rows by one column.
type SortDirective struct {
	Column  string `json:"column" yaml:"column"`
	Reverse bool   `json:"reverse,omitempty" yaml:"reverse,omitempty"`
}

// String returns the directive in its short form, "Last" or "!Last".
func (d SortDirective) String() string {
	if d.Reverse {
		return negationMarker + d.Column
	}
	return d.Column
}

// ParseSortDirective reads a directive from a column key, optionally
// prefixed with "!" for descending order, or from an object
// {column, reverse}.
func ParseSortDirective(x any) (SortDirective, error) {
	switch v := x.(type) {
	case SortDirective:
		if v.Column == "" {
			return SortDirective{}, fmt.Errorf("%w: missing column", ErrInvalidSortDirective)
		}
		return v, nil
	case *SortDirective:
		if v == nil {
			return SortDirective{}, fmt.Errorf("%w: nil directive", ErrInvalidSortDirective)
		}
		return ParseSortDirective(*v)
	case string:
		col, reverse := strings.CutPrefix(v, negationMarker)
		if col == "" {
			return SortDirective{}, fmt.Errorf("%w: missing column in %q", ErrInvalidSortDirective, v)
		}
		return SortDirective{Column: col, Reverse: reverse}, nil
	}

	obj, ok := asObject(x)
	if !ok {
		return SortDirective{}, fmt.Errorf("%w: expected a column key or object, got %T", ErrInvalidSortDirective, x)
	}
	raw, _ := lookup(obj, "column")
	col, ok := raw.(string)
	if !ok || col == "" {
		return SortDirective{}, fmt.Errorf("%w: missing column", ErrInvalidSortDirective)
	}
	d := SortDirective{Column: col}
	if raw, ok := lookup(obj, "reverse"); ok {
		if d.Reverse, ok = raw.(bool); !ok {
			return SortDirective{}, fmt.Errorf("%w: reverse must be a boolean, got %T", ErrInvalidSortDirective, raw)
		}
	}
	return d, nil
}

// ParseSortDirectives reads a list of directives. nil yields no directives.
func ParseSortDirectives(x any) ([]SortDirective, error) {
	if x == nil {
		return nil, nil
	}
	list, ok := asSequence(x)
	if !ok {
		return nil, fmt.Errorf("%w: sort must be a list, got %T", ErrInvalidSortDirective, x)
	}
	out := make([]SortDirective, 0, len(list))
	for i, item := range list {
		d, err := ParseSortDirective(item)
		if err != nil {
			return nil, fmt.Errorf("sort %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// Comparator orders two rows. It returns a negative number when a sorts
// before b, a positive number when after, and zero for a tie.
type Comparator func(a, b Row) int

// CompileSort folds directives into one comparator. Directive i is consulted
// only when every directive before it ties. It returns nil for no directives.
func CompileSort(directives []SortDirective) Comparator {
	var c Comparator
	for i := len(directives) - 1; i >= 0; i-- {
		c = thenBy(directives[i].comparator(), c)
	}
	return c
}

func (d SortDirective) comparator() Comparator {
	return func(a, b Row) int {
		c := CompareValues(a.sortKey(d.Column), b.sortKey(d.Column))
		if d.Reverse {
			return -c
		}
		return c
	}
}

// thenBy runs first and falls back to next on ties.
func thenBy(first, next Comparator) Comparator {
	if next == nil {
		return first
	}
	return func(a, b Row) int {
		if c := first(a, b); c != 0 {
			return c
		}
		return next(a, b)
	}
}

// SortRows returns a copy of rows stably sorted by directives. Rows tied on
// every directive keep their relative order.
func SortRows(rows []Row, directives []SortDirective) []Row {
	out := slices.Clone(rows)
	if c := CompileSort(directives); c != nil {
		slices.SortStableFunc(out, c)
	}
	return out
}

// Value classes in sort order. Values of different classes compare by
// class, so the order stays total over mixed columns.
const (
	classNil = iota
	classNumber
	classBool
	classTime
	classText
)

func valueClass(v any) int {
	if v == nil {
		return classNil
	}
	if _, ok := toFloat(v); ok {
		return classNumber
	}
	switch v.(type) {
	case bool:
		return classBool
	case time.Time:
		return classTime
	}
	return classText
}

// CompareValues orders two cell values. Missing values (nil) sort first, then
// numbers (numeric strings included), booleans, times and finally text.
// Values of one class compare naturally; text compares lexically.
func CompareValues(a, b any) int {
	ca, cb := valueClass(a), valueClass(b)
	if ca != cb {
		return cmp.Compare(ca, cb)
	}
	switch ca {
	case classNil:
		return 0
	case classNumber:
		x, _ := toFloat(a)
		y, _ := toFloat(b)
		return cmp.Compare(x, y)
	case classBool:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case classTime:
		return a.(time.Time).Compare(b.(time.Time))
	}
	return strings.Compare(Stringify(a), Stringify(b))
}
