package report

import (
	"bytes"
	"fmt"
	"iter"
	"slices"

	"gopkg.in/yaml.v3"
)

// Row maps column keys to cells and keeps the order in which its fields were
// given. Rows are built by [NormalizeRow] and not changed afterwards.
type Row struct {
	keys  []string
	cells map[string]Cell
}

// Keys returns the row's field keys in order.
func (r Row) Keys() []string { return slices.Clone(r.keys) }

// Len returns the number of fields.
func (r Row) Len() int { return len(r.keys) }

// Cell returns the cell stored under key. Rows may lack keys that are in the
// column set; ok is false for those.
func (r Row) Cell(key string) (Cell, bool) {
	c, ok := r.cells[key]
	return c, ok
}

// Value returns the raw value stored under key, or nil.
func (r Row) Value(key string) any {
	return r.cells[key].Value
}

// All iterates over the row's fields in order.
func (r Row) All() iter.Seq2[string, Cell] {
	return func(yield func(string, Cell) bool) {
		for _, k := range r.keys {
			if !yield(k, r.cells[k]) {
				return
			}
		}
	}
}

func (r Row) sortKey(key string) any {
	c, ok := r.cells[key]
	if !ok {
		return nil
	}
	return c.SortKey()
}

// MarshalJSON encodes the row as an object with its keys in order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalJSON(k)
		if err != nil {
			return nil, err
		}
		cb, err := marshalJSON(r.cells[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(cb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the row as a mapping with its keys in order.
func (r Row) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, c := range r.All() {
		var val yaml.Node
		if err := val.Encode(c); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode(k), &val)
	}
	return node, nil
}

// NormalizeRow coerces one raw data item into a Row. The item must be an
// object; every field is normalized with [NormalizeCell].
func NormalizeRow(x any) (Row, error) {
	switch v := x.(type) {
	case Row:
		return v, nil
	case *Row:
		if v != nil {
			return *v, nil
		}
	}
	obj, ok := asObject(x)
	if !ok {
		return Row{}, fmt.Errorf("%w: row must be an object, got %T", ErrInvalidDataShape, x)
	}
	row := Row{
		keys:  make([]string, 0, obj.Len()),
		cells: make(map[string]Cell, obj.Len()),
	}
	for k, raw := range obj.All() {
		c, err := NormalizeCell(raw)
		if err != nil {
			return Row{}, fmt.Errorf("field %q: %w", k, err)
		}
		row.keys = append(row.keys, k)
		row.cells[k] = c
	}
	return row, nil
}

// NormalizeRows normalizes a positional list of raw rows, keeping their
// order. Anything other than a list fails with [ErrInvalidDataShape].
func NormalizeRows(data any) ([]Row, error) {
	list, ok := asSequence(data)
	if !ok {
		return nil, fmt.Errorf("%w: data must be a list of rows, got %T", ErrInvalidDataShape, data)
	}
	rows := make([]Row, 0, len(list))
	for i, item := range list {
		row, err := NormalizeRow(item)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
