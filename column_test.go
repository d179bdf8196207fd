package report_test

import (
	"encoding/json"
	"testing"

	"github.com/bjaus/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCell(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input any
		want  report.Cell
	}{
		"scalar":       {input: "Fry", want: report.Cell{Value: "Fry"}},
		"number":       {input: 42, want: report.Cell{Value: 42}},
		"null":         {input: nil, want: report.Cell{}},
		"value object": {input: map[string]any{"value": "x"}, want: report.Cell{Value: "x"}},
		"with sort value": {
			input: report.NewObject().Set("value", "March").Set("sortValue", 3),
			want:  report.Cell{Value: "March", SortValue: 3},
		},
		"extra keys dropped": {
			input: map[string]any{"value": 1, "note": "ignored"},
			want:  report.Cell{Value: 1},
		},
		"cell passes through": {
			input: report.Cell{Value: "a", SortValue: "b"},
			want:  report.Cell{Value: "a", SortValue: "b"},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := report.NormalizeCell(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeCellMissingValue(t *testing.T) {
	t.Parallel()
	_, err := report.NormalizeCell(map[string]any{"sortValue": 1})
	require.ErrorIs(t, err, report.ErrMissingValue)
}

func TestCellSortKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a", report.Cell{Value: "a"}.SortKey())
	assert.Equal(t, 1, report.Cell{Value: "a", SortValue: 1}.SortKey())
}

func TestNormalizeColumn(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input any
		index int
		want  report.Column
	}{
		"string": {
			input: "Last",
			index: 2,
			want:  report.Column{Index: 2, Key: "Last", Heading: "Last"},
		},
		"key only": {
			input: map[string]any{"key": "last"},
			want:  report.Column{Key: "last", Heading: "last"},
		},
		"heading only": {
			input: map[string]any{"heading": "Last Name"},
			want:  report.Column{Key: "Last Name", Heading: "Last Name"},
		},
		"explicit index wins": {
			input: map[string]any{"key": "a", "index": json.Number("7")},
			index: 1,
			want:  report.Column{Index: 7, Key: "a", Heading: "a"},
		},
		"format shorthand": {
			input: map[string]any{"key": "price", "format": "currency", "class": "money"},
			want: report.Column{
				Key: "price", Heading: "price", Class: "money",
				Format: &report.Format{Type: report.FormatCurrency},
			},
		},
		"format object": {
			input: map[string]any{"key": "born", "format": map[string]any{"type": "date", "options": "m/d/Y"}},
			want: report.Column{
				Key: "born", Heading: "born",
				Format: &report.Format{Type: report.FormatDate, Options: "m/d/Y"},
			},
		},
		"column passes through": {
			input: report.Column{Index: 3, Key: "k", Heading: "H"},
			index: 0,
			want:  report.Column{Index: 3, Key: "k", Heading: "H"},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := report.NormalizeColumn(tt.input, tt.index)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeColumnErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input  any
		target error
	}{
		"empty object":        {input: map[string]any{}, target: report.ErrMissingColumnIdentifier},
		"empty string":        {input: "", target: report.ErrMissingColumnIdentifier},
		"null key":            {input: map[string]any{"key": nil}, target: report.ErrMissingColumnIdentifier},
		"number":              {input: 5, target: report.ErrInvalidColumnDescriptor},
		"null":                {input: nil, target: report.ErrInvalidColumnDescriptor},
		"fractional index":    {input: map[string]any{"key": "a", "index": 1.5}, target: report.ErrInvalidColumnDescriptor},
		"list key":            {input: map[string]any{"key": []any{"a"}}, target: report.ErrInvalidColumnDescriptor},
		"format without type": {input: map[string]any{"key": "a", "format": map[string]any{}}, target: report.ErrInvalidColumnDescriptor},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := report.NormalizeColumn(tt.input, 0)
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestBuildColumnsOrdersByIndex(t *testing.T) {
	t.Parallel()
	cols, err := report.BuildColumns([]any{
		map[string]any{"key": "C", "index": 2},
		map[string]any{"key": "A", "index": 0},
		map[string]any{"key": "B", "index": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []report.Column{
		{Index: 0, Key: "A", Heading: "A"},
		{Index: 1, Key: "B", Heading: "B"},
		{Index: 2, Key: "C", Heading: "C"},
	}, cols)
}

func TestBuildColumnsStableTies(t *testing.T) {
	t.Parallel()
	// "b" and "c" both claim index 0 and keep their declared order.
	cols, err := report.BuildColumns([]any{
		map[string]any{"key": "a", "index": 1},
		map[string]any{"key": "b", "index": 0},
		map[string]any{"key": "c", "index": 0},
	})
	require.NoError(t, err)
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
		assert.Equal(t, i, c.Index)
	}
	assert.Equal(t, []string{"b", "c", "a"}, keys)
}

func TestBuildColumnsIdempotent(t *testing.T) {
	t.Parallel()
	first, err := report.BuildColumns([]any{
		"Prefix",
		map[string]any{"key": "Last", "index": 0, "format": "date"},
	})
	require.NoError(t, err)
	second, err := report.BuildColumns(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildColumnsErrors(t *testing.T) {
	t.Parallel()
	_, err := report.BuildColumns("Last")
	require.ErrorIs(t, err, report.ErrInvalidColumnDescriptor)

	_, err = report.BuildColumns([]any{"a", map[string]any{}})
	require.ErrorIs(t, err, report.ErrMissingColumnIdentifier)
	assert.Contains(t, err.Error(), "column 1")
}

func TestInferColumns(t *testing.T) {
	t.Parallel()
	rows, err := report.NormalizeRows([]any{
		report.NewObject().Set("First", "Philip").Set("Last", "Fry"),
		report.NewObject().Set("First", "Leela"),
		report.NewObject().Set("Title", "Captain").Set("Last", "Leela"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"First", "Last", "Title"}, report.InferColumnKeys(rows))

	cols, err := report.InferColumns(rows)
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Equal(t, report.Column{Index: 2, Key: "Title", Heading: "Title"}, cols[2])
}

func TestInferColumnsEmpty(t *testing.T) {
	t.Parallel()
	cols, err := report.InferColumns(nil)
	require.NoError(t, err)
	assert.Empty(t, cols)

	rows, err := report.NormalizeRows([]any{map[string]any{}})
	require.NoError(t, err)
	_, err = report.InferColumns(rows)
	require.ErrorIs(t, err, report.ErrEmptyColumnSet)
}

func TestNormalizeRow(t *testing.T) {
	t.Parallel()
	row, err := report.NormalizeRow(report.NewObject().
		Set("Last", "Fry").
		Set("Born", map[string]any{"value": "Aug 14", "sortValue": "1974-08-14"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"Last", "Born"}, row.Keys())
	assert.Equal(t, 2, row.Len())
	c, ok := row.Cell("Born")
	require.True(t, ok)
	assert.Equal(t, report.Cell{Value: "Aug 14", SortValue: "1974-08-14"}, c)
	assert.Equal(t, "Fry", row.Value("Last"))

	_, ok = row.Cell("Prefix")
	assert.False(t, ok)
	assert.Nil(t, row.Value("Prefix"))

	again, err := report.NormalizeRow(row)
	require.NoError(t, err)
	assert.Equal(t, row, again)
}

func TestNormalizeRowsErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input  any
		target error
		msg    string
	}{
		"keyed collection": {
			input:  map[string]any{"a": map[string]any{"x": 1}},
			target: report.ErrInvalidDataShape,
		},
		"scalar row": {
			input:  []any{map[string]any{"x": 1}, "oops"},
			target: report.ErrInvalidDataShape,
			msg:    "row 1",
		},
		"array row": {
			input:  []any{[]any{"a", "b"}},
			target: report.ErrInvalidDataShape,
		},
		"cell without value": {
			input:  []any{map[string]any{"x": map[string]any{"sortValue": 1}}},
			target: report.ErrMissingValue,
			msg:    `field "x"`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := report.NormalizeRows(tt.input)
			require.ErrorIs(t, err, tt.target)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestRowMarshalJSON(t *testing.T) {
	t.Parallel()
	row, err := report.NormalizeRow(report.NewObject().Set("b", 1).Set("a", map[string]any{"value": 2, "sortValue": 0}))
	require.NoError(t, err)
	b, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"b":{"value":1},"a":{"value":2,"sortValue":0}}`, string(b))
}
