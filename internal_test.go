package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGroupThousands(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "123", groupThousands("123"))
	assert.Equal(t, "1,000", groupThousands("1000"))
	assert.Equal(t, "123,456.00", groupThousands("123456.00"))
	assert.Equal(t, "1,234,567.89", groupThousands("1234567.89"))
}

func TestPHPDateLayout(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "02/01/2006", phpDateLayout("d/m/Y"))
	assert.Equal(t, "Monday, January 2 2006 3:04 PM", phpDateLayout("l, F j Y g:i A"))
	assert.Equal(t, "Y-01", phpDateLayout(`\Y-m`))
}

func TestPHPDateToExcel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "mm/dd/yyyy", phpDateToExcel("m/d/Y"))
	assert.Equal(t, "yyyy-mm-dd hh:mm", phpDateToExcel("Y-m-d H:i"))
	assert.Equal(t, `dd \o\f mmmm`, phpDateToExcel(`d \o\f F`))
	assert.Equal(t, `yyyy \T`, phpDateToExcel("Y T"))
}

func TestAlignCell(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ab  ", alignCell("ab", 4, AlignLeft))
	assert.Equal(t, "  ab", alignCell("ab", 4, AlignRight))
	assert.Equal(t, " ab  ", alignCell("ab", 5, AlignCenter))
	assert.Equal(t, "abc", alignCell("abc", 2, AlignLeft))
	// Wide runes count double.
	assert.Equal(t, "你 ", alignCell("你", 3, AlignLeft))
}

func TestFormatTableCellTruncates(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "He...", formatTableCell("Hello world", 5, AlignLeft))
	assert.Equal(t, "Hel", formatTableCell("Hello", 3, AlignLeft))
}

func TestSpreadsheetValue(t *testing.T) {
	t.Parallel()
	date := Column{Format: &Format{Type: FormatDate}}
	money := Column{Format: &Format{Type: FormatCurrency}}
	plain := Column{}

	assert.Nil(t, spreadsheetValue(plain, nil))
	assert.Nil(t, spreadsheetValue(plain, ""))
	assert.Equal(t, int64(3), spreadsheetValue(plain, json.Number("3")))
	assert.Equal(t, 2.5, spreadsheetValue(plain, json.Number("2.5")))
	assert.Equal(t, "12", spreadsheetValue(plain, "12"))
	assert.Equal(t, 12.0, spreadsheetValue(money, "12"))
	assert.Equal(t, "n/a", spreadsheetValue(money, "n/a"))
	assert.Equal(t, time.Date(1974, 8, 14, 0, 0, 0, 0, time.UTC), spreadsheetValue(date, "1974-08-14"))
	assert.Equal(t, "someday", spreadsheetValue(date, "someday"))
	assert.Equal(t, `{"a":1}`, spreadsheetValue(plain, NewObject().Set("a", 1)))
}

func TestToFloat(t *testing.T) {
	t.Parallel()
	f, ok := toFloat(" 1.5 ")
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	for _, v := range []any{"NaN", "Inf", "", "abc", true, nil, []any{1}} {
		_, ok := toFloat(v)
		assert.False(t, ok, "%v", v)
	}
	_, ok = toInt(1.5)
	assert.False(t, ok)
	i, ok := toInt(json.Number("4"))
	assert.True(t, ok)
	assert.Equal(t, 4, i)
}

func TestAsObjectSortsMapKeys(t *testing.T) {
	t.Parallel()
	o, ok := asObject(map[string]int{"b": 1, "a": 2})
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, o.Keys())

	_, ok = asObject(map[int]string{1: "a"})
	assert.False(t, ok)
	_, ok = asSequence("abc")
	assert.False(t, ok)
	_, ok = asSequence([]byte("abc"))
	assert.False(t, ok)
	items, ok := asSequence([2]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, items)
}
