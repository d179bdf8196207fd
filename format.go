package report

import (
	"math"
	"strconv"
	"strings"
)

// FormatFunc turns a cell value into display text. options is the column
// format's Options string, possibly empty.
type FormatFunc func(value any, options string) string

// Formatters maps a format type to the function that displays values of
// columns with that format. A renderer owns its Formatters; there is no
// global registry.
type Formatters map[string]FormatFunc

// DefaultFormatters returns a new registry with the built-in format types:
//
//   - currency: "$1,234.50"
//   - date: options use PHP date letters (d j m n Y y ...), default "Y-m-d"
//   - percentage: value*100 followed by "%"
//   - singleDecimal: one digit after the decimal point
//
// Values a formatter cannot interpret are shown unformatted.
func DefaultFormatters() Formatters {
	return Formatters{
		FormatCurrency:      formatCurrency,
		FormatDate:          formatDate,
		FormatPercentage:    formatPercentage,
		FormatSingleDecimal: formatSingleDecimal,
	}
}

// Display returns the text for cell in col. Columns without a format, or
// with a type missing from f, show the raw value.
func (f Formatters) Display(col Column, cell Cell) string {
	if col.Format != nil {
		if fn := f[col.Format.Type]; fn != nil {
			return fn(cell.Value, col.Format.Options)
		}
	}
	return Stringify(cell.Value)
}

func formatCurrency(value any, _ string) string {
	f, ok := toFloat(value)
	if !ok {
		return Stringify(value)
	}
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	return sign + "$" + groupThousands(strconv.FormatFloat(f, 'f', 2, 64))
}

func formatPercentage(value any, _ string) string {
	f, ok := toFloat(value)
	if !ok {
		return Stringify(value)
	}
	// Round away binary noise such as 0.07*100 = 7.000000000000001.
	p := math.Round(f*100*1e10) / 1e10
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

func formatSingleDecimal(value any, _ string) string {
	f, ok := toFloat(value)
	if !ok {
		return Stringify(value)
	}
	return strconv.FormatFloat(f, 'f', 1, 64)
}

func formatDate(value any, options string) string {
	t, ok := parseTime(value)
	if !ok {
		return Stringify(value)
	}
	if options == "" {
		options = "Y-m-d"
	}
	return t.Format(phpDateLayout(options))
}

// groupThousands inserts commas into the integer part of a decimal string.
func groupThousands(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
