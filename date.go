package report

import (
	"strings"
	"unicode"
)

// dateToken is one PHP date letter with its Go layout and spreadsheet
// number-format equivalents.
type dateToken struct {
	layout string
	excel  string
}

var dateTokens = map[rune]dateToken{
	'd': {"02", "dd"},
	'j': {"2", "d"},
	'D': {"Mon", "ddd"},
	'l': {"Monday", "dddd"},
	'm': {"01", "mm"},
	'n': {"1", "m"},
	'M': {"Jan", "mmm"},
	'F': {"January", "mmmm"},
	'Y': {"2006", "yyyy"},
	'y': {"06", "yy"},
	'H': {"15", "hh"},
	'G': {"15", "h"},
	'h': {"03", "hh"},
	'g': {"3", "h"},
	'i': {"04", "mm"},
	's': {"05", "ss"},
	'A': {"PM", "AM/PM"},
	'a': {"pm", "am/pm"},
}

// phpDateLayout converts PHP date letters to a Go time layout. A backslash
// escapes the next character.
func phpDateLayout(format string) string {
	return translateDate(format, func(t dateToken) string { return t.layout }, func(r rune) string {
		return string(r)
	})
}

// phpDateToExcel converts PHP date letters to a spreadsheet number format.
// Literal letters and digits are escaped so the spreadsheet does not read
// them as codes.
func phpDateToExcel(format string) string {
	return translateDate(format, func(t dateToken) string { return t.excel }, func(r rune) string {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return `\` + string(r)
		}
		return string(r)
	})
}

func translateDate(format string, token func(dateToken) string, literal func(rune) string) string {
	var b strings.Builder
	escaped := false
	for _, r := range format {
		switch {
		case escaped:
			b.WriteString(literal(r))
			escaped = false
		case r == '\\':
			escaped = true
		default:
			if t, ok := dateTokens[r]; ok {
				b.WriteString(token(t))
			} else {
				b.WriteString(literal(r))
			}
		}
	}
	return b.String()
}
