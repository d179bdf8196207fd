package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Output names a rendering of a report.
type Output string

const (
	HTML     Output = "html"
	HTMLPage Output = "page"
	XLSX     Output = "xlsx"
	Table    Output = "table"
	Markdown Output = "markdown"
	CSV      Output = "csv"
	TSV      Output = "tsv"
	JSON     Output = "json"
	JSONL    Output = "jsonl"
	YAML     Output = "yaml"
)

const goTemplatePrefix = "go-template="

var outputs = []Output{HTML, HTMLPage, XLSX, Table, Markdown, CSV, TSV, JSON, JSONL, YAML}

// aliases accepts common spellings and file extensions.
var aliases = map[string]Output{
	"htm":   HTML,
	"excel": XLSX,
	"xls":   XLSX,
	"txt":   Table,
	"text":  Table,
	"md":    Markdown,
	"yml":   YAML,
}

// String returns the output name.
func (o Output) String() string { return string(o) }

// Outputs returns all static output names. GoTemplate is not included
// because it is parameterized.
func Outputs() []Output {
	out := make([]Output, len(outputs))
	copy(out, outputs)
	return out
}

// GoTemplate returns an Output that executes a Go text/template once against
// the report [Model].
func GoTemplate(tmpl string) Output {
	return Output(goTemplatePrefix + tmpl)
}

// ParseOutput parses an output name, case-insensitively. It accepts the
// static outputs, the aliases htm, excel, xls, txt, text, md and yml, and
// go-template=<tmpl> strings.
func ParseOutput(s string) (Output, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Output(s), nil
	}
	name := strings.ToLower(strings.TrimSpace(s))
	for _, o := range outputs {
		if string(o) == name {
			return o, nil
		}
	}
	if o, ok := aliases[name]; ok {
		return o, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedOutput, s)
}

// ContentType returns the MIME type of the output.
func (o Output) ContentType() string {
	switch o {
	case HTML, HTMLPage:
		return "text/html; charset=utf-8"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case Markdown:
		return "text/markdown; charset=utf-8"
	case CSV:
		return "text/csv; charset=utf-8"
	case TSV:
		return "text/tab-separated-values; charset=utf-8"
	case JSON:
		return "application/json"
	case JSONL:
		return "application/jsonl"
	case YAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension of the output, with the dot.
func (o Output) Extension() string {
	switch o {
	case HTML, HTMLPage:
		return ".html"
	case Table:
		return ".txt"
	case Markdown:
		return ".md"
	case XLSX, CSV, TSV, JSON, JSONL, YAML:
		return "." + string(o)
	default:
		return ".txt"
	}
}

// Renderer writes a report model in some output.
type Renderer interface {
	Render(w io.Writer, m Model) error
}

// RendererFor returns the default renderer for an output.
func RendererFor(o Output) (Renderer, error) {
	switch o {
	case HTML:
		return HTMLRenderer{Formatters: DefaultFormatters()}, nil
	case HTMLPage:
		return NewPage(), nil
	case XLSX:
		return XLSXRenderer{NumberFormats: DefaultNumberFormats()}, nil
	case Table:
		return TextRenderer{Formatters: DefaultFormatters()}, nil
	case Markdown:
		return MarkdownRenderer{Formatters: DefaultFormatters()}, nil
	case CSV:
		return CSVRenderer{}, nil
	case TSV:
		return CSVRenderer{Comma: '\t'}, nil
	case JSON:
		return JSONRenderer{Indent: "  "}, nil
	case JSONL:
		return JSONLRenderer{}, nil
	case YAML:
		return YAMLRenderer{}, nil
	default:
		if tmpl, ok := strings.CutPrefix(string(o), goTemplatePrefix); ok {
			t, err := NewTemplateRenderer(tmpl)
			if err != nil {
				return nil, err
			}
			return t, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOutput, o)
	}
}

// Write renders r in output o to w.
func Write(w io.Writer, o Output, r *Report) error {
	renderer, err := RendererFor(o)
	if err != nil {
		return err
	}
	return renderer.Render(w, r.Model())
}

// Marshal renders r in output o and returns the bytes.
func Marshal(o Output, r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, o, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
