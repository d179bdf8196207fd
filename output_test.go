package report_test

import (
	"bytes"
	"testing"

	"github.com/bjaus/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutput(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    report.Output
		wantErr require.ErrorAssertionFunc
	}{
		"html":        {input: "html", want: report.HTML, wantErr: require.NoError},
		"page":        {input: "page", want: report.HTMLPage, wantErr: require.NoError},
		"xlsx":        {input: "xlsx", want: report.XLSX, wantErr: require.NoError},
		"table":       {input: "table", want: report.Table, wantErr: require.NoError},
		"markdown":    {input: "markdown", want: report.Markdown, wantErr: require.NoError},
		"csv":         {input: "csv", want: report.CSV, wantErr: require.NoError},
		"tsv":         {input: "tsv", want: report.TSV, wantErr: require.NoError},
		"json":        {input: "json", want: report.JSON, wantErr: require.NoError},
		"jsonl":       {input: "jsonl", want: report.JSONL, wantErr: require.NoError},
		"yaml":        {input: "yaml", want: report.YAML, wantErr: require.NoError},
		"upper":       {input: " HTML ", want: report.HTML, wantErr: require.NoError},
		"alias excel": {input: "excel", want: report.XLSX, wantErr: require.NoError},
		"alias xls":   {input: "xls", want: report.XLSX, wantErr: require.NoError},
		"alias md":    {input: "md", want: report.Markdown, wantErr: require.NoError},
		"alias yml":   {input: "yml", want: report.YAML, wantErr: require.NoError},
		"alias txt":   {input: "txt", want: report.Table, wantErr: require.NoError},
		"template":    {input: "go-template={{.Title}}", want: report.GoTemplate("{{.Title}}"), wantErr: require.NoError},
		"unknown":     {input: "pdf", want: "", wantErr: require.Error},
		"empty":       {input: "", want: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := report.ParseOutput(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOutputSentinel(t *testing.T) {
	t.Parallel()
	_, err := report.ParseOutput("pdf")
	require.ErrorIs(t, err, report.ErrUnsupportedOutput)
	assert.False(t, report.IsConfigError(err))
}

func TestOutputs(t *testing.T) {
	t.Parallel()
	got := report.Outputs()
	assert.Equal(t, []report.Output{
		report.HTML, report.HTMLPage, report.XLSX, report.Table, report.Markdown,
		report.CSV, report.TSV, report.JSON, report.JSONL, report.YAML,
	}, got)
	// Returned slice must be a copy.
	got[0] = "modified"
	assert.Equal(t, report.HTML, report.Outputs()[0])
}

func TestOutputMetadata(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		output      report.Output
		contentType string
		extension   string
	}{
		"html":     {output: report.HTML, contentType: "text/html; charset=utf-8", extension: ".html"},
		"page":     {output: report.HTMLPage, contentType: "text/html; charset=utf-8", extension: ".html"},
		"xlsx":     {output: report.XLSX, contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", extension: ".xlsx"},
		"table":    {output: report.Table, contentType: "text/plain; charset=utf-8", extension: ".txt"},
		"markdown": {output: report.Markdown, contentType: "text/markdown; charset=utf-8", extension: ".md"},
		"csv":      {output: report.CSV, contentType: "text/csv; charset=utf-8", extension: ".csv"},
		"tsv":      {output: report.TSV, contentType: "text/tab-separated-values; charset=utf-8", extension: ".tsv"},
		"json":     {output: report.JSON, contentType: "application/json", extension: ".json"},
		"jsonl":    {output: report.JSONL, contentType: "application/jsonl", extension: ".jsonl"},
		"yaml":     {output: report.YAML, contentType: "application/yaml", extension: ".yaml"},
		"template": {output: report.GoTemplate("x"), contentType: "text/plain; charset=utf-8", extension: ".txt"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.contentType, tt.output.ContentType())
			assert.Equal(t, tt.extension, tt.output.Extension())
		})
	}
}

func TestOutputString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "html", report.HTML.String())
	assert.Equal(t, "go-template={{.Title}}", report.GoTemplate("{{.Title}}").String())
}

func TestWriteEveryOutput(t *testing.T) {
	t.Parallel()
	r, err := report.New(smallJSON)
	require.NoError(t, err)
	for _, o := range append(report.Outputs(), report.GoTemplate("{{len .Rows}} rows")) {
		t.Run(o.String(), func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, report.Write(&buf, o, r))
			assert.NotEmpty(t, buf.Bytes())
		})
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()
	r, err := report.New(smallJSON)
	require.NoError(t, err)
	b, err := report.Marshal(report.CSV, r)
	require.NoError(t, err)
	assert.Equal(t, "A,B\nx<y,5\nz,\n", string(b))

	b, err = report.Marshal(report.GoTemplate("{{len .Rows}} rows"), r)
	require.NoError(t, err)
	assert.Equal(t, "2 rows", string(b))
}

func TestMarshalErrors(t *testing.T) {
	t.Parallel()
	r, err := report.New(smallJSON)
	require.NoError(t, err)

	_, err = report.Marshal(report.Output("pdf"), r)
	require.ErrorIs(t, err, report.ErrUnsupportedOutput)

	_, err = report.Marshal(report.GoTemplate("{{"), r)
	require.ErrorIs(t, err, report.ErrInvalidTemplate)

	var buf bytes.Buffer
	require.ErrorIs(t, report.Write(&buf, report.GoTemplate("{{.Missing}}"), r), report.ErrInvalidTemplate)
}

func TestRendererFor(t *testing.T) {
	t.Parallel()
	for _, o := range report.Outputs() {
		r, err := report.RendererFor(o)
		require.NoError(t, err, o)
		assert.NotNil(t, r, o)
	}
	_, err := report.RendererFor("pdf")
	require.ErrorIs(t, err, report.ErrUnsupportedOutput)
}
