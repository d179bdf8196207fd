package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/bjaus/report"
	"github.com/bjaus/report/internal/logging"
	"github.com/go-chi/chi/v5"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
    <head>
        <title>{{.Title}}</title>
        <meta charset="utf-8" />
    </head>
    <body>
        <h1>{{.Title}}</h1>
        <ul>
{{- range .Outputs}}
            <li><a href="/report.{{.Ext}}">{{.Name}}</a></li>
{{- end}}
        </ul>
    </body>
</html>
`))

type indexLink struct {
	Name string
	Ext  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	links := make([]indexLink, 0, len(report.Outputs()))
	for _, o := range report.Outputs() {
		if o == report.HTML {
			continue
		}
		links = append(links, indexLink{Name: o.String(), Ext: sampleExtension(o)})
	}

	var buf bytes.Buffer
	data := struct {
		Title   string
		Outputs []indexLink
	}{Title: s.cfg.Report.Title, Outputs: links}
	if err := indexTemplate.Execute(&buf, data); err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", report.HTMLPage.ContentType())
	_, _ = w.Write(buf.Bytes())
}

// sampleExtension is the path suffix under which the sample report is served
// in output o. The html suffix serves the full page.
func sampleExtension(o report.Output) string {
	if o == report.HTMLPage {
		return "html"
	}
	return o.String()
}

// handleSample serves the built-in sample report. The path extension picks
// the output; ?sort=Last,!First and ?title= override the report options.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	o, err := report.ParseOutput(chi.URLParam(r, "ext"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if o == report.HTML {
		o = report.HTMLPage
	}

	rep, err := report.New(sampleConfig)
	if err != nil {
		respondError(w, r, err)
		return
	}
	rep.SetTitle(s.cfg.Report.Title)
	if err := applyQuery(rep, r); err != nil {
		respondError(w, r, err)
		return
	}
	s.write(w, r, o, rep)
}

// handleRender renders a posted report configuration. JSON is the default
// body type; YAML is accepted with a yaml media type.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	o, err := report.ParseOutput(chi.URLParam(r, "output"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Report.MaxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, tooLarge.Limit)
		}
		respondError(w, r, err)
		return
	}

	config, err := decodeBody(r.Header.Get("Content-Type"), body)
	if err != nil {
		respondError(w, r, err)
		return
	}
	rep, err := report.New(config)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := applyQuery(rep, r); err != nil {
		respondError(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Debug("rendering report",
		"output", o.String(),
		"columns", len(rep.Columns()),
		"rows", len(rep.Rows()),
	)
	s.write(w, r, o, rep)
}

// handleListOutputs lists the output names accepted by the render endpoint.
func (s *Server) handleListOutputs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]report.Output{"outputs": report.Outputs()})
}

// decodeBody turns a request body into a value [report.New] accepts.
func decodeBody(contentType string, body []byte) (any, error) {
	if contentType == "" {
		return body, nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", errUnsupportedMediaType, contentType)
	}
	switch {
	case strings.Contains(mediaType, "yaml"):
		return report.DecodeYAML(body)
	case strings.Contains(mediaType, "json"), mediaType == "text/plain":
		return body, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedMediaType, mediaType)
	}
}

func applyQuery(rep *report.Report, r *http.Request) error {
	q := r.URL.Query()
	if title := q.Get("title"); title != "" {
		rep.SetTitle(title)
	}
	if sort := q.Get("sort"); sort != "" {
		if err := rep.SetSort(strings.Split(sort, ",")); err != nil {
			return err
		}
	}
	return nil
}

// renderer returns the renderer for o with the configured table class.
func (s *Server) renderer(o report.Output) (report.Renderer, error) {
	switch o {
	case report.HTML:
		return report.HTMLRenderer{TableClass: s.cfg.Report.TableClass, Formatters: report.DefaultFormatters()}, nil
	case report.HTMLPage:
		p := report.NewPage()
		p.Table.TableClass = s.cfg.Report.TableClass
		return p, nil
	default:
		return report.RendererFor(o)
	}
}

// write renders rep into a buffer first so that render errors still produce
// a proper error response.
func (s *Server) write(w http.ResponseWriter, r *http.Request, o report.Output, rep *report.Report) {
	rend, err := s.renderer(o)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := rend.Render(&buf, rep.Model()); err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", o.ContentType())
	if o == report.XLSX {
		disposition := mime.FormatMediaType("attachment", map[string]string{
			"filename": s.cfg.Report.Filename + o.Extension(),
		})
		w.Header().Set("Content-Disposition", disposition)
	}
	_, _ = w.Write(buf.Bytes())
}
