package report

import (
	"encoding/json"
	"fmt"
)

// input is a report configuration after its shape has been decided.
type input interface {
	apply(r *Report) error
}

// jsonInput is JSON text that decodes to one of the other inputs.
type jsonInput struct {
	data []byte
}

// rowsInput is a bare list of rows; columns are inferred.
type rowsInput struct {
	rows []any
}

// structuredInput carries the recognised fields of a configuration object.
type structuredInput struct {
	columns any
	data    any
	title   string
	sort    any
}

// classify resolves the configuration's shape once, failing on anything it
// does not recognise.
func classify(config any) (input, error) {
	switch v := config.(type) {
	case nil:
		return structuredInput{}, nil
	case string:
		return jsonInput{data: []byte(v)}, nil
	case []byte:
		return jsonInput{data: v}, nil
	case json.RawMessage:
		return jsonInput{data: v}, nil
	case Config:
		return structuredInput{columns: v.Columns, data: v.Data, title: v.Title, sort: v.Sort}, nil
	case *Config:
		if v == nil {
			return structuredInput{}, nil
		}
		return classify(*v)
	}
	if rows, ok := asSequence(config); ok {
		return rowsInput{rows: rows}, nil
	}
	if obj, ok := asObject(config); ok {
		return structuredFromObject(obj)
	}
	return nil, fmt.Errorf("%w: unsupported configuration type %T", ErrInvalidConfig, config)
}

func structuredFromObject(obj *Object) (structuredInput, error) {
	in := structuredInput{}
	in.columns, _ = lookup(obj, "columns")
	in.data, _ = lookup(obj, "data")

	raw, ok := lookup(obj, "options")
	if !ok {
		return in, nil
	}
	opts, ok := asObject(raw)
	if !ok {
		return structuredInput{}, fmt.Errorf("%w: options must be an object, got %T", ErrInvalidConfig, raw)
	}
	if t, ok := lookup(opts, "title"); ok {
		if in.title, ok = scalarString(t); !ok {
			return structuredInput{}, fmt.Errorf("%w: title must be a string, got %T", ErrInvalidConfig, t)
		}
	}
	in.sort, _ = lookup(opts, "sort")
	return in, nil
}

func (in jsonInput) apply(r *Report) error {
	decoded, err := DecodeJSON(in.data)
	if err != nil {
		return err
	}
	var next input
	switch v := decoded.(type) {
	case nil:
		return nil
	case []any:
		next = rowsInput{rows: v}
	case *Object:
		if next, err = structuredFromObject(v); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: JSON must be an object or an array, got %T", ErrInvalidConfig, decoded)
	}
	return next.apply(r)
}

func (in rowsInput) apply(r *Report) error {
	return r.SetData(in.rows)
}

func (in structuredInput) apply(r *Report) error {
	if in.columns != nil {
		if err := r.SetColumns(in.columns); err != nil {
			return err
		}
	}
	r.SetTitle(in.title)
	if err := r.SetSort(in.sort); err != nil {
		return err
	}
	if in.data != nil {
		return r.SetData(in.data)
	}
	return nil
}
