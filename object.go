package report

import (
	"bytes"
	"encoding/json"
	"iter"
	"maps"
	"reflect"
	"slices"

	"gopkg.in/yaml.v3"
)

// Object is a string-keyed map that remembers insertion order.
//
// [DecodeJSON] and [DecodeYAML] produce Objects for every JSON/YAML object so
// that columns inferred from data follow the order in which keys first
// appear. Callers building configurations in Go may use Objects for the same
// reason; plain maps are accepted too but their keys are visited in sorted
// order.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set adds key or replaces its value. A replaced key keeps its position.
// Set returns o so calls can be chained.
func (o *Object) Set(key string, value any) *Object {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// All iterates over the key/value pairs in insertion order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the object with its keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for k, v := range o.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		kb, err := marshalJSON(k)
		if err != nil {
			return nil, err
		}
		vb, err := marshalJSON(v)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the object as a mapping with keys in insertion order.
func (o *Object) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range o.All() {
		var val yaml.Node
		if err := val.Encode(yamlValue(v)); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode(k), &val)
	}
	return node, nil
}

// marshalJSON is json.Marshal without HTML escaping, so that nested values
// follow the escaping choice of the outer encoder.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func keyNode(k string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
}

// lookup reads key from o, treating an explicit null the same as a missing
// key.
func lookup(o *Object, key string) (any, bool) {
	v, ok := o.Get(key)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// asObject reports whether x is object-shaped and returns it as an Object.
// Maps with string keys are accepted and visited in sorted key order.
func asObject(x any) (*Object, bool) {
	switch v := x.(type) {
	case nil:
		return nil, false
	case *Object:
		return v, v != nil
	case Object:
		return &v, true
	case map[string]any:
		o := NewObject()
		for _, k := range slices.Sorted(maps.Keys(v)) {
			o.Set(k, v[k])
		}
		return o, true
	}
	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		}
		return 0
	})
	o := NewObject()
	for _, k := range keys {
		o.Set(k.String(), rv.MapIndex(k).Interface())
	}
	return o, true
}

// asSequence reports whether x is a positional list and returns its items.
// Strings and byte slices are not sequences.
func asSequence(x any) ([]any, bool) {
	switch v := x.(type) {
	case nil, string, []byte, json.RawMessage:
		return nil, false
	case []any:
		return v, true
	}
	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
