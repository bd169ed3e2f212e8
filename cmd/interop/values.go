package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pwnedgod/interop"
)

// valueCodec moves generic documents through mid-ends that cannot take an
// arbitrary Go value directly.
type valueCodec struct {
	pack   func(doc any) (*interop.Interop, error)
	unpack func(i *interop.Interop) (any, error)
}

var valueCodecs = map[interop.Origin]valueCodec{}

func packValue(origin interop.Origin, doc any) (*interop.Interop, error) {
	if c, ok := valueCodecs[origin]; ok {
		return c.pack(doc)
	}
	return interop.New(origin, doc)
}

func unpackValue(i *interop.Interop) (any, error) {
	if c, ok := valueCodecs[i.Origin()]; ok {
		return c.unpack(i)
	}

	var value any
	if err := interop.Extract(i, i.Origin(), &value); err != nil {
		return nil, err
	}
	return value, nil
}

// readDocument parses YAML, which also covers JSON input.
func readDocument(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	return normalize(doc), nil
}

// normalize turns the map[any]any that YAML produces for non-string keys into
// map[string]any, which every mid-end and encoding/json can handle.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for key, value := range v {
			v[key] = normalize(value)
		}
		return v
	case map[any]any:
		m := make(map[string]any, len(v))
		for key, value := range v {
			m[fmt.Sprint(key)] = normalize(value)
		}
		return m
	case []any:
		for n, value := range v {
			v[n] = normalize(value)
		}
		return v
	}
	return v
}

func writeJSONLine(w io.Writer, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("write json: %w", err)
	}

	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
