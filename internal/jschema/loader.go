// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("format not supported")

// Document is a loaded schema file.
type Document struct {
	// Path is the file path the document was loaded from.
	Path string
	// Raw is the document in JSON form.
	Raw []byte
	// Schema is the typed root schema.
	Schema *jsonschema.Schema
	// KeyOrder maps a dot-joined key path to the declared key order of the
	// object found there. See ExtractKeyOrder.
	KeyOrder map[string][]string
}

// Keys returns the keys of m in declared order. See OrderedKeys.
func (d *Document) Keys(path string, m map[string]*jsonschema.Schema) []string {
	return OrderedKeys(d.KeyOrder, path, m)
}

// Loader loads schemas from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads and parses a schema file.
// The format is determined from the file extension.
func (l *Loader) LoadFile(filePath string) (*Document, error) {
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	doc, err := Decode(data, filePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return doc, nil
}

// Decode parses data as JSON or YAML depending on the extension of filePath.
func Decode(data []byte, filePath string) (*Document, error) {
	var raw []byte
	switch {
	case strings.HasSuffix(filePath, ".yaml") || strings.HasSuffix(filePath, ".yml"):
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		converted, err := YAMLToJSON(&node)
		if err != nil {
			return nil, err
		}
		raw = converted
	case strings.HasSuffix(filePath, ".json"):
		raw = data
	default:
		return nil, ErrUnsupportedFormat
	}

	keyOrder, err := ExtractKeyOrder(raw)
	if err != nil {
		return nil, err
	}
	var schema jsonschema.Schema
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&schema); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}

	return &Document{
		Path:     filePath,
		Raw:      raw,
		Schema:   &schema,
		KeyOrder: keyOrder,
	}, nil
}
