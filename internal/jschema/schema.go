// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jschema provides JSON Schema loading, key order extraction, and
// traversal utilities.
package jschema

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
	"gopkg.in/yaml.v3"
)

// DefinitionsPrefix starts every reference to a top-level definition.
const DefinitionsPrefix = "#/definitions/"

// IsDefinitionRef reports whether ref points into the document's definitions.
func IsDefinitionRef(ref string) bool {
	return strings.HasPrefix(ref, DefinitionsPrefix)
}

// KindError reports a JSON value of the wrong kind where a schema object
// or a map of schemas is expected.
type KindError struct {
	// Path is the dot-joined key path of the value.
	Path string
	// Got names the kind found, such as "string" or "array".
	Got string
}

func (e *KindError) Error() string {
	path := e.Path
	if path == "" {
		path = "document root"
	}
	return fmt.Sprintf("%s: expected object, found %s", path, e.Got)
}

// ExtractKeyOrder scans raw JSON and records the key order of every object
// found at "definitions" or at a path ending in ".properties". Paths are the
// dot-joined object keys leading to the object; array elements share the
// path of their array.
//
// The document root, those maps and each of their members must be JSON
// objects; any other kind fails with a *KindError.
func ExtractKeyOrder(raw []byte) (map[string][]string, error) {
	result := make(map[string][]string)
	dec := jsontext.NewDecoder(bytes.NewReader(raw))
	if err := extractOrder(dec, "", true, result); err != nil {
		var ke *KindError
		if errors.As(err, &ke) {
			return nil, ke
		}
		return nil, fmt.Errorf("failed to extract key order: %w", err)
	}
	return result, nil
}

func isSchemaMap(path string) bool {
	return path == "definitions" || path == "properties" || strings.HasSuffix(path, ".properties")
}

func kindName(k jsontext.Kind) string {
	switch k {
	case '[':
		return "array"
	case '"':
		return "string"
	case '0':
		return "number"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	}
	return "object"
}

// extractOrder reads one value at path. object requires the value to be a
// JSON object.
func extractOrder(dec *jsontext.Decoder, path string, object bool, out map[string][]string) error {
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	schemaMap := isSchemaMap(path)
	if (object || schemaMap) && tok.Kind() != '{' {
		return &KindError{Path: path, Got: kindName(tok.Kind())}
	}
	switch tok.Kind() {
	case '{':
		var keys []string
		for dec.PeekKind() != '}' {
			keyTok, err := dec.ReadToken()
			if err != nil {
				return err
			}
			key := keyTok.String()
			keys = append(keys, key)
			next := key
			if path != "" {
				next = path + "." + key
			}
			if err := extractOrder(dec, next, schemaMap, out); err != nil {
				return err
			}
		}
		if _, err := dec.ReadToken(); err != nil {
			return err
		}
		if schemaMap {
			out[path] = keys
		}
	case '[':
		for dec.PeekKind() != ']' {
			if err := extractOrder(dec, path, false, out); err != nil {
				return err
			}
		}
		if _, err := dec.ReadToken(); err != nil {
			return err
		}
	}
	return nil
}

// OrderedKeys returns the keys of m in the order recorded at path. Keys
// without a recorded position follow in sorted order.
func OrderedKeys[V any](order map[string][]string, path string, m map[string]V) []string {
	out := make([]string, 0, len(m))
	seen := make(map[string]struct{}, len(m))
	for _, k := range order[path] {
		if _, ok := m[k]; !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if _, ok := seen[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// YAMLToJSON re-encodes a YAML node tree as JSON, keeping mapping key order.
func YAMLToJSON(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf)
	if err := writeYAMLNode(enc, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeYAMLNode(enc *jsontext.Encoder, node *yaml.Node) error {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return enc.WriteToken(jsontext.Null)
		}
		return writeYAMLNode(enc, node.Content[0])
	case yaml.AliasNode:
		return writeYAMLNode(enc, node.Alias)
	case yaml.MappingNode:
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			if err := enc.WriteToken(jsontext.String(node.Content[i].Value)); err != nil {
				return err
			}
			if err := writeYAMLNode(enc, node.Content[i+1]); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndObject)
	case yaml.SequenceNode:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for _, item := range node.Content {
			if err := writeYAMLNode(enc, item); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)
	case yaml.ScalarNode:
		return enc.WriteToken(scalarToken(node))
	default:
		return fmt.Errorf("unsupported YAML node kind %d at line %d", node.Kind, node.Line)
	}
}

func scalarToken(node *yaml.Node) jsontext.Token {
	switch node.ShortTag() {
	case "!!null":
		return jsontext.Null
	case "!!bool":
		if b, err := strconv.ParseBool(node.Value); err == nil {
			return jsontext.Bool(b)
		}
	case "!!int":
		if n, err := strconv.ParseInt(node.Value, 0, 64); err == nil {
			return jsontext.Int(n)
		}
	case "!!float":
		if f, err := strconv.ParseFloat(node.Value, 64); err == nil {
			return jsontext.Float(f)
		}
	}
	return jsontext.String(node.Value)
}
