// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExtractKeyOrder(t *testing.T) {
	raw := []byte(`{
	  "definitions": {
	    "b-def": {
	      "properties": {
	        "tasks": {"type": "array", "items": {"type": "object", "properties": {"z": {}, "y": {}}}},
	        "uuid": {"$ref": "#/definitions/UUIDDatatype"},
	        "nested": {"type": "object", "properties": {"second": {}, "first": {}}}
	      }
	    },
	    "a-def": {"anyOf": [{"properties": {"q": {}, "p": {}}}]}
	  }
	}`)

	order, err := ExtractKeyOrder(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"b-def", "a-def"}, order["definitions"])
	assert.Equal(t, []string{"tasks", "uuid", "nested"}, order["definitions.b-def.properties"])
	assert.Equal(t, []string{"z", "y"}, order["definitions.b-def.properties.tasks.items.properties"])
	assert.Equal(t, []string{"second", "first"}, order["definitions.b-def.properties.nested.properties"])
	assert.Equal(t, []string{"q", "p"}, order["definitions.a-def.anyOf.properties"])
	assert.NotContains(t, order, "definitions.b-def")
}

func TestExtractKeyOrder_Truncated(t *testing.T) {
	_, err := ExtractKeyOrder([]byte(`{"definitions": {"a": `))
	require.Error(t, err)
}

func TestExtractKeyOrder_WrongKind(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantPath string
		wantGot  string
	}{
		{"root array", `[]`, "", "array"},
		{"definitions string", `{"definitions": "x"}`, "definitions", "string"},
		{"definition string", `{"definitions": {"a": "oops"}}`, "definitions.a", "string"},
		{"definition array", `{"definitions": {"a": []}}`, "definitions.a", "array"},
		{"properties array", `{"definitions": {"a": {"properties": []}}}`, "definitions.a.properties", "array"},
		{"property boolean", `{"definitions": {"a": {"properties": {"b": true}}}}`, "definitions.a.properties.b", "boolean"},
		{"nested properties", `{"properties": {"a": {"items": {"properties": {"b": null}}}}}`, "properties.a.items.properties.b", "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractKeyOrder([]byte(tt.raw))
			var ke *KindError
			require.ErrorAs(t, err, &ke)
			assert.Equal(t, tt.wantPath, ke.Path)
			assert.Equal(t, tt.wantGot, ke.Got)
		})
	}

	_, err := ExtractKeyOrder([]byte(`{"definitions": {"a": {"enum": ["x", 1], "default": "y"}}}`))
	require.NoError(t, err)
}

func TestOrderedKeys(t *testing.T) {
	order := map[string][]string{"p": {"c", "a", "gone", "c"}}
	m := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4}

	assert.Equal(t, []string{"c", "a", "b", "d"}, OrderedKeys(order, "p", m))
	assert.Equal(t, []string{"a", "b", "c", "d"}, OrderedKeys(order, "missing", m))
	assert.Empty(t, OrderedKeys(order, "p", map[string]int{}))
}

func TestYAMLToJSON(t *testing.T) {
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(`
b: {type: string}
a: {enum: [x, true, null, 1.5, "2"]}
anchor: &k {z: 0x10}
alias: *k
`), &node))

	raw, err := YAMLToJSON(&node)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":{"type":"string"},"a":{"enum":["x",true,null,1.5,"2"]},"anchor":{"z":16},"alias":{"z":16}}`, string(raw))

	order, err := ExtractKeyOrder(append([]byte(`{"properties":`), append(raw, '}')...))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "anchor", "alias"}, order["properties"])
}

func TestIsDefinitionRef(t *testing.T) {
	assert.True(t, IsDefinitionRef("#/definitions/UUIDDatatype"))
	assert.False(t, IsDefinitionRef("#assembly_oscal-ap_assessment-plan"))
	assert.False(t, IsDefinitionRef(""))
}
