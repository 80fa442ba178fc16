// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package build

import (
	"io/fs"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swanky-oscal/oscal-codegen/internal/diag"
	"github.com/swanky-oscal/oscal-codegen/internal/jschema"
	"github.com/swanky-oscal/oscal-codegen/internal/model"
	"github.com/swanky-oscal/oscal-codegen/internal/resolver"
)

const header = `"$schema": "http://json-schema.org/draft-07/schema#",
  "$id": "http://csrc.nist.gov/ns/oscal/1.0/1.1.2/oscal-complete-schema.json",
  "$comment": "OSCAL Unified Model of Models: JSON Schema",
  "type": "object",`

func document(t *testing.T, definitions string) *jschema.Document {
	t.Helper()
	doc, err := jschema.Decode([]byte("{"+header+`"definitions": {`+definitions+"}}"), "schema.json")
	require.NoError(t, err)
	return doc
}

func parse(t *testing.T, definitions string) (*model.Schema, *resolver.Registry, *diag.Reporter, error) {
	t.Helper()
	reg := resolver.NewBuilder("", nil)
	rep := diag.NewReporter(nil)
	schema, err := Parse(document(t, definitions), reg, Options{Reporter: rep, Skip: DefaultSkip})
	return schema, reg.Freeze(), rep, err
}

const assessmentPlan = `
  "UUIDDatatype": {"type": "string", "format": "uuid"},
  "oscal-complete-oscal-ap:assessment-plan": {
    "title": "Security Assessment Plan (SAP)",
    "description": "An assessment plan.",
    "$id": "#assembly_oscal-ap_assessment-plan",
    "type": "object",
    "properties": {
      "uuid": {"title": "Assessment Plan Universally Unique Identifier", "$ref": "#/definitions/UUIDDatatype"},
      "tasks": {
        "type": "array",
        "minItems": 1,
        "items": {
          "type": "object",
          "properties": {
            "uuid": {"$ref": "#/definitions/UUIDDatatype"},
            "title": {"type": "string"}
          },
          "required": ["uuid"]
        }
      }
    },
    "required": ["uuid"]
  }`

func TestParse_AssessmentPlan(t *testing.T) {
	schema, reg, _, err := parse(t, assessmentPlan)
	require.NoError(t, err)

	assert.Equal(t, "1.1.2", schema.Version)
	assert.Equal(t, "OSCAL Unified Model of Models: JSON Schema", schema.Comment)
	assert.Equal(t, []string{"oscal_ap"}, schema.Tree.Keys())

	sub, ok := schema.Tree.Lookup(model.Path{"oscal_ap", "assessment_plan"})
	require.True(t, ok)
	assert.Equal(t, []string{"task", "assessment_plan"}, sub.Keys())

	plan, err := sub.Object("assessment_plan")
	require.NoError(t, err)
	assert.Equal(t, "AssessmentPlan", plan.Name)
	assert.Equal(t, model.Path{"oscal_ap", "assessment_plan"}, plan.Namespace)
	require.Len(t, plan.Properties, 2)

	uuid := plan.Properties[0]
	assert.Equal(t, "uuid", uuid.Name)
	assert.False(t, uuid.Optional)
	assert.Equal(t, model.RefTo("#/definitions/UUIDDatatype"), uuid.Type)

	tasks := plan.Properties[1]
	assert.Equal(t, "tasks", tasks.Name)
	assert.True(t, tasks.Array)
	assert.True(t, tasks.Optional)
	require.NotNil(t, tasks.Type.Inline)
	assert.Equal(t, "oscal_ap::assessment_plan::task::Task", tasks.Type.Inline.String())

	taskTree, err := sub.Subtree("task")
	require.NoError(t, err)
	assert.True(t, taskTree.IsReducible("task"))
	task, err := taskTree.Object("task")
	require.NoError(t, err)
	assert.Equal(t, []string{"uuid", "title"}, []string{task.Properties[0].Name, task.Properties[1].Name})
	assert.False(t, task.Properties[0].Optional)
	assert.True(t, task.Properties[1].Optional)
	assert.Equal(t, model.NativeStringType(), task.Properties[1].Type)

	got, ok := reg.Lookup("#assembly_oscal-ap_assessment-plan")
	require.True(t, ok)
	assert.Equal(t, plan.Descriptor(), got)

	assert.Nil(t, schema.Tree.Objects()[0].StringRefinement)
}

func TestParse_SkipsDatatypesAndDirectives(t *testing.T) {
	schema, _, _, err := parse(t, `
  "StringDatatype": {"type": "string"},
  "json-schema-directive": {"type": "string"},
  "Foo": {"type": "object", "properties": {"name": {"type": "string"}}}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"foo"}, schema.Tree.Keys())
	sub, err := schema.Tree.Subtree("foo")
	require.NoError(t, err)
	foo, err := sub.Object("foo")
	require.NoError(t, err)
	assert.Equal(t, "Foo", foo.Name)
	assert.Equal(t, model.Path{"foo"}, foo.Namespace)
}

func TestParse_EnumeratedReference(t *testing.T) {
	schema, _, _, err := parse(t, `
  "oscal-complete-oscal-metadata:property": {
    "type": "object",
    "properties": {
      "class": {
        "anyOf": [
          {"$ref": "#/definitions/TokenDatatype"},
          {"enum": ["a", "b"]}
        ]
      },
      "legacy": {
        "allOf": [
          {"$ref": "#/definitions/StringDatatype"},
          {"enum": ["x"]}
        ]
      }
    }
  }`)
	require.NoError(t, err)

	obj := schema.Tree.Objects()[0]
	class, ok := obj.Property("class")
	require.True(t, ok)
	assert.Equal(t, model.RefTo("#/definitions/TokenDatatype"), class.Type)
	assert.Equal(t, []string{"a", "b"}, class.Enums)

	legacy, ok := obj.Property("legacy")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, legacy.Enums)
}

func TestParse_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		props   string
		wantErr error
		path    string
	}{
		{
			name:    "anyOf with three members",
			props:   `"p": {"anyOf": [{"$ref": "#/definitions/A"}, {"enum": ["x"]}, {"type": "string"}]}`,
			wantErr: ErrMalformedAnyOf,
			path:    "definitions.Foo.properties.p.anyOf",
		},
		{
			name:    "anyOf without reference",
			props:   `"p": {"anyOf": [{"type": "string"}, {"enum": ["x"]}]}`,
			wantErr: ErrMissingAnyOfRef,
			path:    "definitions.Foo.properties.p.anyOf[0]",
		},
		{
			name:    "anyOf without enumeration",
			props:   `"p": {"anyOf": [{"$ref": "#/definitions/A"}, {"type": "string"}]}`,
			wantErr: ErrMissingAnyOfEnum,
			path:    "definitions.Foo.properties.p.anyOf[1]",
		},
		{
			name:    "anyOf with non-string enum",
			props:   `"p": {"anyOf": [{"$ref": "#/definitions/A"}, {"enum": ["x", 3]}]}`,
			wantErr: ErrMalformedAnyOf,
			path:    "definitions.Foo.properties.p.anyOf[1].enum[1]",
		},
		{
			name:    "array without items",
			props:   `"p": {"type": "array"}`,
			wantErr: ErrMalformedArray,
			path:    "definitions.Foo.properties.p.items",
		},
		{
			name:    "array items without type",
			props:   `"p": {"type": "array", "items": {"description": "untyped"}}`,
			wantErr: ErrMalformedArray,
			path:    "definitions.Foo.properties.p.items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := parse(t, `"Foo": {"type": "object", "properties": {`+tt.props+`}}`)
			require.ErrorIs(t, err, tt.wantErr)
			var se *StructuralError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.path, se.Path)
		})
	}
}

func TestParse_MissingRootFields(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
		err  error
	}{
		{
			name: "missing $schema",
			doc:  `{"$id": "x", "$comment": "c", "definitions": {}}`,
			path: "$schema",
			err:  ErrMissingField,
		},
		{
			name: "missing $id",
			doc:  `{"$schema": "s", "$comment": "c", "definitions": {}}`,
			path: "$id",
			err:  ErrMissingField,
		},
		{
			name: "unparseable version",
			doc:  `{"$schema": "s", "$id": "http://example.com/schema.json", "$comment": "c", "definitions": {}}`,
			path: "$id",
			err:  ErrVersionParse,
		},
		{
			name: "missing $comment",
			doc:  `{"$schema": "s", "$id": "http://csrc.nist.gov/ns/oscal/1.0/1.1.2/oscal-complete-schema.json", "definitions": {}}`,
			path: "$comment",
			err:  ErrMissingField,
		},
		{
			name: "missing definitions",
			doc:  `{"$schema": "s", "$id": "http://csrc.nist.gov/ns/oscal/1.0/1.1.2/oscal-complete-schema.json", "$comment": "c"}`,
			path: "definitions",
			err:  ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := jschema.Decode([]byte(tt.doc), "schema.json")
			require.NoError(t, err)
			_, err = Parse(doc, resolver.NewBuilder("", nil), Options{})
			require.ErrorIs(t, err, tt.err)
			var se *StructuralError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.path, se.Path)
		})
	}
}

func TestDecode_WrongKind(t *testing.T) {
	tests := []struct {
		name string
		defs string
		path string
	}{
		{"definitions string", `"definitions": "oops"`, "definitions"},
		{"definitions array", `"definitions": []`, "definitions"},
		{"definition string", `"definitions": {"oscal-complete-a:b": "oops"}`, "definitions.oscal-complete-a:b"},
		{"definition array", `"definitions": {"oscal-complete-a:b": []}`, "definitions.oscal-complete-a:b"},
		{"properties array", `"definitions": {"Foo": {"type": "object", "properties": []}}`, "definitions.Foo.properties"},
		{"property string", `"definitions": {"Foo": {"type": "object", "properties": {"p": "x"}}}`, "definitions.Foo.properties.p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte("{"+header+tt.defs+"}"), "schema.json")
			require.ErrorIs(t, err, ErrObjectExpected)
			var se *StructuralError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.path, se.Path)
			assert.NotContains(t, err.Error(), "Go struct")
		})
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"ok.json":  &fstest.MapFile{Data: []byte("{" + header + `"definitions": {}}`)},
		"bad.json": &fstest.MapFile{Data: []byte("{" + header + `"definitions": {"Foo": 1}}`)},
	}

	doc, err := Load(fsys, "ok.json")
	require.NoError(t, err)
	assert.Equal(t, "ok.json", doc.Path)

	_, err = Load(fsys, "bad.json")
	var se *StructuralError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "definitions.Foo", se.Path)
	assert.Contains(t, err.Error(), "found number")

	_, err = Load(fsys, "missing.json")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParseVersion(t *testing.T) {
	pattern := regexp.MustCompile(DefaultIDPattern)

	v, err := ParseVersion("http://csrc.nist.gov/ns/oscal/1.0/1.0.4/oscal-complete-schema.json", pattern)
	require.NoError(t, err)
	assert.Equal(t, "1.0.4", v)

	_, err = ParseVersion("http://csrc.nist.gov/ns/oscal/1.0/0.1.2/oscal-complete-schema.json", pattern)
	require.ErrorIs(t, err, ErrVersionParse)

	custom := regexp.MustCompile(`/v(?P<version>\d+\.\d+\.\d+)/`)
	v, err = ParseVersion("https://example.com/v2.3.0/schema.json", custom)
	require.NoError(t, err)
	assert.Equal(t, "2.3.0", v)

	_, err = ParseVersion("x", regexp.MustCompile(`x`))
	require.ErrorIs(t, err, ErrVersionParse)
}

func TestParse_UnhandledKindsAreDiagnosed(t *testing.T) {
	schema, _, rep, err := parse(t, `
  "Foo": {
    "type": "object",
    "properties": {
      "count": {"type": "integer"},
      "numbers": {"type": "array", "items": {"type": "number"}},
      "name": {"type": "string"}
    }
  }`)
	require.NoError(t, err)

	obj := schema.Tree.Objects()[0]
	require.Len(t, obj.Properties, 1)
	assert.Equal(t, "name", obj.Properties[0].Name)

	assert.Equal(t, 1, rep.Count(diag.UnhandledProperty))
	assert.Equal(t, 1, rep.Count(diag.UnhandledItems))
	for _, d := range rep.Diagnostics() {
		assert.Equal(t, diag.Warning, d.Severity)
		assert.True(t, strings.HasPrefix(d.Path, "definitions.Foo.properties."), d.Path)
	}
}

func TestParse_ArrayItemKinds(t *testing.T) {
	schema, _, _, err := parse(t, `
  "oscal-complete-oscal-ap:plan": {
    "type": "object",
    "properties": {
      "links": {"type": "array", "items": {"$ref": "#assembly_link"}},
      "tags": {"type": "array", "items": {"type": "string"}},
      "roles": {"type": "array", "items": {"anyOf": [{"$ref": "#/definitions/TokenDatatype"}, {"enum": ["r"]}]}},
      "assets": {"type": "array", "items": {"title": "Assessment Asset", "type": "object", "properties": {}}}
    }
  }`)
	require.NoError(t, err)

	sub, ok := schema.Tree.Lookup(model.Path{"oscal_ap", "plan"})
	require.True(t, ok)
	assert.Equal(t, []string{"assessment_asset", "plan"}, sub.Keys())

	plan, err := sub.Object("plan")
	require.NoError(t, err)
	require.Len(t, plan.Properties, 4)
	for _, p := range plan.Properties {
		assert.True(t, p.Array, p.Name)
	}
	assert.Equal(t, model.RefTo("#assembly_link"), plan.Properties[0].Type)
	assert.Equal(t, model.NativeStringType(), plan.Properties[1].Type)
	assert.Equal(t, []string{"r"}, plan.Properties[2].Enums)
	assert.Equal(t, "oscal_ap::plan::assessment_asset::AssessmentAsset", plan.Properties[3].Type.Inline.String())
}

func TestParse_NestedObjectProperty(t *testing.T) {
	schema, reg, _, err := parse(t, `
  "oscal-complete-oscal-ar:assessment-results": {
    "$id": "#assembly_results",
    "type": "object",
    "properties": {
      "local-definitions": {
        "$id": "#local",
        "type": "object",
        "properties": {"remarks": {"type": "string"}}
      }
    }
  }`)
	require.NoError(t, err)

	objs := schema.Tree.Objects()
	require.Len(t, objs, 2)
	assert.Equal(t, "LocalDefinitions", objs[0].Name)
	assert.Equal(t, model.Path{"oscal_ar", "assessment_results", "local_definitions"}, objs[0].Namespace)
	assert.Equal(t, "AssessmentResults", objs[1].Name)

	got, ok := reg.Lookup("#local")
	require.True(t, ok)
	assert.Equal(t, objs[0].Descriptor(), got)
}

func TestParse_AliasAndRefinement(t *testing.T) {
	schema, _, _, err := parse(t, `
  "oscal-complete-oscal-metadata:remarks": {
    "$id": "#field_remarks",
    "$ref": "#/definitions/StringDatatype"
  },
  "oscal-complete-oscal-metadata:hash": {
    "type": "string",
    "pattern": "^[0-9a-f]+$",
    "contentEncoding": "base16"
  }`)
	require.NoError(t, err)

	objs := schema.Tree.Objects()
	require.Len(t, objs, 2)
	assert.True(t, objs[0].IsAlias())
	assert.Equal(t, "#/definitions/StringDatatype", objs[0].Alias)
	assert.Nil(t, objs[0].StringRefinement)

	require.NotNil(t, objs[1].StringRefinement)
	assert.Equal(t, "^[0-9a-f]+$", objs[1].StringRefinement.Pattern)
	assert.Equal(t, "base16", objs[1].StringRefinement.ContentEncoding)
}

func TestParse_AliasIgnoresSiblingProperties(t *testing.T) {
	schema, reg, rep, err := parse(t, `
  "oscal-complete-oscal-metadata:remarks": {
    "$id": "#field_remarks",
    "$ref": "#/definitions/StringDatatype",
    "properties": {
      "nested": {"type": "object", "properties": {"a": {"type": "string"}}}
    }
  }`)
	require.NoError(t, err)

	objs := schema.Tree.Objects()
	require.Len(t, objs, 1)
	assert.True(t, objs[0].IsAlias())
	assert.Empty(t, objs[0].Properties)
	assert.Equal(t, 1, rep.Count(diag.RefSiblings))
	_, ok := reg.Lookup("#field_remarks")
	assert.True(t, ok)
}

func TestParse_DuplicateIDLastWriteWins(t *testing.T) {
	_, reg, rep, err := parse(t, `
  "oscal-complete-a:first": {"$id": "#dup", "type": "object"},
  "oscal-complete-b:second": {"$id": "#dup", "type": "object"}`)
	require.NoError(t, err)

	got, ok := reg.Lookup("#dup")
	require.True(t, ok)
	assert.Equal(t, "b::second::Second", got.String())
	assert.Equal(t, 1, rep.Count(diag.DuplicateID))
}

func TestParse_ForwardReferenceRegistered(t *testing.T) {
	_, reg, _, err := parse(t, `
  "oscal-complete-a:user": {"type": "object", "properties": {"group": {"$ref": "#group"}}},
  "oscal-complete-a:group": {"$id": "#group", "type": "object"}`)
	require.NoError(t, err)

	_, ok := reg.Lookup("#group")
	assert.True(t, ok)
}

func TestParse_NameConflict(t *testing.T) {
	_, _, _, err := parse(t, `
  "oscal-complete-a:task": {
    "type": "object",
    "properties": {"task": {"type": "object", "properties": {}}}
  }`)
	require.ErrorIs(t, err, ErrNameConflict)
}
