// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"iter"
	"maps"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// RefResolver resolves $ref strings to schemas.
// Return nil if the ref cannot be resolved.
type RefResolver func(ref string) *jsonschema.Schema

// DefinitionResolver returns a RefResolver for "#/definitions/<name>" refs
// into root.
func DefinitionResolver(root *jsonschema.Schema) RefResolver {
	return func(ref string) *jsonschema.Schema {
		if !IsDefinitionRef(ref) || root == nil {
			return nil
		}
		return root.Definitions[ref[len(DefinitionsPrefix):]]
	}
}

// Traverse returns an iterator over all schemas in the tree, parents
// before children and map members in key order. Cycles are cut by
// tracking visited schemas. $ref links are not followed.
func Traverse(schema *jsonschema.Schema) iter.Seq[*jsonschema.Schema] {
	return func(yield func(*jsonschema.Schema) bool) {
		visited := make(map[*jsonschema.Schema]struct{})
		traverseWithVisited(schema, yield, visited)
	}
}

func traverseWithVisited(schema *jsonschema.Schema, yield func(*jsonschema.Schema) bool, visited map[*jsonschema.Schema]struct{}) bool {
	if schema == nil {
		return true
	}
	if _, ok := visited[schema]; ok {
		return true
	}
	visited[schema] = struct{}{}

	if !yield(schema) {
		return false
	}

	for _, s := range children(schema) {
		if !traverseWithVisited(s, yield, visited) {
			return false
		}
	}
	return true
}

func children(s *jsonschema.Schema) []*jsonschema.Schema {
	var out []*jsonschema.Schema

	// Objects
	out = appendSorted(out, s.Properties)
	out = appendSorted(out, s.PatternProperties)
	out = append(out, s.AdditionalProperties, s.PropertyNames, s.UnevaluatedProperties)

	// Arrays
	out = append(out, s.Items)
	out = append(out, s.PrefixItems...)
	out = append(out, s.AdditionalItems, s.Contains, s.UnevaluatedItems)

	// Logic
	out = append(out, s.AllOf...)
	out = append(out, s.AnyOf...)
	out = append(out, s.OneOf...)
	out = append(out, s.Not)

	// Conditional
	out = append(out, s.If, s.Then, s.Else)
	out = appendSorted(out, s.DependentSchemas)

	// Other
	out = append(out, s.ContentSchema)
	out = appendSorted(out, s.Defs)
	out = appendSorted(out, s.Definitions)
	return out
}

func appendSorted(out []*jsonschema.Schema, m map[string]*jsonschema.Schema) []*jsonschema.Schema {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		out = append(out, m[k])
	}
	return out
}

// Refs returns every distinct $ref value in the tree, sorted.
func Refs(schema *jsonschema.Schema) []string {
	seen := make(map[string]struct{})
	for s := range Traverse(schema) {
		if s.Ref != "" {
			seen[s.Ref] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// MissingDefinitions returns every "#/definitions/<name>" reference in root
// whose definition root does not declare, sorted.
func MissingDefinitions(root *jsonschema.Schema) []string {
	resolve := DefinitionResolver(root)
	var out []string
	for _, ref := range Refs(root) {
		if IsDefinitionRef(ref) && resolve(ref) == nil {
			out = append(out, ref)
		}
	}
	return out
}
