// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"github.com/swanky-oscal/oscal-codegen/internal/model"
	"github.com/swanky-oscal/oscal-codegen/internal/plan"
)

// UnitData is the complete input passed to a translator template.
type UnitData struct {
	Name      string
	Namespace string
	ID        string
	// Doc is the unit description wrapped for comment output.
	Doc []string
	// Alias is the resolved target type string of an alias unit.
	Alias string
	// AliasType is the resolved descriptor behind Alias.
	AliasType   *model.TypeDescriptor
	Fields      []Field
	HasOptional bool
	Refinement  *model.StringRefinement
	Imports     plan.Imports
	// Owner is set when the unit is its directory's index file.
	Owner bool
	// Mods lists sibling modules declared by an owner file, excluding itself.
	Mods  []string
	Extra map[string]any // translator-specific template data
}

// Field represents a single property of a unit.
type Field struct {
	Name     string // target field name (may be mutated by EnrichField)
	JSONName string // key as written in the schema
	Type     string // fully resolved target type string
	Optional bool
	Array    bool
	Tag      string   // language-specific annotation, e.g. a serde rename attribute
	Title    string   // property title, if any
	Doc      []string // wrapped property description
	Enums    []string // allowed literal values, if enumerated
}
