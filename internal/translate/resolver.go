// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import "github.com/swanky-oscal/oscal-codegen/internal/model"

// TypeResolver converts resolved type descriptors to target-language type strings.
// Each translator implements this interface to control how units map to its output format.
type TypeResolver interface {
	// TypeName returns the type string of a resolved descriptor.
	TypeName(t model.TypeDescriptor) string

	// ArrayType wraps an element type string in an array type.
	ArrayType(elemType string) string

	// OptionalType wraps a type string for an optional property.
	OptionalType(elemType string) string

	// EnrichField applies language-specific post-processing to a resolved field.
	// It may rename the field, rewrite its type, or set its Tag.
	// Called once per field after type resolution, before template execution.
	EnrichField(f *Field)
}
