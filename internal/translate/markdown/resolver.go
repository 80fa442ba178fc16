// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package markdown

import (
	"github.com/swanky-oscal/oscal-codegen/internal/model"
	"github.com/swanky-oscal/oscal-codegen/internal/translate"
)

type typeResolver struct{}

func (r *typeResolver) TypeName(t model.TypeDescriptor) string {
	if t.IsNative() {
		return "string"
	}
	return "`" + t.String() + "`"
}

func (r *typeResolver) ArrayType(elemType string) string {
	return "array(" + elemType + ")"
}

// OptionalType leaves the type as is; optionality has its own column.
func (r *typeResolver) OptionalType(elemType string) string {
	return elemType
}

func (r *typeResolver) EnrichField(f *translate.Field) {}
