// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package build

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// enumRef is an enumerated string backed by a referenced type.
type enumRef struct {
	Ref   string
	Enums []string
}

// anyOf decodes the [{$ref}, {enum}] union of s. It falls back to allOf
// when anyOf is absent and returns nil when neither keyword is present.
func anyOf(s *jsonschema.Schema, path string) (*enumRef, error) {
	members, key := s.AnyOf, "anyOf"
	if members == nil {
		members, key = s.AllOf, "allOf"
	}
	if members == nil {
		return nil, nil
	}
	path += "." + key

	if len(members) != 2 {
		return nil, structural(path, ErrMalformedAnyOf, fmt.Sprintf("expected 2 members, got %d", len(members)))
	}
	ref, enum := members[0], members[1]
	if ref == nil || enum == nil {
		return nil, structural(path, ErrMalformedAnyOf, "members must be objects")
	}
	if ref.Ref == "" {
		return nil, structural(path+"[0]", ErrMissingAnyOfRef)
	}
	if enum.Enum == nil {
		return nil, structural(path+"[1]", ErrMissingAnyOfEnum)
	}

	out := &enumRef{Ref: ref.Ref, Enums: make([]string, 0, len(enum.Enum))}
	for i, v := range enum.Enum {
		str, ok := v.(string)
		if !ok {
			return nil, structural(fmt.Sprintf("%s[1].enum[%d]", path, i), ErrMalformedAnyOf, fmt.Sprintf("enum value %v is not a string", v))
		}
		out.Enums = append(out.Enums, str)
	}
	return out, nil
}
