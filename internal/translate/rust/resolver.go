// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package rust

import (
	"fmt"
	"strings"

	"github.com/swanky-oscal/oscal-codegen/internal/model"
	"github.com/swanky-oscal/oscal-codegen/internal/translate"
)

// reserved field names are prefixed with "_" and renamed back for serde.
var reserved = map[string]bool{
	"type":   true,
	"ref":    true,
	"as":     true,
	"crate":  true,
	"enum":   true,
	"fn":     true,
	"impl":   true,
	"match":  true,
	"mod":    true,
	"self":   true,
	"static": true,
	"struct": true,
	"super":  true,
	"trait":  true,
	"use":    true,
}

// derefTargets maps string-backed data types to the borrowed type they deref to.
var derefTargets = map[string]string{
	"Base64Datatype":               "str",
	"DateDatatype":                 "str",
	"DateTimeWithTimezoneDatatype": "str",
	"EmailAddressDatatype":         "str",
	"StringDatatype":               "str",
	"TokenDatatype":                "str",
	"URIDatatype":                  "str",
	"URIReferenceDatatype":         "str",
	"UUIDDatatype":                 "str",
}

type typeResolver struct{}

func (r *typeResolver) TypeName(t model.TypeDescriptor) string {
	return t.Name
}

func (r *typeResolver) ArrayType(elemType string) string {
	return "Vec<" + elemType + ">"
}

func (r *typeResolver) OptionalType(elemType string) string {
	return "Option<" + elemType + ">"
}

func (r *typeResolver) EnrichField(f *translate.Field) {
	rename := reserved[f.Name] || strings.ReplaceAll(f.Name, "_", "-") != f.JSONName
	if reserved[f.Name] {
		f.Name = "_" + f.Name
	}
	if rename {
		f.Tag = fmt.Sprintf("#[serde(rename = %q)]", f.JSONName)
	}
}
