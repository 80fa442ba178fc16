// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package names decodes schema definition keys into namespace placement
// and converts between the naming conventions used by the generator.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultModelPrefix marks definition keys that carry a namespace qualifier.
const DefaultModelPrefix = "oscal-complete-"

// Delimiter separates the outer and inner parts of a compound key.
const Delimiter = ":"

// Entry is the placement decoded from a definition key.
type Entry struct {
	// Outer is the snake_case outer namespace. Empty for bare keys.
	Outer string
	// Inner is the snake_case inner segment, used as the entry key.
	Inner string
	// TypeName is the declared type name of the definition.
	TypeName string
}

// IsBare reports whether the entry came from a key without a namespace qualifier.
func (e Entry) IsBare() bool {
	return e.Outer == ""
}

// Segments returns the namespace path of the entry.
func (e Entry) Segments() []string {
	if e.IsBare() {
		return []string{e.Inner}
	}
	return []string{e.Outer, e.Inner}
}

// Normalizer decodes definition keys for a given model prefix.
type Normalizer struct {
	Prefix string
}

// New returns a Normalizer for prefix. An empty prefix selects DefaultModelPrefix.
func New(prefix string) Normalizer {
	if prefix == "" {
		prefix = DefaultModelPrefix
	}
	return Normalizer{Prefix: prefix}
}

// IsCompound reports whether key starts with the model prefix and contains the delimiter.
func (n Normalizer) IsCompound(key string) bool {
	return strings.HasPrefix(key, n.Prefix) && strings.Contains(key, Delimiter)
}

// Normalize decodes key into its placement and declared type name.
//
//	"oscal-complete-oscal-ap:assessment-plan" -> {oscal_ap, assessment_plan, AssessmentPlan}
//	"Foo"                                     -> {"", foo, Foo}
func (n Normalizer) Normalize(key string) Entry {
	if n.IsCompound(key) {
		parts := strings.Split(strings.TrimPrefix(key, n.Prefix), Delimiter)
		outer, inner := Snake(parts[0]), Snake(parts[1])
		if outer != "" && inner != "" {
			return Entry{Outer: outer, Inner: inner, TypeName: Pascal(parts[1])}
		}
	}
	return Entry{Inner: Snake(key), TypeName: key}
}

// Snake converts name to snake_case.
func Snake(name string) string {
	return strings.Join(lowerAll(words(name)), "_")
}

// Pascal converts name to PascalCase.
func Pascal(name string) string {
	caser := cases.Title(language.Und)
	var b strings.Builder
	for _, w := range words(name) {
		b.WriteString(caser.String(w))
	}
	return b.String()
}

// Singular strips one trailing plural "s" from name.
func Singular(name string) string {
	return strings.TrimSuffix(name, "s")
}

// ItemName derives the entry name of an array's inline item object.
// An explicit item title wins over the singularized property name.
func ItemName(property, title string) string {
	if title != "" {
		return Snake(title)
	}
	return Singular(Snake(property))
}

func lowerAll(ws []string) []string {
	for i, w := range ws {
		ws[i] = strings.ToLower(w)
	}
	return ws
}

// words splits name on separators, lower-to-upper transitions, and the
// end of an upper-case run ("UUIDDatatype" -> "UUID", "Datatype").
func words(name string) []string {
	var (
		out []string
		cur []rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	rs := []rune(name)
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return out
}
