// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"fmt"
	"strings"
)

// DocWidth is the soft line limit of wrapped documentation.
const DocWidth = 75

// Prepare converts a planned unit into UnitData ready for template execution.
// Fields keep the declared property order; each type is resolved through the
// unit's plan and formatted by resolver.
func Prepare(f File, resolver TypeResolver) (*UnitData, error) {
	u := f.Unit
	if u == nil || u.Object == nil {
		return nil, fmt.Errorf("file in %s has no unit", f.Dir)
	}
	obj := u.Object

	data := &UnitData{
		Name:        obj.Name,
		Namespace:   obj.Namespace.String(),
		ID:          obj.ID,
		Doc:         WrapText(obj.Description, DocWidth),
		Refinement:  obj.StringRefinement,
		HasOptional: obj.HasOptional(),
		Imports:     u.Imports,
		Owner:       f.Owner,
		Extra:       make(map[string]any),
	}
	if f.Owner {
		for _, m := range f.Mods {
			if m != f.Dir.Last() {
				data.Mods = append(data.Mods, m)
			}
		}
	}
	if u.Alias != nil {
		data.AliasType = u.Alias
		data.Alias = resolver.TypeName(*u.Alias)
	}

	for _, p := range obj.Properties {
		t, ok := u.PropertyType(p.Name)
		if !ok {
			return nil, fmt.Errorf("%s.%s: property type not resolved", obj.Name, p.Name)
		}
		typ := resolver.TypeName(t)
		if p.Array {
			typ = resolver.ArrayType(typ)
		}
		if p.Optional {
			typ = resolver.OptionalType(typ)
		}
		field := Field{
			Name:     p.Name,
			JSONName: p.JSONName,
			Type:     typ,
			Optional: p.Optional,
			Array:    p.Array,
			Title:    p.Title,
			Doc:      WrapText(p.Description, DocWidth),
			Enums:    p.Enums,
		}
		resolver.EnrichField(&field)
		data.Fields = append(data.Fields, field)
	}

	return data, nil
}

// WrapText splits s into lines on word boundaries. A line is closed as soon
// as it grows past width; text shorter than width+5 stays on one line.
func WrapText(s string, width int) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if len(s) < width+5 && !strings.Contains(s, "\n") {
		return []string{s}
	}

	var (
		lines []string
		cur   strings.Builder
	)
	for _, word := range strings.Fields(s) {
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
		if cur.Len() > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
