// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package model

// StringRefinement carries string-specific keywords of a definition.
type StringRefinement struct {
	Format          string `json:"format,omitempty"`
	Pattern         string `json:"pattern,omitempty"`
	ContentEncoding string `json:"content_encoding,omitempty"`
}

// IsZero reports whether no refinement keyword is set.
func (s StringRefinement) IsZero() bool {
	return s == StringRefinement{}
}

// Property is one member of an object.
type Property struct {
	// Name is the snake_case field name.
	Name string `json:"name"`
	// JSONName is the key as written in the schema document.
	JSONName    string        `json:"json_name"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Type        TypeReference `json:"type"`
	Optional    bool          `json:"optional"`
	Array       bool          `json:"array"`
	// Enums lists allowed literal values for enumerated string references.
	Enums []string `json:"enums,omitempty"`
}

// ObjectNode is the model of one definition or inline object schema.
type ObjectNode struct {
	Namespace   Path   `json:"namespace"`
	Name        string `json:"name"`
	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
	// Type is the JSON type keyword of the definition, if any.
	Type string `json:"type,omitempty"`
	// Alias is set when the object is a wrapper around another type.
	Alias            string            `json:"alias,omitempty"`
	StringRefinement *StringRefinement `json:"string_refinement,omitempty"`
	Properties       []Property        `json:"properties,omitempty"`
}

// Descriptor returns the type descriptor declared by o.
func (o *ObjectNode) Descriptor() TypeDescriptor {
	return TypeDescriptor{Namespace: o.Namespace, Name: o.Name}
}

// IsAlias reports whether o wraps another type instead of declaring properties.
func (o *ObjectNode) IsAlias() bool {
	return o.Alias != ""
}

// SetProperty appends p, replacing a property of the same name in place.
func (o *ObjectNode) SetProperty(p Property) {
	for i := range o.Properties {
		if o.Properties[i].Name == p.Name {
			o.Properties[i] = p
			return
		}
	}
	o.Properties = append(o.Properties, p)
}

// Property returns the property called name.
func (o *ObjectNode) Property(name string) (Property, bool) {
	for _, p := range o.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// HasOptional reports whether any property is optional.
func (o *ObjectNode) HasOptional() bool {
	for _, p := range o.Properties {
		if p.Optional {
			return true
		}
	}
	return false
}

// Schema is the root of the parsed document.
type Schema struct {
	SchemaURI string `json:"schema"`
	ID        string `json:"id"`
	Version   string `json:"version"`
	Comment   string `json:"comment"`
	Tree      *Tree  `json:"-"`
}
