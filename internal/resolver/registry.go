// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package resolver maps schema type identifiers to type descriptors.
//
// A Builder is populated while the schema tree is constructed and then
// frozen into a read-only Registry that is safe for concurrent lookups.
package resolver

import (
	"maps"
	"slices"

	"github.com/swanky-oscal/oscal-codegen/internal/model"
)

// DefaultNamespace holds the built-in data types.
const DefaultNamespace = "oscal_types"

// DefaultDatatypes are the built-in data type definition names.
var DefaultDatatypes = []string{
	"Base64Datatype",
	"BooleanDatatype",
	"DateDatatype",
	"DateTimeWithTimezoneDatatype",
	"EmailAddressDatatype",
	"IntegerDatatype",
	"NonNegativeIntegerDatatype",
	"PositiveIntegerDatatype",
	"StringDatatype",
	"TokenDatatype",
	"URIDatatype",
	"URIReferenceDatatype",
	"UUIDDatatype",
}

// DefinitionRef returns the reference identifier of a top-level definition.
func DefinitionRef(name string) string {
	return "#/definitions/" + name
}

// Builder accumulates registrations.
type Builder struct {
	namespace string
	datatypes map[string]struct{}
	types     map[string]model.TypeDescriptor
}

// NewBuilder returns a Builder seeded with one entry per data type, mapping
// "#/definitions/<name>" to namespace::<name>. Empty arguments select the
// defaults.
func NewBuilder(namespace string, datatypes []string) *Builder {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if datatypes == nil {
		datatypes = DefaultDatatypes
	}
	b := &Builder{
		namespace: namespace,
		datatypes: make(map[string]struct{}, len(datatypes)),
		types:     make(map[string]model.TypeDescriptor, len(datatypes)),
	}
	for _, name := range datatypes {
		b.datatypes[name] = struct{}{}
		b.types[DefinitionRef(name)] = model.TypeDescriptor{Namespace: model.Path{namespace}, Name: name}
	}
	return b
}

// Namespace returns the namespace holding the built-in data types.
func (b *Builder) Namespace() string {
	return b.namespace
}

// IsDatatype reports whether name is a built-in data type definition.
func (b *Builder) IsDatatype(name string) bool {
	_, ok := b.datatypes[name]
	return ok
}

// Register binds id to t. The last registration wins; the previous
// descriptor is returned when one was replaced.
func (b *Builder) Register(id string, t model.TypeDescriptor) (model.TypeDescriptor, bool) {
	prev, ok := b.types[id]
	b.types[id] = t
	return prev, ok
}

// Freeze returns a read-only copy of the registrations.
func (b *Builder) Freeze() *Registry {
	return &Registry{
		namespace: b.namespace,
		types:     maps.Clone(b.types),
	}
}

// Registry is a frozen identifier to descriptor mapping.
type Registry struct {
	namespace string
	types     map[string]model.TypeDescriptor
}

// Namespace returns the namespace holding the built-in data types.
func (r *Registry) Namespace() string {
	return r.namespace
}

// Lookup returns the descriptor registered for id.
func (r *Registry) Lookup(id string) (model.TypeDescriptor, bool) {
	t, ok := r.types[id]
	return t, ok
}

// Resolve returns the descriptor of ref: the inline descriptor when ref
// carries one, otherwise the registered target of its identifier.
func (r *Registry) Resolve(ref model.TypeReference) (model.TypeDescriptor, bool) {
	if ref.Inline != nil {
		return *ref.Inline, true
	}
	return r.Lookup(ref.Ref)
}

// IsBuiltin reports whether t lives in the built-in data type namespace.
func (r *Registry) IsBuiltin(t model.TypeDescriptor) bool {
	return len(t.Namespace) == 1 && t.Namespace[0] == r.namespace
}

// Len returns the number of registered identifiers.
func (r *Registry) Len() int {
	return len(r.types)
}

// IDs returns the registered identifiers sorted.
func (r *Registry) IDs() []string {
	return slices.Sorted(maps.Keys(r.types))
}
