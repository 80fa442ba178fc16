// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package model

// NativeString is the name of the host language's string type.
const NativeString = "String"

// TypeDescriptor identifies a type by its namespace and declared name.
// A descriptor with an empty namespace is native to the target language.
type TypeDescriptor struct {
	Namespace Path   `json:"namespace,omitempty"`
	Name      string `json:"name"`
}

// String returns the fully qualified "ns::Name" form.
func (t TypeDescriptor) String() string {
	if len(t.Namespace) == 0 {
		return t.Name
	}
	return t.Namespace.String() + Separator + t.Name
}

// IsNative reports whether t lives in the root namespace.
func (t TypeDescriptor) IsNative() bool {
	return len(t.Namespace) == 0
}

// TypeReference is either a symbolic identifier resolved through the
// registry, or an inline descriptor.
type TypeReference struct {
	Ref    string          `json:"ref,omitempty"`
	Inline *TypeDescriptor `json:"inline,omitempty"`
}

// RefTo returns a symbolic reference.
func RefTo(id string) TypeReference {
	return TypeReference{Ref: id}
}

// InlineType returns a reference carrying t directly.
func InlineType(t TypeDescriptor) TypeReference {
	return TypeReference{Inline: &t}
}

// NativeStringType returns an inline reference to the native string type.
func NativeStringType() TypeReference {
	return InlineType(TypeDescriptor{Name: NativeString})
}

// IsSymbolic reports whether r must be resolved through the registry.
func (r TypeReference) IsSymbolic() bool {
	return r.Inline == nil
}

func (r TypeReference) String() string {
	if r.Inline != nil {
		return r.Inline.String()
	}
	return r.Ref
}
