// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package scope computes the import statements a generated unit needs from
// the set of types it uses.
//
// Used types are accumulated into a namespace tree. The tree is then
// rendered three ways relative to the unit's own namespace: built-in data
// types, types reached through the crate root, and types reached through
// the unit's own module or its children.
package scope

import (
	"maps"
	"slices"
	"strings"

	"github.com/swanky-oscal/oscal-codegen/internal/model"
)

// Relation is the position of a namespace relative to a reference namespace.
type Relation int

const (
	// Unrelated namespaces share no lineage.
	Unrelated Relation = iota
	// Ancestor namespaces are proper prefixes of the reference.
	Ancestor
	// Equal namespaces match the reference.
	Equal
	// Descendant namespaces extend the reference.
	Descendant
)

func (r Relation) String() string {
	switch r {
	case Ancestor:
		return "ancestor"
	case Equal:
		return "equal"
	case Descendant:
		return "descendant"
	default:
		return "unrelated"
	}
}

// Cmp classifies ns relative to ref by segment prefix. The root is an
// ancestor of every non-root namespace.
func Cmp(ns, ref model.Path) Relation {
	n := min(len(ns), len(ref))
	if !ns[:n].Equal(ref[:n]) {
		return Unrelated
	}
	switch {
	case len(ns) < len(ref):
		return Ancestor
	case len(ns) > len(ref):
		return Descendant
	default:
		return Equal
	}
}

// Namespace is one node of a usage tree: the type names used directly in
// it and its child namespaces.
type Namespace struct {
	Name    string
	Entries []string // sorted
	Subs    map[string]*Namespace
}

// NewNamespace returns an empty node called name.
func NewNamespace(name string) *Namespace {
	return &Namespace{Name: name, Subs: make(map[string]*Namespace)}
}

func (n *Namespace) add(p model.Path, name string) {
	if len(p) == 0 {
		if name == "" {
			return
		}
		if i, found := slices.BinarySearch(n.Entries, name); !found {
			n.Entries = slices.Insert(n.Entries, i, name)
		}
		return
	}
	sub, ok := n.Subs[p[0]]
	if !ok {
		sub = NewNamespace(p[0])
		n.Subs[p[0]] = sub
	}
	sub.add(p[1:], name)
}

func (n *Namespace) keys() []string {
	return slices.Sorted(maps.Keys(n.Subs))
}

func (n *Namespace) path(parent model.Path) model.Path {
	if n.Name == "" {
		return parent
	}
	return parent.Child(n.Name)
}

func group(parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (n *Namespace) useCrates(ctx, parent model.Path, builtin string) string {
	ns := n.path(parent)
	if len(ctx) > 0 && ns.Equal(ctx) {
		return ""
	}
	parts := slices.Clone(n.Entries)
	for _, key := range n.keys() {
		if len(ns) == 0 && key == builtin {
			continue
		}
		if s := n.Subs[key].useCrates(ctx, ns, builtin); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	if n.Name != "" {
		return n.Name + model.Separator + group(parts)
	}
	return group(parts)
}

func (n *Namespace) useSupers(ref model.Path, self string, parent model.Path) string {
	ns := n.path(parent)
	rel := Cmp(ns, ref)
	switch rel {
	case Unrelated:
		return ""
	case Ancestor:
		for _, key := range n.keys() {
			if Cmp(ns.Child(key), ref) != Unrelated {
				return n.Subs[key].useSupers(ref, self, ns)
			}
		}
		return ""
	}

	var parts []string
	for _, e := range n.Entries {
		if e != "" && e != self {
			parts = append(parts, e)
		}
	}
	for _, key := range n.keys() {
		if s := n.Subs[key].useSupers(ref, self, ns); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	if rel == Equal {
		return group(parts)
	}
	return n.Name + model.Separator + group(parts)
}

func (n *Namespace) disjoint(ref, parent model.Path, builtin string, out *[]model.Path) {
	ns := n.path(parent)
	if len(n.Entries) > 0 && len(ns) > 0 && Cmp(ns, ref) == Unrelated {
		*out = append(*out, ns)
	}
	for _, key := range n.keys() {
		if len(ns) == 0 && key == builtin {
			continue
		}
		n.Subs[key].disjoint(ref, ns, builtin, out)
	}
}
