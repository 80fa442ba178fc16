// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package scope

import (
	"github.com/swanky-oscal/oscal-codegen/internal/model"
)

// Usages accumulates the types used by one unit.
type Usages struct {
	builtin string
	root    *Namespace
}

// NewUsages returns an empty accumulator. builtin names the top-level
// namespace that holds the built-in data types.
func NewUsages(builtin string) *Usages {
	return &Usages{builtin: builtin, root: NewNamespace("")}
}

// Add records t. Native types and duplicates are ignored.
func (u *Usages) Add(t model.TypeDescriptor) {
	if t.IsNative() {
		return
	}
	u.root.add(t.Namespace, t.Name)
}

// Root returns the accumulated tree.
func (u *Usages) Root() *Namespace {
	return u.root
}

// Builtins returns the used built-in data type names, sorted.
func (u *Usages) Builtins() []string {
	sub, ok := u.root.Subs[u.builtin]
	if !ok {
		return nil
	}
	out := make([]string, len(sub.Entries))
	copy(out, sub.Entries)
	return out
}

// UseTypes renders the built-in data type import: a bare name for one
// type, a group for several, "" for none.
func (u *Usages) UseTypes() string {
	b := u.Builtins()
	if len(b) == 0 {
		return ""
	}
	return group(b)
}

// UseCrates renders every non-built-in type reachable from the crate root,
// omitting the subtree equal to ctx.
func (u *Usages) UseCrates(ctx model.Path) string {
	return u.root.useCrates(ctx, nil, u.builtin)
}

// UseSupers renders the types found at ns or below it, relative to ns,
// omitting the unit's own name self.
func (u *Usages) UseSupers(ns model.Path, self string) string {
	return u.root.useSupers(ns, self, nil)
}

// Disjoint returns the namespaces holding used types that share no
// lineage with ns, excluding the built-in namespace.
func (u *Usages) Disjoint(ns model.Path) []model.Path {
	var out []model.Path
	u.root.disjoint(ns, nil, u.builtin, &out)
	return out
}
