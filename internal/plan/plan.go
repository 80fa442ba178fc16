// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package plan resolves every object of a schema tree into an emission
// unit: resolved property types plus the imports the unit needs.
package plan

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/swanky-oscal/oscal-codegen/internal/diag"
	"github.com/swanky-oscal/oscal-codegen/internal/model"
	"github.com/swanky-oscal/oscal-codegen/internal/resolver"
	"github.com/swanky-oscal/oscal-codegen/internal/scope"
)

// ErrUnresolved is wrapped by every ResolutionError.
var ErrUnresolved = errors.New("unresolved type reference")

// ResolutionError reports a reference with no registered target.
type ResolutionError struct {
	// Unit is the qualified name of the object being planned.
	Unit string
	// Property is the property holding the reference. Empty for a type alias.
	Property string
	Ref      string
}

func (e *ResolutionError) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("%s: alias %s: %v", e.Unit, e.Ref, ErrUnresolved)
	}
	return fmt.Sprintf("%s.%s: %s: %v", e.Unit, e.Property, e.Ref, ErrUnresolved)
}

func (e *ResolutionError) Unwrap() error {
	return ErrUnresolved
}

// DefaultErrorType is the error type every generated alias unit uses.
var DefaultErrorType = model.TypeDescriptor{Namespace: model.Path{"error"}, Name: "Error"}

// Options tunes planning.
type Options struct {
	// BuiltinNamespace holds the built-in data types. Defaults to the registry's.
	BuiltinNamespace string
	// AliasImports are added to the usages of every alias unit.
	AliasImports []model.TypeDescriptor
	// Concurrency bounds parallel unit planning. Defaults to GOMAXPROCS.
	Concurrency int
	// Reporter receives diagnostics. May be nil.
	Reporter *diag.Reporter
}

// DefaultOptions returns options that import DefaultErrorType into alias units.
func DefaultOptions() Options {
	return Options{AliasImports: []model.TypeDescriptor{DefaultErrorType}}
}

// Imports are the rendered import groups of a unit.
type Imports struct {
	// Builtins lists the built-in data types used, in first-use order.
	Builtins []string `json:"builtins,omitempty"`
	// Types is Builtins rendered as one import body.
	Types string `json:"types,omitempty"`
	// Crates reaches types through the crate root.
	Crates string `json:"crates,omitempty"`
	// Supers reaches types at or below the unit's own namespace.
	Supers string `json:"supers,omitempty"`
}

// Unit is one object ready for emission.
type Unit struct {
	Object *model.ObjectNode
	// Alias is the resolved wrapped type of an alias object.
	Alias *model.TypeDescriptor
	// Resolved maps property name to its resolved type.
	Resolved map[string]model.TypeDescriptor
	Imports  Imports
	// Disjoint lists used namespaces outside the unit's lineage.
	Disjoint []model.Path
}

// PropertyType returns the resolved type of the property called name.
func (u *Unit) PropertyType(name string) (model.TypeDescriptor, bool) {
	t, ok := u.Resolved[name]
	return t, ok
}

// Plan holds the units of a schema in tree walk order.
type Plan struct {
	Units []*Unit
	index map[string]*Unit
}

// Lookup returns the unit of the object declared at ns.
func (p *Plan) Lookup(ns model.Path) (*Unit, bool) {
	u, ok := p.index[ns.String()]
	return u, ok
}

// New plans every object of schema. Units are planned in parallel; the
// first failure cancels the rest and is returned.
func New(ctx context.Context, schema *model.Schema, reg *resolver.Registry, opts Options) (*Plan, error) {
	objects := schema.Tree.Objects()
	units := make([]*Unit, len(objects))

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, obj := range objects {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			u, err := Describe(obj, reg, opts)
			if err != nil {
				return err
			}
			units[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := &Plan{Units: units, index: make(map[string]*Unit, len(units))}
	for _, u := range units {
		p.index[u.Object.Namespace.String()] = u
	}
	return p, nil
}

// Describe resolves obj and computes its imports.
func Describe(obj *model.ObjectNode, reg *resolver.Registry, opts Options) (*Unit, error) {
	builtin := opts.BuiltinNamespace
	if builtin == "" {
		builtin = reg.Namespace()
	}
	unitName := obj.Descriptor().String()
	usages := scope.NewUsages(builtin)
	u := &Unit{
		Object:   obj,
		Resolved: make(map[string]model.TypeDescriptor, len(obj.Properties)),
	}

	if obj.IsAlias() {
		t, ok := reg.Lookup(obj.Alias)
		if !ok {
			return nil, &ResolutionError{Unit: unitName, Ref: obj.Alias}
		}
		u.Alias = &t
		usages.Add(t)
		for _, extra := range opts.AliasImports {
			usages.Add(extra)
		}
	}

	for _, prop := range obj.Properties {
		t, ok := reg.Resolve(prop.Type)
		if !ok {
			return nil, &ResolutionError{Unit: unitName, Property: prop.Name, Ref: prop.Type.String()}
		}
		u.Resolved[prop.Name] = t
		usages.Add(t)
	}

	u.Imports = Imports{
		Builtins: usages.Builtins(),
		Types:    usages.UseTypes(),
		Crates:   usages.UseCrates(obj.Namespace),
		Supers:   usages.UseSupers(obj.Namespace, obj.Name),
	}
	u.Disjoint = usages.Disjoint(obj.Namespace)
	if len(u.Disjoint) > 0 {
		opts.Reporter.Infof(diag.DisjointUsage, obj.Namespace.String(), "%s uses types outside its lineage: %v", obj.Name, u.Disjoint)
	}
	return u, nil
}
