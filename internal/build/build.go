// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package build constructs the namespaced schema tree from a loaded schema
// document and registers every declared type identifier.
package build

import (
	"fmt"
	"regexp"

	"github.com/google/jsonschema-go/jsonschema"
	"golang.org/x/mod/semver"

	"github.com/swanky-oscal/oscal-codegen/internal/diag"
	"github.com/swanky-oscal/oscal-codegen/internal/jschema"
	"github.com/swanky-oscal/oscal-codegen/internal/model"
	"github.com/swanky-oscal/oscal-codegen/internal/names"
	"github.com/swanky-oscal/oscal-codegen/internal/resolver"
)

// DefaultIDPattern extracts the model version from the document $id.
const DefaultIDPattern = `^http://csrc.nist.gov/ns/oscal/1.0/(?P<version>[1-9][0-9]?\.\d+\.\d+)/oscal-complete-schema.json$`

// DefaultSkip lists meta-directive definitions that are never modeled.
var DefaultSkip = []string{"json-schema-directive"}

// Options tunes Parse.
type Options struct {
	// ModelPrefix marks namespaced definition keys. Defaults to names.DefaultModelPrefix.
	ModelPrefix string
	// IDPattern must capture a "version" group. Defaults to DefaultIDPattern.
	IDPattern *regexp.Regexp
	// Skip lists definition names to ignore in addition to the data types.
	// Nil means DefaultSkip.
	Skip []string
	// Reporter receives diagnostics. May be nil.
	Reporter *diag.Reporter
}

type parser struct {
	doc  *jschema.Document
	norm names.Normalizer
	reg  *resolver.Builder
	rep  *diag.Reporter
	skip map[string]struct{}
	tree *model.Tree
}

// Parse builds the schema tree of doc. Every object carrying an identifier
// is registered in reg before its properties are parsed, so forward and
// self references resolve once the registry is frozen.
func Parse(doc *jschema.Document, reg *resolver.Builder, opts Options) (*model.Schema, error) {
	pattern := opts.IDPattern
	if pattern == nil {
		pattern = regexp.MustCompile(DefaultIDPattern)
	}
	p := &parser{
		doc:  doc,
		norm: names.New(opts.ModelPrefix),
		reg:  reg,
		rep:  opts.Reporter,
		skip: make(map[string]struct{}),
		tree: model.NewTree(),
	}
	skip := opts.Skip
	if skip == nil {
		skip = DefaultSkip
	}
	for _, s := range skip {
		p.skip[s] = struct{}{}
	}

	root := doc.Schema
	if root == nil {
		return nil, structural("", ErrObjectExpected)
	}
	if root.Schema == "" {
		return nil, structural("$schema", ErrMissingField)
	}
	if root.ID == "" {
		return nil, structural("$id", ErrMissingField)
	}
	version, err := ParseVersion(root.ID, pattern)
	if err != nil {
		return nil, err
	}
	if root.Comment == "" {
		return nil, structural("$comment", ErrMissingField)
	}
	if root.Definitions == nil {
		return nil, structural("definitions", ErrMissingField)
	}

	if err := p.parseDefinitions(root.Definitions); err != nil {
		return nil, err
	}

	return &model.Schema{
		SchemaURI: root.Schema,
		ID:        root.ID,
		Version:   version,
		Comment:   root.Comment,
		Tree:      p.tree,
	}, nil
}

// ParseVersion extracts the "version" capture of pattern from id and checks
// it is a semantic version.
func ParseVersion(id string, pattern *regexp.Regexp) (string, error) {
	idx := pattern.SubexpIndex("version")
	m := pattern.FindStringSubmatch(id)
	if idx < 0 || m == nil {
		return "", structural("$id", ErrVersionParse, id)
	}
	v := m[idx]
	if !semver.IsValid("v" + v) {
		return "", structural("$id", ErrVersionParse, v)
	}
	return v, nil
}

func (p *parser) parseDefinitions(defs map[string]*jsonschema.Schema) error {
	for _, name := range p.doc.Keys("definitions", defs) {
		if p.reg.IsDatatype(name) {
			continue
		}
		if _, ok := p.skip[name]; ok {
			continue
		}
		path := "definitions." + name
		def := defs[name]
		if def == nil {
			return structural(path, ErrObjectExpected)
		}
		entry := p.norm.Normalize(name)
		if _, err := p.parseObject(entry.Segments(), entry.TypeName, def, path); err != nil {
			return err
		}
	}
	return nil
}

// parseObject models s as the object name in namespace ns and stores it in
// the subtree at ns under the key ns.Last(). Nested objects discovered in
// its properties are stored first. An object with a $ref is a wrapper and
// keeps no properties.
func (p *parser) parseObject(ns model.Path, name string, s *jsonschema.Schema, path string) (*model.ObjectNode, error) {
	obj := &model.ObjectNode{
		Namespace:        ns,
		Name:             name,
		ID:               s.ID,
		Description:      s.Description,
		Type:             s.Type,
		Alias:            s.Ref,
		StringRefinement: refinement(s),
	}

	if obj.ID != "" {
		if prev, replaced := p.reg.Register(obj.ID, obj.Descriptor()); replaced {
			p.rep.Warnf(diag.DuplicateID, path, "identifier %s re-registered: %s replaces %s", obj.ID, obj.Descriptor(), prev)
		}
	}

	if obj.IsAlias() && len(s.Properties) > 0 {
		p.rep.Warnf(diag.RefSiblings, path, "%s wraps %s; its %d properties are ignored", name, obj.Alias, len(s.Properties))
	} else if err := p.parseProperties(obj, s, path); err != nil {
		return nil, err
	}

	sub, err := p.tree.GetOrAddPath(ns)
	if err != nil {
		return nil, structural(path, ErrNameConflict, err)
	}
	if err := sub.AddObject(ns.Last(), obj); err != nil {
		return nil, structural(path, ErrNameConflict, err)
	}
	return obj, nil
}

func refinement(s *jsonschema.Schema) *model.StringRefinement {
	r := model.StringRefinement{
		Format:          s.Format,
		Pattern:         s.Pattern,
		ContentEncoding: s.ContentEncoding,
	}
	if r.IsZero() {
		return nil
	}
	return &r
}

func (p *parser) parseProperties(obj *model.ObjectNode, s *jsonschema.Schema, path string) error {
	if len(s.Properties) == 0 {
		return nil
	}
	required := make(map[string]struct{}, len(s.Required))
	for _, r := range s.Required {
		required[r] = struct{}{}
	}

	for _, key := range p.doc.Keys(path+".properties", s.Properties) {
		ppath := path + ".properties." + key
		ps := s.Properties[key]
		if ps == nil {
			return structural(ppath, ErrObjectExpected)
		}
		_, isRequired := required[key]
		prop := model.Property{
			Name:        names.Snake(key),
			JSONName:    key,
			Title:       ps.Title,
			Description: ps.Description,
			Optional:    !isRequired,
		}

		ok, err := p.propertyType(obj, &prop, ps, ppath)
		if err != nil {
			return err
		}
		if ok {
			obj.SetProperty(prop)
		}
	}
	return nil
}

// propertyType sets prop's type from ps. It reports false when the type
// kind is not modeled and the property must be omitted.
func (p *parser) propertyType(obj *model.ObjectNode, prop *model.Property, ps *jsonschema.Schema, path string) (bool, error) {
	if ps.Type == "" && ps.Ref != "" {
		prop.Type = model.RefTo(ps.Ref)
		return true, nil
	}
	ao, err := anyOf(ps, path)
	if err != nil {
		return false, err
	}
	if ao != nil {
		prop.Type = model.RefTo(ao.Ref)
		prop.Enums = ao.Enums
		return true, nil
	}

	switch ps.Type {
	case "string":
		prop.Type = model.NativeStringType()
		return true, nil
	case "array":
		ok, err := p.parseArray(obj, prop, ps.Items, path+".items")
		prop.Array = ok
		return ok, err
	case "object":
		nested, err := p.parseObject(obj.Namespace.Child(prop.Name), names.Pascal(prop.Name), ps, path)
		if err != nil {
			return false, err
		}
		prop.Type = model.InlineType(nested.Descriptor())
		return true, nil
	default:
		p.rep.Warnf(diag.UnhandledProperty, path, "unhandled property type %q", typeLabel(ps))
		return false, nil
	}
}

// parseArray sets prop's item type. It reports false when the item type
// kind is not modeled and the property must be omitted.
func (p *parser) parseArray(obj *model.ObjectNode, prop *model.Property, items *jsonschema.Schema, path string) (bool, error) {
	if items == nil {
		return false, structural(path, ErrMalformedArray, "items is required")
	}
	if items.Ref != "" {
		prop.Type = model.RefTo(items.Ref)
		return true, nil
	}
	ao, err := anyOf(items, path)
	if err != nil {
		return false, err
	}
	if ao != nil {
		prop.Type = model.RefTo(ao.Ref)
		prop.Enums = ao.Enums
		return true, nil
	}

	switch items.Type {
	case "":
		return false, structural(path, ErrMalformedArray, "items has no type")
	case "object":
		entry := names.ItemName(prop.JSONName, items.Title)
		nested, err := p.parseObject(obj.Namespace.Child(entry), names.Pascal(entry), items, path)
		if err != nil {
			return false, err
		}
		prop.Type = model.InlineType(nested.Descriptor())
		return true, nil
	case "string":
		prop.Type = model.NativeStringType()
		return true, nil
	default:
		p.rep.Warnf(diag.UnhandledItems, path, "unexpected type %q in array", items.Type)
		return false, nil
	}
}

func typeLabel(s *jsonschema.Schema) string {
	switch {
	case s.Type != "":
		return s.Type
	case len(s.Types) > 0:
		return fmt.Sprint(s.Types)
	default:
		return "<none>"
	}
}
