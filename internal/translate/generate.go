// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"fmt"
	"path"

	"github.com/swanky-oscal/oscal-codegen/internal/model"
	"github.com/swanky-oscal/oscal-codegen/internal/plan"
)

// Generate lays the schema tree out as files and writes them to sink.
//
// An object whose key matches its directory name becomes that directory's
// index file. A reducible subtree becomes a single file beside its siblings.
// Any other subtree becomes a directory; directories without an owning
// object get an index listing their entries. The root directory is left to
// the translator's Packager, if any.
//
// The returned names are in write order.
func Generate(schema *model.Schema, p *plan.Plan, t Translator, sink Sink) ([]string, error) {
	g := &generator{plan: p, t: t, sink: sink}
	if err := g.tree(schema.Tree, nil); err != nil {
		return g.written, err
	}
	if pk, ok := t.(Packager); ok {
		rec := &recordingSink{Sink: sink}
		if err := pk.Package(schema, p, rec); err != nil {
			return g.written, fmt.Errorf("package: %w", err)
		}
		g.written = append(g.written, rec.names...)
	}
	return g.written, nil
}

type generator struct {
	plan    *plan.Plan
	t       Translator
	sink    Sink
	written []string
}

func (g *generator) tree(tree *model.Tree, dir model.Path) error {
	mods := tree.Keys()
	owned := false

	for _, key := range mods {
		e, _ := tree.Get(key)
		switch {
		case e.Object != nil:
			owner := len(dir) > 0 && dir.Last() == key
			f := File{Dir: dir, Owner: owner}
			name := g.t.FileName(key)
			if owner {
				f.Mods = mods
				name = g.t.IndexName()
				owned = true
			}
			if err := g.emit(e.Object, f, name); err != nil {
				return err
			}
		case e.Tree.IsReducible(key):
			obj, err := e.Tree.Object(key)
			if err != nil {
				return err
			}
			if err := g.emit(obj, File{Dir: dir}, g.t.FileName(key)); err != nil {
				return err
			}
		default:
			if err := g.tree(e.Tree, dir.Child(key)); err != nil {
				return err
			}
		}
	}

	if !owned && len(dir) > 0 {
		data, err := g.t.Index(dir, mods)
		if err != nil {
			return fmt.Errorf("index %s: %w", dir, err)
		}
		return g.write(dir, g.t.IndexName(), data)
	}
	return nil
}

func (g *generator) emit(obj *model.ObjectNode, f File, name string) error {
	u, ok := g.plan.Lookup(obj.Namespace)
	if !ok {
		return fmt.Errorf("no unit planned for %s", obj.Descriptor())
	}
	f.Unit = u
	data, err := g.t.Translate(f)
	if err != nil {
		return fmt.Errorf("translate %s: %w", obj.Descriptor(), err)
	}
	return g.write(f.Dir, name, data)
}

func (g *generator) write(dir model.Path, name string, data []byte) error {
	elems := append([]string{g.t.SourceDir()}, dir...)
	full := path.Join(append(elems, name)...)
	if err := g.sink.WriteFile(full, data); err != nil {
		return fmt.Errorf("write %s: %w", full, err)
	}
	g.written = append(g.written, full)
	return nil
}

type recordingSink struct {
	Sink
	names []string
}

func (r *recordingSink) WriteFile(name string, data []byte) error {
	if err := r.Sink.WriteFile(name, data); err != nil {
		return err
	}
	r.names = append(r.names, name)
	return nil
}
