// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package translate turns planned units into source files for a target
// language and lays them out as a module tree.
package translate

import (
	"fmt"
	"slices"

	"github.com/swanky-oscal/oscal-codegen/internal/model"
	"github.com/swanky-oscal/oscal-codegen/internal/plan"
)

// File is one unit to translate together with its position in the output tree.
type File struct {
	Unit *plan.Unit
	// Dir is the module directory holding the file, relative to SourceDir.
	Dir model.Path
	// Owner is set when the unit is emitted as its directory's index file.
	Owner bool
	// Mods lists the directory's entry keys when Owner is set.
	Mods []string
}

// Translator defines the interface all format translators must implement.
type Translator interface {
	// Name returns the translator's identifier (e.g., "rust", "markdown")
	Name() string

	// SourceDir is the directory under the output root receiving the module tree.
	SourceDir() string

	// FileName returns the file name of a unit stored under key.
	FileName(key string) string

	// IndexName returns the file name of a directory's index file.
	IndexName() string

	// Translate renders one unit.
	Translate(f File) ([]byte, error)

	// Index renders a directory index for a directory with no owning unit.
	Index(dir model.Path, mods []string) ([]byte, error)
}

// Packager is implemented by translators that emit package-level files
// (crate root, manifests, static sources) after the module tree.
type Packager interface {
	Package(schema *model.Schema, p *plan.Plan, sink Sink) error
}

// Register maps translator names to translators.
type Register map[string]Translator

// Get retrieves a translator by name.
func (r Register) Get(name string) (Translator, error) {
	t, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown translator: %s", name)
	}
	return t, nil
}

// Available returns all registered translator names, sorted.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
