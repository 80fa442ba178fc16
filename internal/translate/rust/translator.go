// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package rust emits the type model as a Rust crate of serde structs.
package rust

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"text/template"

	"github.com/swanky-oscal/oscal-codegen/internal/model"
	"github.com/swanky-oscal/oscal-codegen/internal/plan"
	"github.com/swanky-oscal/oscal-codegen/internal/translate"
)

//go:embed templates/*.tmpl
var tmplFS embed.FS

var funcMap = template.FuncMap{
	"join":  strings.Join,
	"quote": strconv.Quote,
}

var tmpl = template.Must(template.New("rust").Funcs(funcMap).ParseFS(tmplFS, "templates/*.tmpl"))

// Crate describes the generated package manifest.
type Crate struct {
	Name        string
	Version     string
	Description string
	Authors     []string
	Repository  string
	License     string
	// TypesCrate is the crate providing the built-in data types.
	TypesCrate string
	// TypesSource is the Cargo dependency value of TypesCrate.
	TypesSource string
}

// DefaultCrate returns the manifest used when none is configured.
func DefaultCrate() Crate {
	return Crate{
		Name:        "oscal_lib",
		Version:     "0.1.0",
		Description: "OSCAL lib in Rust",
		License:     "MIT OR Apache-2.0",
		TypesCrate:  "oscal_types",
		TypesSource: `{ git = "https://github.com/dskyberg/oscal_types.git" }`,
	}
}

// Translator emits one Rust module per unit.
type Translator struct {
	Crate Crate
	// Static, when set, overrides embedded static sources. A "src/error.rs"
	// found there is copied verbatim.
	Static fs.FS
}

// New returns a Translator for crate.
func New(crate Crate, static fs.FS) *Translator {
	return &Translator{Crate: crate, Static: static}
}

func (t *Translator) crate() Crate {
	c := t.Crate
	d := DefaultCrate()
	if c.Name == "" {
		c.Name = d.Name
	}
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.TypesCrate == "" {
		c.TypesCrate = d.TypesCrate
	}
	if c.TypesSource == "" {
		c.TypesSource = d.TypesSource
	}
	return c
}

// Name returns the translator's identifier.
func (t *Translator) Name() string { return "rust" }

// SourceDir returns the crate source directory.
func (t *Translator) SourceDir() string { return "src" }

// FileName returns the module file name of key.
func (t *Translator) FileName(key string) string { return key + ".rs" }

// IndexName returns the directory module file name.
func (t *Translator) IndexName() string { return "mod.rs" }

// Translate renders a unit as a serde struct.
func (t *Translator) Translate(f translate.File) ([]byte, error) {
	data, err := translate.Prepare(f, &typeResolver{})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare unit data: %w", err)
	}
	data.Extra["TypesCrate"] = t.crate().TypesCrate
	if target, ok := derefTargets[data.Alias]; ok && data.AliasType != nil && isBuiltin(data) {
		data.Extra["DerefTarget"] = target
	}
	return execute("unit.rs.tmpl", data)
}

// Index renders a mod.rs declaring mods.
func (t *Translator) Index(_ model.Path, mods []string) ([]byte, error) {
	return execute("mod.rs.tmpl", mods)
}

// Package writes the crate root, the manifest, and the error module.
func (t *Translator) Package(schema *model.Schema, _ *plan.Plan, sink translate.Sink) error {
	crate := t.crate()

	lib, err := execute("lib.rs.tmpl", map[string]any{
		"Mods":    schema.Tree.Keys(),
		"Version": schema.Version,
		"ID":      schema.ID,
	})
	if err != nil {
		return err
	}
	if err := sink.WriteFile("src/lib.rs", lib); err != nil {
		return err
	}

	cargo, err := execute("Cargo.toml.tmpl", crate)
	if err != nil {
		return err
	}
	if err := sink.WriteFile("Cargo.toml", cargo); err != nil {
		return err
	}

	errorRS, err := t.errorModule(crate)
	if err != nil {
		return err
	}
	return sink.WriteFile("src/error.rs", errorRS)
}

func (t *Translator) errorModule(crate Crate) ([]byte, error) {
	if t.Static != nil {
		data, err := fs.ReadFile(t.Static, "src/error.rs")
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read static error module: %w", err)
		}
	}
	return execute("error.rs.tmpl", crate.TypesCrate)
}

func execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func isBuiltin(data *translate.UnitData) bool {
	for _, b := range data.Imports.Builtins {
		if b == data.AliasType.Name {
			return true
		}
	}
	return false
}
