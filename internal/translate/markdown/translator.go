// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package markdown renders the type model as browsable reference pages.
package markdown

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/swanky-oscal/oscal-codegen/internal/model"
	"github.com/swanky-oscal/oscal-codegen/internal/plan"
	"github.com/swanky-oscal/oscal-codegen/internal/translate"
)

//go:embed templates/*.tmpl
var tmplFS embed.FS

var funcMap = template.FuncMap{
	"join": strings.Join,
	"cell": formatCell,
}

var tmpl = template.Must(template.New("markdown").Funcs(funcMap).ParseFS(tmplFS, "templates/*.tmpl"))

// Translator writes one markdown page per unit.
type Translator struct{}

// Name returns the translator's identifier.
func (t *Translator) Name() string { return "markdown" }

// SourceDir returns the directory receiving the pages: the output root.
func (t *Translator) SourceDir() string { return "" }

// FileName returns the page name of key.
func (t *Translator) FileName(key string) string { return key + ".md" }

// IndexName returns the directory page name.
func (t *Translator) IndexName() string { return "index.md" }

// Translate renders a unit page with a property table.
func (t *Translator) Translate(f translate.File) ([]byte, error) {
	data, err := translate.Prepare(f, &typeResolver{})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare unit data: %w", err)
	}
	return execute("unit.md.tmpl", data)
}

// Index renders a page listing the modules of dir.
func (t *Translator) Index(dir model.Path, mods []string) ([]byte, error) {
	return execute("index.md.tmpl", map[string]any{
		"Dir":  dir.String(),
		"Mods": mods,
	})
}

// Package writes the root page describing the schema.
func (t *Translator) Package(schema *model.Schema, p *plan.Plan, sink translate.Sink) error {
	data, err := execute("root.md.tmpl", map[string]any{
		"ID":      schema.ID,
		"Version": schema.Version,
		"Comment": schema.Comment,
		"Mods":    schema.Tree.Keys(),
		"Units":   len(p.Units),
	})
	if err != nil {
		return err
	}
	return sink.WriteFile("index.md", data)
}

func execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// formatCell builds the description cell of a field: title, description
// and allowed values on one line with pipes escaped.
func formatCell(f translate.Field) string {
	var parts []string
	if f.Title != "" {
		parts = append(parts, "**"+f.Title+"**")
	}
	if len(f.Doc) > 0 {
		parts = append(parts, strings.Join(f.Doc, " "))
	}
	if len(f.Enums) > 0 {
		vals := make([]string, len(f.Enums))
		for i, v := range f.Enums {
			vals[i] = "`" + v + "`"
		}
		parts = append(parts, "Allowed values: "+strings.Join(vals, ", "))
	}
	return strings.ReplaceAll(strings.Join(parts, " "), "|", `\|`)
}
