// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package diag collects non-fatal findings produced while building and
// planning the type model.
package diag

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Severity ranks a diagnostic.
type Severity int

const (
	// Info marks findings that need no action.
	Info Severity = iota
	// Warning marks constructs that were skipped or overridden.
	Warning
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Category classifies a diagnostic.
type Category string

const (
	// UnhandledProperty is reported for a property whose type kind is not modeled.
	UnhandledProperty Category = "unhandled-property"
	// UnhandledItems is reported for array items whose type kind is not modeled.
	UnhandledItems Category = "unhandled-array-items"
	// DuplicateID is reported when a type identifier is registered twice.
	DuplicateID Category = "duplicate-id"
	// DisjointUsage is reported when a unit uses types outside its own lineage.
	DisjointUsage Category = "disjoint-usage"
	// UnresolvedRef is reported when a reference has no registered target.
	UnresolvedRef Category = "unresolved-ref"
	// RefSiblings is reported when a wrapper object also declares
	// properties; the properties are ignored.
	RefSiblings Category = "ref-siblings"
	// MissingDefinition is reported for a "#/definitions/" reference whose
	// definition the document does not declare.
	MissingDefinition Category = "missing-definition"
)

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	// Path locates the construct: a document key path or a namespace.
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", d.Severity, d.Category, d.Path, d.Message)
}

// Reporter records diagnostics and mirrors them to a logger.
// It is safe for concurrent use.
type Reporter struct {
	log *zap.Logger

	mu    sync.Mutex
	items []Diagnostic
}

// NewReporter returns a Reporter logging to log. A nil log discards output.
func NewReporter(log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{log: log}
}

// Report records d.
func (r *Reporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.items = append(r.items, d)
	r.mu.Unlock()

	fields := []zap.Field{zap.String("path", d.Path), zap.String("category", string(d.Category))}
	if d.Severity == Warning {
		r.log.Warn(d.Message, fields...)
	} else {
		r.log.Debug(d.Message, fields...)
	}
}

// Warnf records a Warning.
func (r *Reporter) Warnf(cat Category, path, format string, args ...any) {
	r.Report(Diagnostic{Severity: Warning, Category: cat, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Infof records an Info diagnostic.
func (r *Reporter) Infof(cat Category, path, format string, args ...any) {
	r.Report(Diagnostic{Severity: Info, Category: cat, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Diagnostics returns a copy of the recorded diagnostics in report order.
func (r *Reporter) Diagnostics() []Diagnostic {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.items))
	copy(out, r.items)
	return out
}

// Count returns the number of diagnostics in cat.
func (r *Reporter) Count(cat Category) int {
	n := 0
	for _, d := range r.Diagnostics() {
		if d.Category == cat {
			n++
		}
	}
	return n
}
