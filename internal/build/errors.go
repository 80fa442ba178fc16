// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package build

import (
	"errors"
	"fmt"
)

// Structural failures. A StructuralError wraps exactly one of these.
var (
	ErrObjectExpected   = errors.New("object expected")
	ErrMissingField     = errors.New("missing required field")
	ErrMalformedAnyOf   = errors.New("malformed anyOf")
	ErrMissingAnyOfRef  = errors.New("anyOf is missing its reference member")
	ErrMissingAnyOfEnum = errors.New("anyOf is missing its enumeration member")
	ErrMalformedArray   = errors.New("malformed array")
	ErrVersionParse     = errors.New("cannot parse version from schema id")
	ErrNameConflict     = errors.New("name conflicts with an existing entry")
)

// StructuralError reports a schema document that violates an expected
// shape. Path is the dot-joined key path of the offending construct.
type StructuralError struct {
	Path string
	Err  error
}

func (e *StructuralError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

func structural(path string, err error, detail ...any) error {
	if len(detail) > 0 {
		err = fmt.Errorf("%w: %s", err, fmt.Sprint(detail...))
	}
	return &StructuralError{Path: path, Err: err}
}
