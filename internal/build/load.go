// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package build

import (
	"errors"
	"io/fs"

	"github.com/swanky-oscal/oscal-codegen/internal/jschema"
)

// Load reads the schema document name from fsys. A value of the wrong JSON
// kind where a schema or a map of schemas belongs is reported as a
// StructuralError wrapping ErrObjectExpected.
func Load(fsys fs.FS, name string) (*jschema.Document, error) {
	doc, err := jschema.NewLoader(fsys).LoadFile(name)
	if err != nil {
		return nil, kindError(err)
	}
	return doc, nil
}

// Decode is Load for a document already in memory.
func Decode(data []byte, filePath string) (*jschema.Document, error) {
	doc, err := jschema.Decode(data, filePath)
	if err != nil {
		return nil, kindError(err)
	}
	return doc, nil
}

func kindError(err error) error {
	var ke *jschema.KindError
	if errors.As(err, &ke) {
		return structural(ke.Path, ErrObjectExpected, "found ", ke.Got)
	}
	return err
}
