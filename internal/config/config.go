// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles oscalgen project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/swanky-oscal/oscal-codegen/internal/build"
	"github.com/swanky-oscal/oscal-codegen/internal/names"
	"github.com/swanky-oscal/oscal-codegen/internal/resolver"
	"github.com/swanky-oscal/oscal-codegen/internal/translate/rust"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the default name of the configuration file.
const FileName = "oscalgen.yaml"

// Config represents the oscalgen.yaml project configuration file.
type Config struct {
	Version int `yaml:"version"`
	// Schema is the path of the input schema document.
	Schema string `yaml:"schema,omitempty"`
	// Output is the directory receiving generated files.
	Output string `yaml:"output,omitempty"`
	// Static is a directory of hand-written sources copied into the output.
	Static           string   `yaml:"static,omitempty"`
	ModelPrefix      string   `yaml:"model_prefix,omitempty"`
	BuiltinNamespace string   `yaml:"builtin_namespace,omitempty"`
	Skip             []string `yaml:"skip,omitempty"`
	Datatypes        []string `yaml:"datatypes,omitempty"`
	IDPattern        string   `yaml:"id_pattern,omitempty"`
	Crate            Crate    `yaml:"crate,omitempty"`
}

// Crate configures the generated Rust package manifest.
type Crate struct {
	Name        string   `yaml:"name,omitempty"`
	Version     string   `yaml:"version,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Authors     []string `yaml:"authors,omitempty"`
	Repository  string   `yaml:"repository,omitempty"`
	License     string   `yaml:"license,omitempty"`
	TypesCrate  string   `yaml:"types_crate,omitempty"`
	TypesSource string   `yaml:"types_source,omitempty"`
}

// Default returns a complete configuration for the NIST OSCAL complete schema.
func Default() *Config {
	crate := rust.DefaultCrate()
	return &Config{
		Version:          CurrentConfigVersion,
		Schema:           "oscal_complete_schema.json",
		Output:           "generated",
		ModelPrefix:      names.DefaultModelPrefix,
		BuiltinNamespace: resolver.DefaultNamespace,
		Skip:             slices.Clone(build.DefaultSkip),
		Datatypes:        slices.Clone(resolver.DefaultDatatypes),
		IDPattern:        build.DefaultIDPattern,
		Crate: Crate{
			Name:        crate.Name,
			Version:     crate.Version,
			Description: crate.Description,
			License:     crate.License,
			TypesCrate:  crate.TypesCrate,
			TypesSource: crate.TypesSource,
		},
	}
}

// Load reads a Config from a file path. Fields absent from the file keep
// their Default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if c.ModelPrefix == "" {
		return errors.New("model_prefix is required")
	}
	if c.BuiltinNamespace == "" {
		return errors.New("builtin_namespace is required")
	}
	if len(c.Datatypes) == 0 {
		return errors.New("datatypes must not be empty")
	}
	if _, err := c.Pattern(); err != nil {
		return err
	}
	return nil
}

// Pattern compiles IDPattern. The pattern must capture a "version" group.
func (c *Config) Pattern() (*regexp.Regexp, error) {
	expr := c.IDPattern
	if expr == "" {
		expr = build.DefaultIDPattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid id_pattern: %w", err)
	}
	if re.SubexpIndex("version") < 0 {
		return nil, errors.New("id_pattern has no version group")
	}
	return re, nil
}

// BuildOptions returns the tree builder options described by c.
func (c *Config) BuildOptions() (build.Options, error) {
	re, err := c.Pattern()
	if err != nil {
		return build.Options{}, err
	}
	return build.Options{
		ModelPrefix: c.ModelPrefix,
		IDPattern:   re,
		Skip:        c.Skip,
	}, nil
}

// RustCrate returns the manifest of the Rust target.
func (c *Config) RustCrate() rust.Crate {
	return rust.Crate{
		Name:        c.Crate.Name,
		Version:     c.Crate.Version,
		Description: c.Crate.Description,
		Authors:     c.Crate.Authors,
		Repository:  c.Crate.Repository,
		License:     c.Crate.License,
		TypesCrate:  c.Crate.TypesCrate,
		TypesSource: c.Crate.TypesSource,
	}
}
