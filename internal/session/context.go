// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/swanky-oscal/oscal-codegen/internal/build"
	"github.com/swanky-oscal/oscal-codegen/internal/config"
	"github.com/swanky-oscal/oscal-codegen/internal/diag"
	"github.com/swanky-oscal/oscal-codegen/internal/jschema"
	"github.com/swanky-oscal/oscal-codegen/internal/model"
	"github.com/swanky-oscal/oscal-codegen/internal/plan"
	"github.com/swanky-oscal/oscal-codegen/internal/resolver"
)

var (
	// ErrNotInitialized indicates no oscalgen.yaml was found and no schema was given.
	ErrNotInitialized = errors.New("not in an oscalgen project (oscalgen.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSchemaNotFound indicates the schema document doesn't exist.
	ErrSchemaNotFound = errors.New("schema file not found")

	// ErrInvalidSchema indicates the schema document couldn't be loaded or modeled.
	ErrInvalidSchema = errors.New("invalid OSCAL schema")
)

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Options locate the project files.
type Options struct {
	// ConfigPath defaults to config.FileName in the working directory.
	ConfigPath string
	// SchemaPath overrides the configured schema document.
	SchemaPath string
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Context holds the resolved configuration and the parsed schema model.
type Context struct {
	Config *config.Config
	// Dir is the base directory of relative configured paths.
	Dir      string
	Logger   *zap.Logger
	Reporter *diag.Reporter
	Document *jschema.Document
	Schema   *model.Schema
	Registry *resolver.Registry
}

// Load reads the configuration and schema described by opts and returns a
// new context.Context with the session Context stored in it.
func Load(ctx context.Context, opts Options) (context.Context, error) {
	sc, err := Open(opts)
	if err != nil {
		return nil, err
	}
	return With(ctx, sc), nil
}

// Open reads the configuration, loads the schema document and builds the
// type model.
func Open(opts Options) (*Context, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, dir, err := loadConfig(cwd, opts)
	if err != nil {
		return nil, err
	}

	schemaPath := cfg.Schema
	if opts.SchemaPath != "" {
		schemaPath = opts.SchemaPath
		if !filepath.IsAbs(schemaPath) {
			schemaPath = filepath.Join(cwd, schemaPath)
		}
	} else if !filepath.IsAbs(schemaPath) {
		schemaPath = filepath.Join(dir, schemaPath)
	}
	if _, statErr := os.Stat(schemaPath); statErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, schemaPath)
	}

	log.Debug("loading schema", zap.String("path", schemaPath))
	doc, err := build.Load(os.DirFS(filepath.Dir(schemaPath)), filepath.Base(schemaPath))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	bopts, err := cfg.BuildOptions()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	rep := diag.NewReporter(log)
	bopts.Reporter = rep

	reg := resolver.NewBuilder(cfg.BuiltinNamespace, cfg.Datatypes)
	schema, err := build.Parse(doc, reg, bopts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	registry := reg.Freeze()
	log.Debug("schema parsed",
		zap.String("version", schema.Version),
		zap.Int("objects", len(schema.Tree.Objects())),
		zap.Int("identifiers", registry.Len()))

	return &Context{
		Config:   cfg,
		Dir:      dir,
		Logger:   log,
		Reporter: rep,
		Document: doc,
		Schema:   schema,
		Registry: registry,
	}, nil
}

// loadConfig reads the config file. A missing file is allowed when a
// schema path is given; the defaults are used and paths are relative to cwd.
func loadConfig(cwd string, opts Options) (*config.Config, string, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.FileName
	}
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(cwd, configPath)
	}

	var cfg *config.Config
	dir := filepath.Dir(configPath)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		if opts.SchemaPath == "" {
			return nil, "", ErrNotInitialized
		}
		cfg, dir = config.Default(), cwd
	} else {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		cfg = loaded
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, dir, nil
}

// With returns a copy of ctx carrying sc.
func With(ctx context.Context, sc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, sc)
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sc, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sc
	}
	return nil
}

// Path resolves a configured path against Dir.
func (c *Context) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// PlanOptions returns the planning options of the session.
func (c *Context) PlanOptions() plan.Options {
	opts := plan.DefaultOptions()
	opts.BuiltinNamespace = c.Config.BuiltinNamespace
	opts.Reporter = c.Reporter
	return opts
}

// Plan plans every unit of the loaded schema.
func (c *Context) Plan(ctx context.Context) (*plan.Plan, error) {
	p, err := plan.New(ctx, c.Schema, c.Registry, c.PlanOptions())
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("plan complete", zap.Int("units", len(p.Units)))
	return p, nil
}
