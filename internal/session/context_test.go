// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swanky-oscal/oscal-codegen/internal/config"
)

const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "$id": "http://csrc.nist.gov/ns/oscal/1.0/1.1.2/oscal-complete-schema.json",
  "$comment": "test",
  "definitions": {
    "UUIDDatatype": {"type": "string"},
    "json-schema-directive": {"type": "string"},
    "oscal-complete-oscal-ap:assessment-plan": {
      "$id": "#assembly_oscal-ap_assessment-plan",
      "type": "object",
      "properties": {"uuid": {"$ref": "#/definitions/UUIDDatatype"}},
      "required": ["uuid"]
    }
  }
}`

// project writes a config and schema below a temp dir and changes into it.
func project(t *testing.T, withConfig bool) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "schema"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema", "oscal.json"), []byte(schemaJSON), 0o600))
	if withConfig {
		cfg := config.Default()
		cfg.Schema = "schema/oscal.json"
		require.NoError(t, cfg.Save(filepath.Join(dir, config.FileName)))
	}
	t.Chdir(dir)
	return dir
}

func TestOpen(t *testing.T) {
	dir := project(t, true)

	sc, err := Open(Options{})
	require.NoError(t, err)

	assert.Equal(t, dir, sc.Dir)
	assert.Equal(t, "1.1.2", sc.Schema.Version)
	assert.Equal(t, []string{"oscal_ap"}, sc.Schema.Tree.Keys())
	_, ok := sc.Registry.Lookup("#assembly_oscal-ap_assessment-plan")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "generated"), sc.Path(sc.Config.Output))

	p, err := sc.Plan(context.Background())
	require.NoError(t, err)
	require.Len(t, p.Units, 1)
	assert.Equal(t, "UUIDDatatype", p.Units[0].Imports.Types)
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string)
		opts    Options
		wantErr error
	}{
		{
			name:    "not initialized",
			setup:   func(t *testing.T, dir string) { require.NoError(t, os.Remove(filepath.Join(dir, config.FileName))) },
			wantErr: ErrNotInitialized,
		},
		{
			name: "invalid config",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("version: 7\n"), 0o600))
			},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "schema not found",
			opts:    Options{SchemaPath: "missing.json"},
			wantErr: ErrSchemaNotFound,
		},
		{
			name: "invalid schema",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "schema", "oscal.json"), []byte(`{"definitions": {}}`), 0o600))
			},
			wantErr: ErrInvalidSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := project(t, true)
			if tt.setup != nil {
				tt.setup(t, dir)
			}
			_, err := Open(tt.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOpen_SchemaFlagWithoutConfig(t *testing.T) {
	dir := project(t, false)

	sc, err := Open(Options{SchemaPath: "schema/oscal.json"})
	require.NoError(t, err)
	assert.Equal(t, dir, sc.Dir)
	assert.Equal(t, config.Default().ModelPrefix, sc.Config.ModelPrefix)
	assert.Equal(t, "oscal_types", sc.PlanOptions().BuiltinNamespace)
}

func TestPreRunLoad(t *testing.T) {
	project(t, true)

	cmd := &cobra.Command{}
	cmd.Flags().String(ConfigFlag, config.FileName, "")
	cmd.Flags().String(SchemaFlag, "", "")
	cmd.SetContext(context.Background())

	assert.Nil(t, FromCommand(cmd))
	_, err := RequireFromCommand(cmd)
	require.Error(t, err)

	require.NoError(t, PreRunLoad(cmd, nil))
	sc, err := RequireFromCommand(cmd)
	require.NoError(t, err)
	assert.Equal(t, "1.1.2", sc.Schema.Version)
}

func TestPreRunLoad_NotInitialized(t *testing.T) {
	project(t, false)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	err := PreRunLoad(cmd, nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestLoggerFromCommand(t *testing.T) {
	cmd := &cobra.Command{}
	assert.NotNil(t, LoggerFromCommand(cmd))

	log := zap.NewExample()
	WithLogger(cmd, log)
	assert.Same(t, log, LoggerFromCommand(cmd))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger("warn", &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", zap.String("path", "definitions.x"))
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), `"path": "definitions.x"`)

	_, err = NewLogger("loud", &buf)
	require.Error(t, err)
}
