// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package internal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swanky-oscal/oscal-codegen/internal/config"
	"github.com/swanky-oscal/oscal-codegen/internal/translate/rust"
)

func TestTranslators(t *testing.T) {
	assert.Equal(t, []string{"markdown", "rust"}, Translators(nil, nil).Available())

	cfg := config.Default()
	cfg.Crate.Name = "custom"
	tr, err := Translators(cfg, nil).Get("rust")
	require.NoError(t, err)
	assert.Equal(t, "custom", tr.(*rust.Translator).Crate.Name)
}

func TestRun(t *testing.T) {
	require.NoError(t, Run(context.Background(), []string{"version"}))
	require.Error(t, Run(context.Background(), []string{"nope"}))
}
