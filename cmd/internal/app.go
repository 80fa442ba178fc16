// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"
	"io/fs"

	"github.com/swanky-oscal/oscal-codegen/internal/commands"
	"github.com/swanky-oscal/oscal-codegen/internal/config"
	"github.com/swanky-oscal/oscal-codegen/internal/translate"
	"github.com/swanky-oscal/oscal-codegen/internal/translate/markdown"
	"github.com/swanky-oscal/oscal-codegen/internal/translate/rust"
)

// Translators returns every supported translator configured by cfg.
func Translators(cfg *config.Config, static fs.FS) translate.Register {
	if cfg == nil {
		cfg = config.Default()
	}
	return translate.Register{
		"rust":     rust.New(cfg.RustCrate(), static),
		"markdown": &markdown.Translator{},
	}
}

// Run is the main application logic, extracted for testability.
func Run(ctx context.Context, args []string) error {
	rootCmd := commands.NewRootCmd(Translators)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
