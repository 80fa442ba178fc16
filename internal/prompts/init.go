// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/swanky-oscal/oscal-codegen/internal/config"
)

// RunInitForm runs the interactive form for the init command.
// It fills cfg with user input; current values are the defaults.
func RunInitForm(cfg *config.Config) error {
	authors := strings.Join(cfg.Crate.Authors, ", ")
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Path to the OSCAL JSON schema").
				Placeholder("oscal_complete_schema.json").
				Validate(requiredValidator("schema path")).
				Value(&cfg.Schema),
			huh.NewInput().
				Title("Output directory").
				Placeholder("generated").
				Validate(requiredValidator("output directory")).
				Value(&cfg.Output),
			huh.NewInput().
				Title("Static sources directory (optional)").
				Value(&cfg.Static),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Crate name").
				Validate(identifierValidator).
				Value(&cfg.Crate.Name),
			huh.NewInput().
				Title("Crate version").
				Placeholder("0.1.0").
				Value(&cfg.Crate.Version),
			huh.NewInput().
				Title("Authors (comma-separated)").
				Value(&authors),
		),
	).WithTheme(Theme()).Run()
	if err != nil {
		return err
	}
	cfg.Crate.Authors = SplitList(authors)
	return nil
}

// SplitList splits a comma-separated list, dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
