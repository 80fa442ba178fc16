// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swanky-oscal/oscal-codegen/internal/config"
	"github.com/swanky-oscal/oscal-codegen/internal/prompts"
	"github.com/swanky-oscal/oscal-codegen/internal/session"
)

type initOptions struct {
	output         string
	crateName      string
	authors        string
	force          bool
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new oscalgen project",
		Long:  `Initialize a new oscalgen project with an oscalgen.yaml configuration file.`,
		Example: `  # Interactive mode
  oscalgen init

  # Non-interactive
  oscalgen init --schema oscal_complete_schema.json --crate-name oscal_lib --non-interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory")
	cmd.Flags().StringVar(&opts.crateName, "crate-name", "", "Name of the generated Rust crate")
	cmd.Flags().StringVar(&opts.authors, "authors", "", "Crate authors, comma-separated")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing configuration")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	path, _ := cmd.Flags().GetString(session.ConfigFlag)
	if path == "" {
		path = config.FileName
	}
	if _, err := os.Stat(path); err == nil && !opts.force {
		return fmt.Errorf("%s already exists; project already initialized", path)
	}

	cfg := config.Default()
	if s, _ := cmd.Flags().GetString(session.SchemaFlag); s != "" {
		cfg.Schema = s
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	if opts.crateName != "" {
		cfg.Crate.Name = opts.crateName
	}
	if opts.authors != "" {
		cfg.Crate.Authors = prompts.SplitList(opts.authors)
	}

	if !opts.nonInteractive {
		if err := prompts.RunInitForm(cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return errors.Join(session.ErrInvalidConfig, err)
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Config", Value: path},
		{Label: "Schema", Value: cfg.Schema},
		{Label: "Output", Value: cfg.Output},
		{Label: "Crate", Value: cfg.Crate.Name},
	}, "Initialization completed")
	return nil
}
