// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/swanky-oscal/oscal-codegen/internal/config"
	"github.com/swanky-oscal/oscal-codegen/internal/session"
	"github.com/swanky-oscal/oscal-codegen/internal/translate"
)

// TranslatorsFunc builds the available translators for a configuration.
// cfg is nil when only the translator names are needed. static is nil when
// no static sources directory is configured.
type TranslatorsFunc func(cfg *config.Config, static fs.FS) translate.Register

type rootOptions struct {
	configPath string
	schemaPath string
	logLevel   string
	verbose    bool
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(translators TranslatorsFunc) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "oscalgen",
		Short: "Generate typed models from the OSCAL JSON schema",
		Long: `Generate typed models from the OSCAL complete JSON schema.

The schema definitions are organized into a namespace tree; every object
becomes one unit of generated code with the imports it needs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := opts.logLevel
			if opts.verbose {
				level = "debug"
			}
			log, err := session.NewLogger(level, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			session.WithLogger(cmd, log)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, session.ConfigFlag, "c", config.FileName, "Path to the configuration file")
	flags.StringVarP(&opts.schemaPath, session.SchemaFlag, "s", "", "Path to the schema document (overrides the configuration)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newInitCmd(),
		newGenerateCmd(translators),
		newTreeCmd(),
		newImportsCmd(),
		newCheckCmd(),
		newVersionCmd(),
	)

	return rootCmd
}
