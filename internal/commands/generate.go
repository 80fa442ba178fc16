// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swanky-oscal/oscal-codegen/internal/diag"
	"github.com/swanky-oscal/oscal-codegen/internal/prompts"
	"github.com/swanky-oscal/oscal-codegen/internal/session"
	"github.com/swanky-oscal/oscal-codegen/internal/translate"
)

type generateOptions struct {
	format string
	output string
	remove bool
}

func newGenerateCmd(translators TranslatorsFunc) *cobra.Command {
	opts := &generateOptions{}
	available := strings.Join(translators(nil, nil).Available(), ", ")

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate code from the schema",
		Long: fmt.Sprintf(`Parse the schema, plan every unit and write the generated files.

Available formats: %s`, available),
		Example: `  # Generate the Rust crate into the configured output directory
  oscalgen generate --format rust

  # Regenerate markdown reference pages from scratch
  oscalgen generate --format markdown --output docs/model --remove`,
		Args:    cobra.NoArgs,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runGenerate(cmd, sc, translators, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", fmt.Sprintf("Output format (%s)", available))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (overrides the configuration)")
	cmd.Flags().BoolVar(&opts.remove, "remove", false, "Remove the output directory before generating")

	return cmd
}

func runGenerate(cmd *cobra.Command, sc *session.Context, translators TranslatorsFunc, opts *generateOptions) error {
	var static fs.FS
	if sc.Config.Static != "" {
		static = os.DirFS(sc.Path(sc.Config.Static))
	}
	reg := translators(sc.Config, static)

	format := opts.format
	if err := prompts.RunGenerateForm(&format, reg.Available()); err != nil {
		return err
	}
	t, err := reg.Get(format)
	if err != nil {
		return fmt.Errorf("unsupported format %q. Available formats: %s",
			format, strings.Join(reg.Available(), ", "))
	}

	output := opts.output
	if output == "" {
		output = sc.Path(sc.Config.Output)
	}
	if output == "" {
		return fmt.Errorf("no output directory configured")
	}
	if opts.remove {
		sc.Logger.Info("removing output directory", zap.String("path", output))
		if err := os.RemoveAll(output); err != nil {
			return fmt.Errorf("failed to remove output directory: %w", err)
		}
	}

	p, err := sc.Plan(cmd.Context())
	if err != nil {
		return err
	}

	written, err := translate.Generate(sc.Schema, p, t, translate.DirSink{Root: output})
	if err != nil {
		return err
	}
	sc.Logger.Debug("generation complete", zap.String("format", t.Name()), zap.Int("files", len(written)))

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Format", Value: t.Name()},
		{Label: "Schema version", Value: sc.Schema.Version},
		{Label: "Units", Value: strconv.Itoa(len(p.Units))},
		{Label: "Files", Value: strconv.Itoa(len(written))},
		{Label: "Warnings", Value: strconv.Itoa(warnings(sc.Reporter))},
		{Label: "Output", Value: output},
	}, "Generation completed")
	return nil
}

func warnings(rep *diag.Reporter) int {
	n := 0
	for _, d := range rep.Diagnostics() {
		if d.Severity == diag.Warning {
			n++
		}
	}
	return n
}
