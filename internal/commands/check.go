// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swanky-oscal/oscal-codegen/internal/diag"
	"github.com/swanky-oscal/oscal-codegen/internal/jschema"
	"github.com/swanky-oscal/oscal-codegen/internal/prompts"
	"github.com/swanky-oscal/oscal-codegen/internal/session"
)

type checkOptions struct {
	strict bool
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the schema without writing files",
		Long: `Parse and plan the schema without writing any files, then print every
diagnostic, every reference that no definition registers, and every
"#/definitions/" reference the document does not declare.`,
		Example: `  oscalgen check
  oscalgen check --strict`,
		Args:    cobra.NoArgs,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runCheck(cmd, sc, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail when any warning is reported")

	return cmd
}

func runCheck(cmd *cobra.Command, sc *session.Context, opts *checkOptions) error {
	refs := jschema.Refs(sc.Document.Schema)
	missing := make(map[string]struct{})
	for _, ref := range jschema.MissingDefinitions(sc.Document.Schema) {
		missing[ref] = struct{}{}
		sc.Reporter.Warnf(diag.MissingDefinition, ref, "the document declares no definition %s", strings.TrimPrefix(ref, jschema.DefinitionsPrefix))
	}
	for _, ref := range refs {
		if _, ok := missing[ref]; ok {
			continue
		}
		if _, ok := sc.Registry.Lookup(ref); !ok {
			sc.Reporter.Warnf(diag.UnresolvedRef, ref, "no definition registers %s", ref)
		}
	}

	units := 0
	p, planErr := sc.Plan(cmd.Context())
	if planErr == nil {
		units = len(p.Units)
	}

	var msgs []string
	for _, d := range sc.Reporter.Diagnostics() {
		if d.Severity == diag.Warning {
			msgs = append(msgs, d.String())
		}
	}
	out := cmd.OutOrStdout()
	prompts.PrintWarnings(out, msgs)
	prompts.PrintResult(out, []prompts.ResultField{
		{Label: "Schema version", Value: sc.Schema.Version},
		{Label: "Identifiers", Value: strconv.Itoa(sc.Registry.Len())},
		{Label: "References", Value: strconv.Itoa(len(refs))},
		{Label: "Units", Value: strconv.Itoa(units)},
		{Label: "Warnings", Value: strconv.Itoa(len(msgs))},
	}, "")

	if planErr != nil {
		return planErr
	}
	if opts.strict && len(msgs) > 0 {
		return fmt.Errorf("check found %d warning(s)", len(msgs))
	}
	return nil
}
