// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/swanky-oscal/oscal-codegen/internal/model"
	"github.com/swanky-oscal/oscal-codegen/internal/plan"
	"github.com/swanky-oscal/oscal-codegen/internal/session"
)

func newImportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imports <namespace> [name]",
		Short: "Print the imports of one unit",
		Long: `Print the import statements computed for the object declared at a namespace.

The namespace is "::"-delimited, e.g. oscal_ap::assessment_plan. When a
name is given it must match the object's type name.`,
		Example: `  oscalgen imports oscal_ap::assessment_plan
  oscalgen imports oscal_ap::assessment_plan::task Task`,
		Args:    cobra.RangeArgs(1, 2),
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runImports(cmd.OutOrStdout(), sc, args)
		},
	}
	return cmd
}

func runImports(w io.Writer, sc *session.Context, args []string) error {
	ns := model.ParsePath(args[0])
	sub, ok := sc.Schema.Tree.Lookup(ns)
	if !ok || len(ns) == 0 {
		return fmt.Errorf("namespace %q not found", args[0])
	}
	obj, err := sub.Object(ns.Last())
	if err != nil {
		return fmt.Errorf("namespace %q declares no object", args[0])
	}
	if len(args) > 1 && args[1] != obj.Name {
		return fmt.Errorf("namespace %q declares %s, not %s", args[0], obj.Name, args[1])
	}

	u, err := plan.Describe(obj, sc.Registry, sc.PlanOptions())
	if err != nil {
		return err
	}

	owner := !sub.IsReducible(ns.Last())
	for _, line := range useLines(u.Imports, sc.Config.Crate.TypesCrate, owner) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// useLines renders imports as Rust use declarations. Owner files reach
// their children through self, other files through super.
func useLines(imp plan.Imports, typesCrate string, owner bool) []string {
	var lines []string
	if imp.Types != "" {
		lines = append(lines, fmt.Sprintf("use %s::%s;", typesCrate, imp.Types))
	}
	if imp.Crates != "" {
		lines = append(lines, fmt.Sprintf("use crate::%s;", imp.Crates))
	}
	if imp.Supers != "" {
		prefix := "super"
		if owner {
			prefix = "self"
		}
		lines = append(lines, fmt.Sprintf("use %s::%s;", prefix, imp.Supers))
	}
	return lines
}
