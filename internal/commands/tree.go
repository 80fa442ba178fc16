// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/swanky-oscal/oscal-codegen/internal/model"
	"github.com/swanky-oscal/oscal-codegen/internal/session"
)

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the namespace tree",
		Long: `Print the namespace tree built from the schema definitions.

Subtrees marked with * hold a single object and are emitted as one file.`,
		Example: `  oscalgen tree
  oscalgen tree --schema oscal_complete_schema.json`,
		Args:    cobra.NoArgs,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderTree(sc.Schema).String())
			return err
		},
	}
	return cmd
}

func renderTree(schema *model.Schema) treeprint.Tree {
	root := treeprint.NewWithRoot("OSCAL " + schema.Version)
	addTree(root, schema.Tree)
	return root
}

func addTree(branch treeprint.Tree, t *model.Tree) {
	for _, key := range t.Keys() {
		e, _ := t.Get(key)
		if e.Object != nil {
			branch.AddNode(objectLabel(e.Object))
			continue
		}
		label := key
		if e.Tree.IsReducible(key) {
			label += " *"
		}
		addTree(branch.AddBranch(label), e.Tree)
	}
}

func objectLabel(obj *model.ObjectNode) string {
	switch {
	case obj.IsAlias():
		return fmt.Sprintf("%s = %s", obj.Name, obj.Alias)
	case len(obj.Properties) > 0:
		return fmt.Sprintf("%s (%d properties)", obj.Name, len(obj.Properties))
	default:
		return obj.Name
	}
}
