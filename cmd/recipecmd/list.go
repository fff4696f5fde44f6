// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package recipecmd

import (
	"github.com/ava-labs/token-deployer/pkg/cobrautils"
	"github.com/ava-labs/token-deployer/pkg/recipe"
	"github.com/ava-labs/token-deployer/pkg/ux"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
)

const descriptionWidth = 40

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List the builtin recipes",
		Args:         cobrautils.ExactArgs(0),
		RunE:         listRecipes,
		SilenceUsage: true,
	}
}

func listRecipes(_ *cobra.Command, _ []string) error {
	recipes, err := recipe.Builtins()
	if err != nil {
		return err
	}
	ux.PrintTable(recipesTable(recipes))
	return nil
}

func recipesTable(recipes []*recipe.Recipe) table.Writer {
	t := ux.DefaultTable("Recipes", table.Row{"Name", "Contract", "Account", "Calls", "Description"})
	for _, r := range recipes {
		calls := ""
		for i, call := range r.Calls {
			if i > 0 {
				calls += "\n"
			}
			calls += call.Method
		}
		t.AppendRow(table.Row{
			r.Name,
			r.Artifact,
			r.Account,
			calls,
			wordwrap.WrapString(r.Description, descriptionWidth),
		})
	}
	return t
}
