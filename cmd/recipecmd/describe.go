// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package recipecmd

import (
	"errors"

	"github.com/ava-labs/token-deployer/pkg/cobrautils"
	"github.com/ava-labs/token-deployer/pkg/recipe"
	"github.com/ava-labs/token-deployer/pkg/ux"

	"github.com/spf13/cobra"
)

var recipeFile string

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe [recipe]",
		Short: "Print a recipe as yaml",
		Long: `The recipe describe command prints a builtin recipe, or the recipe file given
with --recipe-file, in the yaml format deploy --recipe-file accepts. Use it as
a starting point to write your own recipes.`,
		Args:         cobrautils.MaximumNArgs(1),
		RunE:         describeRecipe,
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&recipeFile, "recipe-file", "", "path of a yaml recipe to validate and print")
	return cmd
}

func describeRecipe(_ *cobra.Command, args []string) error {
	var (
		r   *recipe.Recipe
		err error
	)
	switch {
	case len(args) == 1 && recipeFile != "":
		return errors.New("a recipe name and --recipe-file can not be given together")
	case recipeFile != "":
		r, err = recipe.LoadFile(recipeFile)
	case len(args) == 1:
		r, err = recipe.Builtin(args[0])
	default:
		return errors.New("a recipe name or --recipe-file is needed")
	}
	if err != nil {
		return err
	}
	bs, err := r.Marshal()
	if err != nil {
		return err
	}
	ux.Logger.PrintToUser("%s", bs)
	return nil
}
