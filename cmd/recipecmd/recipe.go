// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package recipecmd

import (
	"github.com/ava-labs/token-deployer/pkg/cobrautils"

	"github.com/spf13/cobra"
)

// token-deployer recipe
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Inspect deployment recipes",
		Long: `A recipe describes a deployment: the compiled contract to deploy, its
constructor arguments, the account that signs and the calls to make on the
contract once deployed. The recipe command suite lists and prints recipes.`,
		RunE: cobrautils.CommandSuiteUsage,
	}
	// token-deployer recipe list
	cmd.AddCommand(newListCmd())
	// token-deployer recipe describe
	cmd.AddCommand(newDescribeCmd())
	return cmd
}
