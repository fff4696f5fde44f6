// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"github.com/ava-labs/token-deployer/pkg/application"
	"github.com/ava-labs/token-deployer/pkg/cobrautils"

	"github.com/spf13/cobra"
)

var app *application.TokenDeployer

func NewCmd(injectedApp *application.TokenDeployer) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "key",
		Short: "Create and manage signing keys",
		Long: `The key command suite provides a collection of tools for creating and
importing the keys that sign deployments. Recipes sign with the
deployer_account key unless they name another one.

To get started, use the key create command.`,
		RunE: cobrautils.CommandSuiteUsage,
	}

	// token-deployer key create
	cmd.AddCommand(newCreateCmd())

	// token-deployer key import
	cmd.AddCommand(newImportCmd())

	// token-deployer key list
	cmd.AddCommand(newListCmd())

	// token-deployer key export
	cmd.AddCommand(newExportCmd())

	return cmd
}
