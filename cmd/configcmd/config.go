// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package configcmd

import (
	"strings"

	"github.com/ava-labs/token-deployer/pkg/application"
	"github.com/ava-labs/token-deployer/pkg/cobrautils"
	"github.com/ava-labs/token-deployer/pkg/config"

	"github.com/spf13/cobra"
)

var app *application.TokenDeployer

func NewCmd(injectedApp *application.TokenDeployer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Modify configuration for token-deployer",
		Long: `Customize configuration for token-deployer. Configured values are used
when the matching flag is not given. Valid keys are: ` + strings.Join(config.Keys, ", "),
		RunE: cobrautils.CommandSuiteUsage,
	}
	app = injectedApp
	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	return cmd
}
