// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package configcmd

import (
	"github.com/ava-labs/token-deployer/pkg/cobrautils"
	"github.com/ava-labs/token-deployer/pkg/ux"

	"github.com/spf13/cobra"
)

// token-deployer config set
func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "set [key] [value]",
		Short:        "Set a configuration value",
		Long:         "Stores a configuration value in the config file, creating the file if needed",
		RunE:         setConfigValue,
		Args:         cobrautils.ExactArgs(2),
		SilenceUsage: true,
	}
}

func setConfigValue(_ *cobra.Command, args []string) error {
	if err := app.Conf.SetConfigValue(args[0], args[1]); err != nil {
		return err
	}
	ux.Logger.PrintToUser("%s set to %s in %s", args[0], args[1], app.Conf.GetConfigPath())
	return nil
}
