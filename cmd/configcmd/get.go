// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package configcmd

import (
	"github.com/ava-labs/token-deployer/pkg/cobrautils"
	"github.com/ava-labs/token-deployer/pkg/config"
	"github.com/ava-labs/token-deployer/pkg/ux"

	"github.com/spf13/cobra"
)

// token-deployer config get
func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "get [key]",
		Short:        "Print configuration values",
		Long:         "Prints the value of the given configuration key, or of every key when none is given",
		RunE:         getConfigValues,
		Args:         cobrautils.MaximumNArgs(1),
		SilenceUsage: true,
	}
}

func getConfigValues(_ *cobra.Command, args []string) error {
	keys := config.Keys
	if len(args) == 1 {
		if err := config.ValidateKey(args[0]); err != nil {
			return err
		}
		keys = args
	}
	for _, key := range keys {
		if !app.Conf.ConfigValueIsSet(key) {
			ux.Logger.PrintToUser("%s: <not set>", key)
			continue
		}
		ux.Logger.PrintToUser("%s: %s", key, app.Conf.GetConfigStringValue(key))
	}
	return nil
}
