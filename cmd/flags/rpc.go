// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"github.com/ava-labs/token-deployer/pkg/application"
	"github.com/ava-labs/token-deployer/pkg/constants"
	"github.com/ava-labs/token-deployer/pkg/evm"
	"github.com/ava-labs/token-deployer/pkg/prompts"

	"github.com/spf13/cobra"
)

const rpcURLFlag = "rpc"

// AddRPCFlagToCmd adds the --rpc flag. Before [cmd] runs the endpoint is
// taken from the flag, then from the config, and finally prompted for.
func AddRPCFlagToCmd(cmd *cobra.Command, app *application.TokenDeployer, rpc *string) {
	cmd.Flags().StringVar(rpc, rpcURLFlag, "", "rpc endpoint of the EVM chain to deploy to (scheme is optional)")

	existingPreRunE := cmd.PreRunE
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if existingPreRunE != nil {
			if err := existingPreRunE(cmd, args); err != nil {
				return err
			}
		}
		return ValidateRPC(app, rpc)
	}
}

func ValidateRPC(app *application.TokenDeployer, rpc *string) error {
	if app.Conf != nil {
		*rpc = app.Conf.StringValue(*rpc, constants.ConfigRPCURLKey, "")
	}
	if *rpc == "" {
		if app.Prompt == nil {
			return constants.ErrNoRPCURL
		}
		var err error
		*rpc, err = app.Prompt.CaptureURL("What is the RPC endpoint?")
		return err
	}
	hasScheme, err := evm.HasScheme(*rpc)
	if err != nil {
		return err
	}
	if hasScheme {
		return prompts.ValidateURLFormat(*rpc)
	}
	return nil
}
