// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cobrautils

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ava-labs/token-deployer/pkg/deployer"
	"github.com/ava-labs/token-deployer/pkg/ux"

	"github.com/spf13/cobra"
)

const (
	exitCodeFailure = 1
	// the contract exists on chain but is not fully configured
	exitCodePartialDeploy = 2
)

type UsageError struct {
	cmd *cobra.Command
	err error
}

func (e UsageError) Error() string {
	return fmt.Sprintf("Usage error: %s", e.err)
}

func (e UsageError) Unwrap() error {
	return e.err
}

func NewUsageError(cmd *cobra.Command, err error) UsageError {
	return UsageError{
		cmd: cmd,
		err: err,
	}
}

func ExactArgs(n int) cobra.PositionalArgs {
	return wrapArgs(cobra.ExactArgs(n))
}

func MaximumNArgs(n int) cobra.PositionalArgs {
	return wrapArgs(cobra.MaximumNArgs(n))
}

func wrapArgs(validator cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		err := validator(cmd, args)
		if err != nil {
			err = NewUsageError(cmd, err)
		}
		return err
	}
}

// ExitCode maps a command error to the process exit status
func ExitCode(err error) int {
	var postDeployErr *deployer.PostDeployError
	var unconfirmedErr *deployer.UnconfirmedDeployError
	if errors.As(err, &postDeployErr) || errors.As(err, &unconfirmedErr) {
		return exitCodePartialDeploy
	}
	return exitCodeFailure
}

func HandleErrors(err error) {
	if err == nil {
		return
	}
	var usageErr UsageError
	var postDeployErr *deployer.PostDeployError
	var unconfirmedErr *deployer.UnconfirmedDeployError
	switch {
	case errors.As(err, &usageErr):
		usageErr.cmd.Println(usageErr.cmd.UsageString())
		usageErr.cmd.Println()
		usageErr.cmd.Println(usageErr)
	case errors.As(err, &postDeployErr):
		ux.Logger.RedXToUser("Contract deployed at %s was NOT configured", postDeployErr.ContractAddress.Hex())
		ux.Logger.PrintToUser("Error: %s", err)
	case errors.As(err, &unconfirmedErr):
		ux.Logger.RedXToUser("Deployment of %s was sent but NOT confirmed (txHash=%s)", unconfirmedErr.ContractAddress.Hex(), unconfirmedErr.TxHash.Hex())
		ux.Logger.PrintToUser("Error: %s", err)
	default:
		ux.Logger.PrintToUser("Error: %s", err)
	}
	os.Exit(ExitCode(err))
}

func CommandSuiteUsage(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return NewUsageError(
			cmd,
			fmt.Errorf("invalid subcommand %q", strings.Join(args, " ")),
		)
	}
	err := cmd.Help()
	if err != nil {
		fmt.Println(err)
	}
	return nil
}

func ConfigureRootCmd(cmd *cobra.Command) {
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return NewUsageError(cmd, err)
	})
}
