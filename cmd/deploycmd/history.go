// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"time"

	"github.com/ava-labs/token-deployer/pkg/application"
	"github.com/ava-labs/token-deployer/pkg/cobrautils"
	"github.com/ava-labs/token-deployer/pkg/ux"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// token-deployer history
func NewHistoryCmd(injectedApp *application.TokenDeployer) *cobra.Command {
	app = injectedApp
	return &cobra.Command{
		Use:   "history",
		Short: "List the contracts deployed from this machine",
		Long: `The history command lists every contract deployed by previous runs, including
the ones left unconfigured because a post deploy call failed and the ones
whose deployment was sent but never confirmed.`,
		Args:         cobrautils.ExactArgs(0),
		RunE:         history,
		SilenceUsage: true,
	}
}

func history(_ *cobra.Command, _ []string) error {
	records, err := app.LoadDeployments()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		ux.Logger.PrintToUser("No deployments yet")
		return nil
	}
	ux.PrintTable(historyTable(records))
	return nil
}

func historyTable(records []application.DeploymentRecord) table.Writer {
	t := ux.DefaultTable("Deployments", table.Row{"Time", "Recipe", "Contract Address", "Status", "RPC"})
	for _, record := range records {
		status := "configured"
		switch {
		case record.Unconfigured():
			status = "unconfigured (" + record.FailedCall + " failed)"
		case record.Unconfirmed:
			status = "unconfirmed (" + record.DeployTxHash + ")"
		}
		t.AppendRow(table.Row{
			record.Time.Local().Format(time.DateTime),
			record.Recipe,
			record.ContractAddress,
			status,
			record.RPCURL,
		})
	}
	return t
}
