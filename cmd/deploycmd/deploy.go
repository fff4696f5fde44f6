// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/token-deployer/cmd/flags"
	"github.com/ava-labs/token-deployer/pkg/application"
	"github.com/ava-labs/token-deployer/pkg/cobrautils"
	"github.com/ava-labs/token-deployer/pkg/constants"
	"github.com/ava-labs/token-deployer/pkg/contract"
	"github.com/ava-labs/token-deployer/pkg/deployer"
	"github.com/ava-labs/token-deployer/pkg/recipe"
	"github.com/ava-labs/token-deployer/pkg/ux"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var app *application.TokenDeployer

type DeployFlags struct {
	SignerFlags  flags.SignerFlags
	rpcEndpoint  string
	recipeFile   string
	artifactsDir string
	timeout      time.Duration
}

var deployFlags DeployFlags

var errRecipeNameAndFile = errors.New("a recipe name and --recipe-file can not be given together")

// token-deployer deploy
func NewCmd(injectedApp *application.TokenDeployer) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "deploy [recipe]",
		Short: "Deploy a token contract and configure it",
		Long: `The deploy command runs a deployment recipe: it deploys the recipe contract
with the recipe constructor arguments and then makes the recipe calls on the
new contract, in order, signing everything with the recipe account.

Without arguments the plentilei recipe is used. Run 'token-deployer recipe list'
to see the builtin recipes, or pass your own one with --recipe-file.

Every run deploys a new contract. If a call fails after the deploy, the
contract stays deployed but unconfigured and its address is reported.`,
		Args:         cobrautils.MaximumNArgs(1),
		RunE:         deploy,
		SilenceUsage: true,
	}
	flags.AddRPCFlagToCmd(cmd, app, &deployFlags.rpcEndpoint)
	signerGroup := deployFlags.SignerFlags.AddToCmd(cmd, "to sign the deployment")
	cmd.Flags().StringVar(&deployFlags.recipeFile, "recipe-file", "", "path of a yaml recipe to use instead of a builtin one")
	cmd.Flags().StringVar(
		&deployFlags.artifactsDir,
		"artifacts",
		"",
		fmt.Sprintf("directory holding the compiled contracts (default %q)", constants.DefaultArtifactsDir),
	)
	cmd.Flags().DurationVar(&deployFlags.timeout, "timeout", constants.DeployTimeout, "maximum time to wait for the whole deployment")
	cmd.SetHelpFunc(flags.WithGroupedHelp([]flags.GroupedFlags{signerGroup}))
	return cmd
}

func loadRecipe(args []string) (*recipe.Recipe, error) {
	recipeName := ""
	if len(args) > 0 {
		recipeName = args[0]
	}
	if recipeName != "" && deployFlags.recipeFile != "" {
		return nil, errRecipeNameAndFile
	}
	return recipe.Load(recipeName, deployFlags.recipeFile)
}

func deploy(_ *cobra.Command, args []string) error {
	r, err := loadRecipe(args)
	if err != nil {
		return err
	}
	signers, err := deployFlags.SignerFlags.SignerStore(app)
	if err != nil {
		return err
	}
	artifactsDir := app.Conf.StringValue(deployFlags.artifactsDir, constants.ConfigArtifactsDirKey, constants.DefaultArtifactsDir)
	d := deployer.New(
		app.Log,
		signers,
		contract.NewArtifactDir(artifactsDir),
		spinningDialer(contract.Dial),
	)

	ux.Logger.PrintToUser(logging.Yellow.Wrap("RPC Endpoint: %s"), deployFlags.rpcEndpoint)
	ux.Logger.PrintToUser("Running recipe %s: %s", r.Name, r.Description)
	ctx, cancel := context.WithTimeout(context.Background(), deployFlags.timeout)
	defer cancel()
	start := time.Now()
	result, err := d.Run(ctx, r, deployer.Options{
		RPCURL:  deployFlags.rpcEndpoint,
		KeyName: deployFlags.SignerFlags.KeyNameOverride(app),
	})
	if result != nil {
		app.RecordDeployment(application.NewDeploymentRecord(deployFlags.rpcEndpoint, result, err))
		ux.Logger.PrintToUser("")
		ux.PrintTable(summaryTable(result))
	}
	if err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Recipe %s completed in %s", r.Name, time.Since(start).Round(time.Second))
	return nil
}

func summaryTable(result *deployer.Result) table.Writer {
	t := ux.DefaultTable("Deployment", nil)
	t.AppendRow(table.Row{"Recipe", result.Recipe})
	t.AppendRow(table.Row{"Contract", result.Artifact})
	t.AppendRow(table.Row{"Account", result.Account})
	t.AppendRow(table.Row{"Deployer Address", result.Deployer.Hex()})
	t.AppendRow(table.Row{"Contract Address", result.ContractAddress.Hex()})
	t.AppendRow(table.Row{"Deploy Tx", result.DeployTxHash.Hex()})
	for _, call := range result.Calls {
		t.AppendRow(table.Row{call.Method + " Tx", call.TxHash.Hex()})
	}
	return t
}
