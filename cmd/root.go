// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/ava-labs/token-deployer/cmd/configcmd"
	"github.com/ava-labs/token-deployer/cmd/deploycmd"
	"github.com/ava-labs/token-deployer/cmd/keycmd"
	"github.com/ava-labs/token-deployer/cmd/recipecmd"
	"github.com/ava-labs/token-deployer/pkg/application"
	"github.com/ava-labs/token-deployer/pkg/cobrautils"
	"github.com/ava-labs/token-deployer/pkg/config"
	"github.com/ava-labs/token-deployer/pkg/constants"
	"github.com/ava-labs/token-deployer/pkg/prompts"
	"github.com/ava-labs/token-deployer/pkg/ux"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/spf13/cobra"
)

var (
	app *application.TokenDeployer

	logLevel   string
	configFile string

	Version = ""
)

func NewRootCmd() *cobra.Command {
	// rootCmd represents the base command when called without any subcommands
	rootCmd := &cobra.Command{
		Use: "token-deployer",
		Long: `token-deployer deploys the PlentiLEI token contracts to an EVM chain and
applies their post-deployment configuration.

Each deployment is described by a recipe: the contract artifact to deploy,
its constructor arguments, the key that signs and the configuration calls to
make once the contract exists. The plentilei and plentilei-v2 recipes are
built in.

To get started, store the deployer key with key create deployer_account and
then run deploy plentilei --rpc <url>.`,
		PersistentPreRunE: createApp,
		Version:           Version,
		SilenceErrors:     true,
	}

	// Disable printing the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.token-deployer/config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "ERROR", "log level for the application")

	// add sub commands
	rootCmd.AddCommand(deploycmd.NewCmd(app))
	rootCmd.AddCommand(deploycmd.NewHistoryCmd(app))
	rootCmd.AddCommand(recipecmd.NewCmd())
	rootCmd.AddCommand(keycmd.NewCmd(app))
	rootCmd.AddCommand(configcmd.NewCmd(app))

	cobrautils.ConfigureRootCmd(rootCmd)
	return rootCmd
}

func createApp(*cobra.Command, []string) error {
	baseDir, err := setupEnv()
	if err != nil {
		return err
	}
	log, err := setupLogging(baseDir)
	if err != nil {
		return err
	}
	cf := config.New()
	app.Setup(baseDir, log, cf, prompts.NewPrompter())
	if configFile == "" {
		configFile = app.GetConfigPath()
	}
	cf.SetConfig(log, configFile)
	return nil
}

func setupEnv() (string, error) {
	// Set base dir
	usr, err := user.Current()
	if err != nil {
		// no logger here yet
		fmt.Printf("unable to get system user %s\n", err)
		return "", err
	}
	baseDir := filepath.Join(usr.HomeDir, constants.BaseDirName)

	// Create base dir if it doesn't exist
	if err := os.MkdirAll(baseDir, os.ModePerm); err != nil {
		// no logger here yet
		fmt.Printf("failed creating the basedir %s: %s\n", baseDir, err)
		return "", err
	}
	return baseDir, nil
}

func setupLogging(baseDir string) (logging.Logger, error) {
	var err error

	config := logging.Config{}
	config.LogLevel = logging.Info
	config.DisplayLevel, err = logging.ToLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level configured: %s", logLevel)
	}
	config.Directory = filepath.Join(baseDir, constants.LogDir)
	if err := os.MkdirAll(config.Directory, perms.ReadWriteExecute); err != nil {
		return nil, fmt.Errorf("failed creating log directory: %w", err)
	}

	// some logging config params
	config.LogFormat = logging.Colors
	config.MaxSize = constants.MaxLogFileSize
	config.MaxFiles = constants.MaxNumOfLogFiles
	config.MaxAge = constants.RetainOldFiles

	factory := logging.NewFactory(config)
	log, err := factory.Make("token-deployer")
	if err != nil {
		factory.Close()
		return nil, fmt.Errorf("failed setting up logging, exiting: %w", err)
	}
	// create the user facing logger as a global var
	ux.NewUserLog(log, os.Stdout)
	return log, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	app = application.New()
	rootCmd := NewRootCmd()
	cobrautils.HandleErrors(rootCmd.Execute())
}
