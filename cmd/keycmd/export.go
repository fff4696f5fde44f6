// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"fmt"
	"os"

	"github.com/ava-labs/token-deployer/pkg/cobrautils"
	"github.com/ava-labs/token-deployer/pkg/constants"
	"github.com/ava-labs/token-deployer/pkg/key"
	"github.com/ava-labs/token-deployer/pkg/utils"

	"github.com/spf13/cobra"
)

var outputFile string

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [keyName]",
		Short: "Exports a signing key",
		Long: `Exports a stored signing key. By default, the tool writes the key file content to
stdout: the hex encoded private key for soft keys, the encrypted json for
keystore keys. If the --output flag is provided, the key will be written to a
file of your choosing.`,
		Args:         cobrautils.ExactArgs(1),
		RunE:         exportKey,
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(
		&outputFile,
		"output",
		"o",
		"",
		"write the key to the provided file path",
	)

	return cmd
}

func keyFilePath(keyName string) (string, error) {
	for _, keyPath := range []string{app.GetKeyPath(keyName), app.GetKeystorePath(keyName)} {
		if utils.FileExists(keyPath) {
			return keyPath, nil
		}
	}
	return "", fmt.Errorf("%w: %s", key.ErrKeyNotFound, keyName)
}

func exportKey(_ *cobra.Command, args []string) error {
	keyPath, err := keyFilePath(args[0])
	if err != nil {
		return err
	}
	keyBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(keyBytes))
		return nil
	}

	return os.WriteFile(utils.ExpandHome(outputFile), keyBytes, constants.WriteReadUserOnlyPerms)
}
