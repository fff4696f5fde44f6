// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"github.com/ava-labs/token-deployer/pkg/cobrautils"
	"github.com/ava-labs/token-deployer/pkg/key"
	"github.com/ava-labs/token-deployer/pkg/ux"

	"github.com/spf13/cobra"
)

var privateKey string

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [keyName]",
		Short: "Store an existing private key",
		Long: `The key import command stores a hex encoded private key under the given name.
When --private-key is not given the key is prompted for.`,
		Args:         cobrautils.ExactArgs(1),
		RunE:         importKey,
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&privateKey, "private-key", "", "hex encoded private key, with or without 0x prefix")
	cmd.Flags().BoolVarP(&forceCreate, forceFlag, "f", false, "overwrite an existing key with the same name")
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "store the key as an encrypted keystore")
	cmd.Flags().StringVar(&passwordFile, "password-file", "", "file holding the keystore password, instead of prompting")
	return cmd
}

func importKey(_ *cobra.Command, args []string) error {
	keyName := args[0]
	if err := checkOverwrite(keyName); err != nil {
		return err
	}
	if privateKey == "" {
		var err error
		privateKey, err = app.Prompt.CapturePassword("Private key")
		if err != nil {
			return err
		}
	}
	k, err := key.NewSoft(key.WithPrivateKeyHex(privateKey))
	if err != nil {
		return err
	}
	if err := storeKey(keyName, k); err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Key imported")
	return nil
}
