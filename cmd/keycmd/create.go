// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package keycmd

import (
	"errors"

	"github.com/ava-labs/token-deployer/pkg/cobrautils"
	"github.com/ava-labs/token-deployer/pkg/key"
	"github.com/ava-labs/token-deployer/pkg/utils"
	"github.com/ava-labs/token-deployer/pkg/ux"

	"github.com/spf13/cobra"
)

const (
	forceFlag = "force"
)

var (
	forceCreate  bool
	encrypt      bool
	filename     string
	passwordFile string
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [keyName]",
		Short: "Create a signing key",
		Long: `The key create command generates a new private key and stores it under the
given name. With --file an existing key file is loaded instead, either a hex
encoded private key or an encrypted keystore json file.

With --encrypt the key is stored as an encrypted keystore and its password is
asked for every time it is used.`,
		Args:         cobrautils.ExactArgs(1),
		RunE:         createKey,
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&filename, "file", "", "import the key from the given file instead of generating one")
	cmd.Flags().BoolVarP(&forceCreate, forceFlag, "f", false, "overwrite an existing key with the same name")
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "store the key as an encrypted keystore")
	cmd.Flags().StringVar(&passwordFile, "password-file", "", "file holding the keystore password, instead of prompting")
	return cmd
}

func checkOverwrite(keyName string) error {
	if app.KeyExists(keyName) && !forceCreate {
		return errors.New("key already exists. Use --" + forceFlag + " parameter to overwrite")
	}
	return nil
}

func newKeyPassword() (string, error) {
	if !encrypt {
		return "", nil
	}
	if passwordFile != "" {
		return utils.ReadTrimmedFile(utils.ExpandHome(passwordFile))
	}
	return app.Prompt.CaptureNewPassword("Keystore password")
}

func storeKey(keyName string, k *key.SoftKey) error {
	password, err := newKeyPassword()
	if err != nil {
		return err
	}
	keyPath, err := app.SaveKey(keyName, k, password)
	if err != nil {
		return err
	}
	ux.Logger.PrintToUser("Key %s stored at %s", keyName, keyPath)
	ux.Logger.PrintToUser("Address: %s", k.C())
	return nil
}

func createKey(_ *cobra.Command, args []string) error {
	keyName := args[0]
	if err := checkOverwrite(keyName); err != nil {
		return err
	}

	if filename != "" {
		ux.Logger.PrintToUser("Loading user key...")
		if err := app.CopyKeyFile(filename, keyName); err != nil {
			return err
		}
		ux.Logger.GreenCheckmarkToUser("Key loaded")
		return nil
	}

	ux.Logger.PrintToUser("Generating new key...")
	k, err := key.NewSoft()
	if err != nil {
		return err
	}
	if err := storeKey(keyName, k); err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Key created")
	return nil
}
