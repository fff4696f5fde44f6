// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"fmt"

	"github.com/ava-labs/token-deployer/pkg/application"
	"github.com/ava-labs/token-deployer/pkg/constants"
	"github.com/ava-labs/token-deployer/pkg/deployer"
	"github.com/ava-labs/token-deployer/pkg/evm"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	privateKeyFlagName   = "private-key"
	keyFlagName          = "key"
	passwordFileFlagName = "password-file"
)

// SignerFlags selects the account that signs: a stored key, or a raw
// private key given on the command line
type SignerFlags struct {
	PrivateKey   string
	KeyName      string
	PasswordFile string
}

func (sf *SignerFlags) AddToCmd(
	cmd *cobra.Command,
	goal string,
) GroupedFlags {
	return RegisterFlagGroup(cmd, "Signer Flags", "show-signer-flags", false, func(set *pflag.FlagSet) {
		set.StringVar(
			&sf.PrivateKey,
			privateKeyFlagName,
			"",
			fmt.Sprintf("hex encoded private key to use %s", goal),
		)
		set.StringVar(
			&sf.KeyName,
			keyFlagName,
			"",
			fmt.Sprintf("stored key to use %s, overriding the recipe account", goal),
		)
		set.StringVar(
			&sf.PasswordFile,
			passwordFileFlagName,
			"",
			"file holding the password of keystore keys",
		)
	})
}

func (sf *SignerFlags) Validate() error {
	if !EnsureMutuallyExclusive([]bool{
		sf.PrivateKey != "",
		sf.KeyName != "",
	}) {
		return fmt.Errorf("%s and %s are mutually exclusive flags", privateKeyFlagName, keyFlagName)
	}
	return nil
}

// KeyNameOverride returns the key that replaces the recipe account, if any
func (sf *SignerFlags) KeyNameOverride(app *application.TokenDeployer) string {
	if sf.PrivateKey != "" || app.Conf == nil {
		return sf.KeyName
	}
	return app.Conf.StringValue(sf.KeyName, constants.ConfigKeyNameKey, "")
}

// SignerStore returns where deployment accounts get resolved from
func (sf *SignerFlags) SignerStore(app *application.TokenDeployer) (deployer.SignerStore, error) {
	if err := sf.Validate(); err != nil {
		return nil, err
	}
	if sf.PrivateKey != "" {
		signer, err := evm.NewSignerFromPrivateKey(sf.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", privateKeyFlagName, err)
		}
		return privateKeySigner{signer: signer}, nil
	}
	if sf.PasswordFile != "" {
		app.PasswordFile = sf.PasswordFile
	}
	return app, nil
}

// privateKeySigner signs for any account name
type privateKeySigner struct {
	signer *evm.Signer
}

func (p privateKeySigner) GetSigner(string) (*evm.Signer, error) {
	return p.signer, nil
}
