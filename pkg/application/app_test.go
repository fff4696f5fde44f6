// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/token-deployer/pkg/constants"
	"github.com/ava-labs/token-deployer/pkg/deployer"
	"github.com/ava-labs/token-deployer/pkg/key"
	"github.com/ava-labs/token-deployer/pkg/prompts"

	"github.com/ava-labs/libevm/common"
	"github.com/stretchr/testify/require"
)

const (
	ewoqPrivateKey = "56289e99c94b6912bfc12adc093c9b51124f0dc54ac7a766b2bc5ccf558d8027"
	ewoqAddress    = "0x8db97C7cEcE249c2b98bDC0226Cc4C2A57BF52FC"
)

type passwordPrompter struct {
	prompts.Prompter
	password string
	err      error
	asked    int
}

func (p *passwordPrompter) CapturePassword(string) (string, error) {
	p.asked++
	return p.password, p.err
}

func ewoqKey(t *testing.T) *key.SoftKey {
	t.Helper()
	k, err := key.NewSoft(key.WithPrivateKeyHex(ewoqPrivateKey))
	require.NoError(t, err)
	return k
}

func TestGetSignerSoftKey(t *testing.T) {
	require := require.New(t)
	app := NewTestApp(t)
	require.False(app.KeyExists(constants.DeployerKeyName))

	keyPath, err := app.SaveKey(constants.DeployerKeyName, ewoqKey(t), "")
	require.NoError(err)
	require.Equal(filepath.Join(app.GetBaseDir(), "key", "deployer_account.pk"), keyPath)
	require.True(app.KeyExists(constants.DeployerKeyName))

	signer, err := app.GetSigner(constants.DeployerKeyName)
	require.NoError(err)
	require.Equal(common.HexToAddress(ewoqAddress), signer.Address())
}

func TestGetSignerKeystore(t *testing.T) {
	require := require.New(t)
	app := NewTestApp(t)
	_, err := app.SaveKey(constants.DeployerKeyName, ewoqKey(t), "secret")
	require.NoError(err)
	require.FileExists(app.GetKeystorePath(constants.DeployerKeyName))

	// no prompt and no password file
	_, err = app.GetSigner(constants.DeployerKeyName)
	require.ErrorIs(err, ErrNoPassword)

	passwordFile := filepath.Join(t.TempDir(), "password")
	require.NoError(os.WriteFile(passwordFile, []byte("secret\n"), constants.WriteReadUserOnlyPerms))
	app.PasswordFile = passwordFile
	signer, err := app.GetSigner(constants.DeployerKeyName)
	require.NoError(err)
	require.Equal(common.HexToAddress(ewoqAddress), signer.Address())

	require.NoError(os.WriteFile(passwordFile, []byte("wrong"), constants.WriteReadUserOnlyPerms))
	_, err = app.GetSigner(constants.DeployerKeyName)
	require.ErrorIs(err, key.ErrWrongKeyPassword)
}

func TestGetKeyPrefersSoftKey(t *testing.T) {
	require := require.New(t)
	app := NewTestApp(t)
	prompter := &passwordPrompter{password: "secret"}
	app.Prompt = prompter

	other, err := key.NewSoft()
	require.NoError(err)
	_, err = app.SaveKey("ops", other, "secret")
	require.NoError(err)
	_, err = app.SaveKey("ops", ewoqKey(t), "")
	require.NoError(err)

	k, err := app.GetKey("ops")
	require.NoError(err)
	require.Equal(ewoqAddress, k.C())
	require.Zero(prompter.asked)

	require.NoError(os.Remove(app.GetKeyPath("ops")))
	k, err = app.GetKey("ops")
	require.NoError(err)
	require.Equal(other.C(), k.C())
	require.Equal(1, prompter.asked)
}

func TestGetSignerMissingKey(t *testing.T) {
	app := NewTestApp(t)
	_, err := app.GetSigner(constants.DeployerKeyName)
	require.ErrorIs(t, err, key.ErrKeyNotFound)
}

func TestValidateKeyName(t *testing.T) {
	require.NoError(t, ValidateKeyName("deployer_account"))
	require.NoError(t, ValidateKeyName("ops-2.backup"))
	require.ErrorIs(t, ValidateKeyName(""), key.ErrInvalidKeyName)
	require.ErrorIs(t, ValidateKeyName("../deployer_account"), key.ErrInvalidKeyName)
	_, err := NewTestApp(t).GetKey("a/b")
	require.ErrorIs(t, err, key.ErrInvalidKeyName)
}

func TestCopyKeyFile(t *testing.T) {
	require := require.New(t)
	app := NewTestApp(t)
	src := filepath.Join(t.TempDir(), "ewoq.pk")
	require.NoError(ewoqKey(t).Save(src))

	require.NoError(app.CopyKeyFile(src, constants.DeployerKeyName))
	require.FileExists(app.GetKeyPath(constants.DeployerKeyName))
	names, err := app.GetKeyNames()
	require.NoError(err)
	require.Equal([]string{constants.DeployerKeyName}, names)

	keystoreSrc := filepath.Join(t.TempDir(), "ops.json")
	require.NoError(ewoqKey(t).SaveKeystore(keystoreSrc, "secret"))
	require.NoError(app.CopyKeyFile(keystoreSrc, "ops"))
	require.FileExists(app.GetKeystorePath("ops"))

	garbage := filepath.Join(t.TempDir(), "garbage.pk")
	require.NoError(os.WriteFile(garbage, []byte("not a key"), constants.WriteReadUserOnlyPerms))
	require.Error(app.CopyKeyFile(garbage, "garbage"))
	require.False(app.KeyExists("garbage"))
}

func TestRecordDeployment(t *testing.T) {
	require := require.New(t)
	app := NewTestApp(t)
	records, err := app.LoadDeployments()
	require.NoError(err)
	require.Empty(records)

	result := &deployer.Result{
		Recipe:          "plentilei-v2",
		Artifact:        "PlentiLEIV2",
		Deployer:        common.HexToAddress(ewoqAddress),
		ContractAddress: common.HexToAddress("0x17aB05351fC94a1a67Bf3f56DdbB941aE6c63E25"),
		DeployTxHash:    common.HexToHash("0x01"),
	}
	app.RecordDeployment(NewDeploymentRecord("http://127.0.0.1:9650/ext/bc/C/rpc", result, nil))
	postDeployErr := &deployer.PostDeployError{
		ContractAddress: result.ContractAddress,
		Method:          "setAdjuster",
		Err:             errors.New("reverted"),
	}
	app.RecordDeployment(NewDeploymentRecord("http://127.0.0.1:9650/ext/bc/C/rpc", result, postDeployErr))
	unconfirmedErr := &deployer.UnconfirmedDeployError{
		ContractAddress: result.ContractAddress,
		TxHash:          result.DeployTxHash,
		Err:             context.DeadlineExceeded,
	}
	app.RecordDeployment(NewDeploymentRecord("http://127.0.0.1:9650/ext/bc/C/rpc", result, unconfirmedErr))

	records, err = app.LoadDeployments()
	require.NoError(err)
	require.Len(records, 3)
	require.Equal("0x17aB05351fC94a1a67Bf3f56DdbB941aE6c63E25", records[0].ContractAddress)
	require.Empty(records[0].FailedCall)
	require.False(records[0].Unconfirmed)
	require.Equal("setAdjuster", records[1].FailedCall)
	require.False(records[1].Unconfirmed)
	require.True(records[2].Unconfirmed)
	require.Equal(common.HexToHash("0x01").Hex(), records[2].DeployTxHash)
}
