// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/ava-labs/token-deployer/pkg/config"
	"github.com/ava-labs/token-deployer/pkg/constants"
	"github.com/ava-labs/token-deployer/pkg/evm"
	"github.com/ava-labs/token-deployer/pkg/key"
	"github.com/ava-labs/token-deployer/pkg/prompts"
	"github.com/ava-labs/token-deployer/pkg/utils"
	"github.com/ava-labs/avalanchego/utils/logging"

	"go.uber.org/zap"
)

var (
	ErrNoPassword = errors.New("keystore password needed but no password file given and prompting is disabled")

	keyNameRegexp = regexp.MustCompile(`^[A-Za-z0-9_\-.]+$`)
)

type TokenDeployer struct {
	Log     logging.Logger
	baseDir string
	Conf    *config.Config
	Prompt  prompts.Prompter
	// PasswordFile holds the password of keystore keys. When empty the
	// password is prompted for.
	PasswordFile string
}

func New() *TokenDeployer {
	return &TokenDeployer{}
}

func (app *TokenDeployer) Setup(baseDir string, log logging.Logger, conf *config.Config, prompt prompts.Prompter) {
	app.baseDir = baseDir
	app.Log = log
	app.Conf = conf
	app.Prompt = prompt
}

func (app *TokenDeployer) GetBaseDir() string {
	return app.baseDir
}

func (app *TokenDeployer) GetLogDir() string {
	return filepath.Join(app.baseDir, constants.LogDir)
}

func (app *TokenDeployer) GetConfigPath() string {
	return filepath.Join(app.baseDir, constants.ConfigFile)
}

func (app *TokenDeployer) GetKeyDir() string {
	return filepath.Join(app.baseDir, constants.KeyDir)
}

func (app *TokenDeployer) GetKeyPath(keyName string) string {
	return filepath.Join(app.GetKeyDir(), keyName+constants.KeySuffix)
}

func (app *TokenDeployer) GetKeystorePath(keyName string) string {
	return filepath.Join(app.GetKeyDir(), keyName+constants.KeystoreSuffix)
}

func ValidateKeyName(keyName string) error {
	if !keyNameRegexp.MatchString(keyName) {
		return fmt.Errorf("%w: %q, only letters, digits, '_', '-' and '.' are allowed", key.ErrInvalidKeyName, keyName)
	}
	return nil
}

func (app *TokenDeployer) KeyExists(keyName string) bool {
	return utils.FileExists(app.GetKeyPath(keyName)) || utils.FileExists(app.GetKeystorePath(keyName))
}

func (app *TokenDeployer) GetKeyNames() ([]string, error) {
	return utils.GetKeyNames(app.GetKeyDir())
}

func (app *TokenDeployer) ensureKeyDir() error {
	return os.MkdirAll(app.GetKeyDir(), constants.DefaultPerms755)
}

// CopyKeyFile imports [inputFilename] as [keyName]. Keystore json files keep
// their format, anything else has to be a soft key.
func (app *TokenDeployer) CopyKeyFile(inputFilename string, keyName string) error {
	if err := ValidateKeyName(keyName); err != nil {
		return err
	}
	if err := app.ensureKeyDir(); err != nil {
		return err
	}
	keyPath := app.GetKeyPath(keyName)
	if filepath.Ext(inputFilename) == constants.KeystoreSuffix {
		keyPath = app.GetKeystorePath(keyName)
	} else if _, err := key.LoadSoft(inputFilename); err != nil {
		return err
	}
	return utils.FileCopy(utils.ExpandHome(inputFilename), keyPath)
}

// SaveKey stores [k] as a soft key, or as a keystore encrypted with
// [password] when given
func (app *TokenDeployer) SaveKey(keyName string, k *key.SoftKey, password string) (string, error) {
	if err := ValidateKeyName(keyName); err != nil {
		return "", err
	}
	if err := app.ensureKeyDir(); err != nil {
		return "", err
	}
	if password != "" {
		keyPath := app.GetKeystorePath(keyName)
		return keyPath, k.SaveKeystore(keyPath, password)
	}
	keyPath := app.GetKeyPath(keyName)
	return keyPath, k.Save(keyPath)
}

func (app *TokenDeployer) keystorePassword(keyName string) (string, error) {
	if app.PasswordFile != "" {
		return utils.ReadTrimmedFile(utils.ExpandHome(app.PasswordFile))
	}
	if app.Prompt == nil {
		return "", ErrNoPassword
	}
	return app.Prompt.CapturePassword(fmt.Sprintf("Password for key %s", keyName))
}

// GetKey loads [keyName], looking first for a soft key and then for a keystore
func (app *TokenDeployer) GetKey(keyName string) (*key.SoftKey, error) {
	if err := ValidateKeyName(keyName); err != nil {
		return nil, err
	}
	keyPath := app.GetKeyPath(keyName)
	if utils.FileExists(keyPath) {
		return key.LoadSoft(keyPath)
	}
	keystorePath := app.GetKeystorePath(keyName)
	if utils.FileExists(keystorePath) {
		password, err := app.keystorePassword(keyName)
		if err != nil {
			return nil, err
		}
		return key.LoadKeystore(keystorePath, password)
	}
	return nil, fmt.Errorf("%w: %s (searched %s)", key.ErrKeyNotFound, keyName, app.GetKeyDir())
}

// GetSigner resolves [keyName] into a transaction signer
func (app *TokenDeployer) GetSigner(keyName string) (*evm.Signer, error) {
	k, err := app.GetKey(keyName)
	if err != nil {
		return nil, err
	}
	app.Log.Info("loaded signing key", zap.String("key", keyName), zap.String("address", k.C()))
	return evm.NewSigner(k.PrivateKey())
}
