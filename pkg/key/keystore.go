// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package key

import (
	"errors"
	"fmt"
	"os"

	"github.com/ava-labs/token-deployer/pkg/constants"

	"github.com/ava-labs/libevm/accounts/keystore"
	"github.com/google/uuid"
)

// LoadKeystore decrypts a Web3 Secret Storage (keystore v3) file.
func LoadKeystore(keyPath string, password string) (*SoftKey, error) {
	keyJSON, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}
	return LoadKeystoreFromBytes(keyJSON, password)
}

func LoadKeystoreFromBytes(keyJSON []byte, password string) (*SoftKey, error) {
	k, err := keystore.DecryptKey(keyJSON, password)
	if err != nil {
		if errors.Is(err, keystore.ErrDecrypt) {
			return nil, ErrWrongKeyPassword
		}
		return nil, fmt.Errorf("failure decoding keystore file: %w", err)
	}
	return NewSoft(WithPrivateKey(k.PrivateKey))
}

// SaveKeystore encrypts [m] with [password] and writes it to [keyPath].
// Light scrypt parameters keep key creation interactive.
func (m *SoftKey) SaveKeystore(keyPath string, password string) error {
	k := &keystore.Key{
		Address:    m.address,
		PrivateKey: m.privKey,
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}
	k.Id = id
	keyJSON, err := keystore.EncryptKey(k, password, keystore.LightScryptN, keystore.LightScryptP)
	if err != nil {
		return err
	}
	return os.WriteFile(keyPath, keyJSON, constants.WriteReadUserOnlyPerms)
}
