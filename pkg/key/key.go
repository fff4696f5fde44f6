// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package key implements the local account store: named signing keys kept
// on disk either as plain hex soft keys or as encrypted keystore files.
package key

import (
	"crypto/ecdsa"
	"errors"

	"github.com/ava-labs/libevm/common"
)

var (
	ErrKeyNotFound      = errors.New("key not found")
	ErrInvalidKeyName   = errors.New("invalid key name")
	ErrWrongKeyPassword = errors.New("could not decrypt key with given password")
)

// Key defines methods for key manager interface.
type Key interface {
	// C returns the address in Ethereum format
	C() string
	// Address returns the raw address
	Address() common.Address
	// PrivateKey returns the ECDSA key used to sign transactions
	PrivateKey() *ecdsa.PrivateKey
}
