// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"strings"

	"github.com/ava-labs/libevm/accounts/abi/bind"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/crypto"
)

var ErrNilSigner = errors.New("no signer available")

// Signer signs EVM transactions with a local private key.
type Signer struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

func NewSigner(privateKey *ecdsa.PrivateKey) (*Signer, error) {
	if privateKey == nil {
		return nil, ErrNilSigner
	}
	return &Signer{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
	}, nil
}

// NewSignerFromPrivateKey creates a signer from a hex encoded private key, with or without 0x prefix
func NewSignerFromPrivateKey(privateKey string) (*Signer, error) {
	pk, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, err
	}
	return NewSigner(pk)
}

func (s *Signer) Address() common.Address {
	return s.address
}

// TransactOpts returns the options needed to sign and send txs on [chainID] bound to [ctx]
func (s *Signer) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	if s == nil {
		return nil, ErrNilSigner
	}
	opts, err := bind.NewKeyedTransactorWithChainID(s.privateKey, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}
