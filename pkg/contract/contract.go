// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/token-deployer/pkg/evm"

	"github.com/ava-labs/libevm/accounts/abi"
	"github.com/ava-labs/libevm/accounts/abi/bind"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
)

var (
	ErrFailedReceiptStatus = errors.New("failed receipt status")
	ErrNoFunds             = errors.New("signer has no funds")
)

// UnconfirmedTxError reports a transaction that was sent but whose receipt
// could not be obtained. The transaction may still be mined.
type UnconfirmedTxError struct {
	TxHash common.Hash
	Err    error
}

func (e *UnconfirmedTxError) Error() string {
	return e.Err.Error()
}

func (e *UnconfirmedTxError) Unwrap() error {
	return e.Err
}

// Backend deploys contracts and issues state changing calls on them.
// Every method blocks until the transaction receipt is available.
type Backend interface {
	// Deploy deploys [artifact] with the already converted constructor [args].
	// When the transaction was sent but not confirmed, the expected contract
	// address is returned along with an *UnconfirmedTxError.
	Deploy(
		ctx context.Context,
		signer *evm.Signer,
		artifact *Artifact,
		args []interface{},
	) (common.Address, *types.Receipt, error)
	// Transact calls [method] of the contract at [contractAddress]
	Transact(
		ctx context.Context,
		signer *evm.Signer,
		contractAddress common.Address,
		contractABI abi.ABI,
		method string,
		args []interface{},
	) (*types.Receipt, error)
	Close()
}

// Dialer connects a Backend to an rpc endpoint
type Dialer func(ctx context.Context, rpcURL string) (Backend, error)

var _ Backend = (*ChainBackend)(nil)

// ChainBackend is a Backend over a live evm client
type ChainBackend struct {
	client evm.Client
}

func NewChainBackend(client evm.Client) *ChainBackend {
	return &ChainBackend{client: client}
}

// Dial is the Dialer for live networks
func Dial(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := evm.GetClient(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return NewChainBackend(client), nil
}

func (b *ChainBackend) Close() {
	b.client.Close()
}

func (b *ChainBackend) txOpts(ctx context.Context, signer *evm.Signer) (*bind.TransactOpts, error) {
	chainID, err := b.client.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	return signer.TransactOpts(ctx, chainID)
}

func (b *ChainBackend) Deploy(
	ctx context.Context,
	signer *evm.Signer,
	artifact *Artifact,
	args []interface{},
) (common.Address, *types.Receipt, error) {
	txOpts, err := b.txOpts(ctx, signer)
	if err != nil {
		return common.Address{}, nil, err
	}
	balance, err := b.client.GetAddressBalance(ctx, signer.Address())
	if err != nil {
		return common.Address{}, nil, err
	}
	if balance.Sign() == 0 {
		return common.Address{}, nil, fmt.Errorf("%w: %s can not pay for deploying %s", ErrNoFunds, signer.Address().Hex(), artifact.Name)
	}
	address, tx, _, err := bind.DeployContract(
		txOpts,
		artifact.ABI,
		artifact.Bytecode,
		b.client.EthClient,
		args...,
	)
	if err != nil {
		return common.Address{}, nil, evm.TransactionError(tx, err, "failure deploying %s", artifact.Name)
	}
	receipt, success, err := b.client.WaitForTransaction(ctx, tx)
	if err != nil {
		return address, nil, &UnconfirmedTxError{
			TxHash: tx.Hash(),
			Err:    evm.TransactionError(tx, err, "failure confirming deployment of %s", artifact.Name),
		}
	} else if !success {
		return common.Address{}, receipt, evm.TransactionError(tx, ErrFailedReceiptStatus, "failure deploying %s", artifact.Name)
	}
	if receipt.ContractAddress != (common.Address{}) {
		address = receipt.ContractAddress
	}
	return address, receipt, nil
}

func (b *ChainBackend) Transact(
	ctx context.Context,
	signer *evm.Signer,
	contractAddress common.Address,
	contractABI abi.ABI,
	method string,
	args []interface{},
) (*types.Receipt, error) {
	txOpts, err := b.txOpts(ctx, signer)
	if err != nil {
		return nil, err
	}
	client := b.client.EthClient
	contract := bind.NewBoundContract(contractAddress, contractABI, client, client, client)
	tx, err := contract.Transact(txOpts, method, args...)
	if err != nil {
		return nil, evm.TransactionError(tx, err, "failure calling %s on %s", method, contractAddress.Hex())
	}
	receipt, success, err := b.client.WaitForTransaction(ctx, tx)
	if err != nil {
		return nil, evm.TransactionError(tx, err, "failure calling %s on %s", method, contractAddress.Hex())
	} else if !success {
		return receipt, evm.TransactionError(tx, ErrFailedReceiptStatus, "failure calling %s on %s", method, contractAddress.Hex())
	}
	return receipt, nil
}
