// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package evmtest provides an in-memory EVM client for tests. It accepts
// signed transactions, assigns contract addresses the way a node does and
// hands out receipts immediately.
package evmtest

import (
	"context"
	"errors"
	"math/big"
	"sync"

	ethereum "github.com/ava-labs/libevm"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/ava-labs/libevm/crypto"
)

var ErrNotSupported = errors.New("not supported by fake client")

type Client struct {
	mu sync.Mutex

	ChainIDValue *big.Int
	BaseFee      *big.Int
	GasTipCap    *big.Int
	GasLimit     uint64

	// ChainIDErr, SendErr and EstimateGasErr make the matching calls fail.
	ChainIDErr     error
	SendErr        error
	EstimateGasErr error
	// Revert decides whether an accepted transaction gets a failed receipt.
	Revert func(tx *types.Transaction) bool
	// Pending leaves accepted transactions without a receipt.
	Pending bool

	Sent     []*types.Transaction
	Closed   bool
	balances map[common.Address]*big.Int
	nonces   map[common.Address]uint64
	code     map[common.Address][]byte
	receipts map[common.Hash]*types.Receipt
}

func NewClient(chainID int64) *Client {
	return &Client{
		ChainIDValue: big.NewInt(chainID),
		BaseFee:      big.NewInt(25_000_000_000),
		GasTipCap:    big.NewInt(1_000_000_000),
		GasLimit:     3_000_000,
		balances:     map[common.Address]*big.Int{},
		nonces:       map[common.Address]uint64{},
		code:         map[common.Address][]byte{},
		receipts:     map[common.Hash]*types.Receipt{},
	}
}

// SetBalance funds [address].
func (c *Client) SetBalance(address common.Address, balance *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances[address] = balance
}

// Code returns the code stored at [address] by a successful deploy.
func (c *Client) Code(address common.Address) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code[address]
}

// Sender recovers the signer of [tx].
func (c *Client) Sender(tx *types.Transaction) (common.Address, error) {
	return types.Sender(types.LatestSignerForChainID(c.ChainIDValue), tx)
}

func (c *Client) ChainID(context.Context) (*big.Int, error) {
	if c.ChainIDErr != nil {
		return nil, c.ChainIDErr
	}
	return new(big.Int).Set(c.ChainIDValue), nil
}

func (c *Client) BalanceAt(_ context.Context, account common.Address, _ *big.Int) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.balances[account]; ok {
		return new(big.Int).Set(b), nil
	}
	return big.NewInt(0), nil
}

func (c *Client) NonceAt(_ context.Context, account common.Address, _ *big.Int) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nonces[account], nil
}

func (c *Client) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return c.NonceAt(ctx, account, nil)
}

func (c *Client) CodeAt(_ context.Context, contract common.Address, _ *big.Int) ([]byte, error) {
	return c.Code(contract), nil
}

func (c *Client) PendingCodeAt(_ context.Context, account common.Address) ([]byte, error) {
	return c.Code(account), nil
}

func (*Client) CallContract(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
	return nil, nil
}

func (c *Client) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{
		Number:  big.NewInt(1),
		BaseFee: new(big.Int).Set(c.BaseFee),
	}, nil
}

func (c *Client) SuggestGasPrice(context.Context) (*big.Int, error) {
	return new(big.Int).Add(c.BaseFee, c.GasTipCap), nil
}

func (c *Client) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return new(big.Int).Set(c.GasTipCap), nil
}

func (c *Client) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	if c.EstimateGasErr != nil {
		return 0, c.EstimateGasErr
	}
	return c.GasLimit, nil
}

func (c *Client) SendTransaction(_ context.Context, tx *types.Transaction) error {
	if c.SendErr != nil {
		return c.SendErr
	}
	from, err := c.Sender(tx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sent = append(c.Sent, tx)
	c.nonces[from] = tx.Nonce() + 1
	if c.Pending {
		return nil
	}
	receipt := &types.Receipt{
		Type:        tx.Type(),
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      tx.Hash(),
		GasUsed:     tx.Gas(),
		BlockNumber: big.NewInt(int64(len(c.Sent))),
	}
	if c.Revert != nil && c.Revert(tx) {
		receipt.Status = types.ReceiptStatusFailed
	}
	if tx.To() == nil {
		receipt.ContractAddress = crypto.CreateAddress(from, tx.Nonce())
		if receipt.Status == types.ReceiptStatusSuccessful {
			c.code[receipt.ContractAddress] = tx.Data()
		}
	}
	c.receipts[tx.Hash()] = receipt
	return nil
}

func (c *Client) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.receipts[txHash]; ok {
		return r, nil
	}
	return nil, ethereum.NotFound
}

func (*Client) FilterLogs(context.Context, ethereum.FilterQuery) ([]types.Log, error) {
	return nil, nil
}

func (*Client) SubscribeFilterLogs(context.Context, ethereum.FilterQuery, chan<- types.Log) (ethereum.Subscription, error) {
	return nil, ErrNotSupported
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Closed = true
}
