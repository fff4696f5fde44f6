// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"github.com/ava-labs/token-deployer/pkg/constants"
	"github.com/ava-labs/token-deployer/pkg/utils"

	"github.com/ava-labs/libevm/accounts/abi/bind"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/ava-labs/libevm/ethclient"
)

const repeatsOnFailure = 3

var sleepBetweenRepeats = 1 * time.Second

// EthClient is the subset of ethclient.Client used to deploy and configure contracts.
type EthClient interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	Close()
}

// used to mock the connection function
var ethclientDialContext = func(ctx context.Context, rawurl string) (EthClient, error) {
	client, err := ethclient.DialContext(ctx, rawurl)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// wraps over ethclient for calls used by the deployer. features:
// - finds out url scheme in case it is missing, to connect to ws/wss/http/https
// - repeats read calls to try to recover from failures
// - logs rpc url in case of failure
type Client struct {
	EthClient EthClient
	URL       string
}

// indicates if the given rpc url has schema or not
func HasScheme(rpcURL string) (bool, error) {
	if parsedURL, err := url.Parse(rpcURL); err != nil {
		if !strings.Contains(err.Error(), "first path segment in URL cannot contain colon") {
			return false, err
		}
		return false, nil
	} else {
		return strings.Contains(rpcURL, "://") && parsedURL.Scheme != "", nil
	}
}

// tries to connect an ethclient to a rpc url without scheme,
// by trying out different possible schemes: ws, wss, https, http
func GetClientWithoutScheme(ctx context.Context, rpcURL string) (EthClient, string, error) {
	if b, err := HasScheme(rpcURL); err != nil {
		return nil, "", err
	} else if b {
		return nil, "", fmt.Errorf("url does have scheme")
	}
	notDeterminedErr := fmt.Errorf("url %s has no scheme and protocol could not be determined", rpcURL)
	// let's start with ws it always give same error for http/https/wss
	scheme := "ws://"
	client, err := ethclientDialContext(ctx, scheme+rpcURL)
	if err == nil {
		return client, scheme, nil
	} else if !strings.Contains(err.Error(), "websocket: bad handshake") {
		return nil, "", notDeterminedErr
	}
	// wss give specific errors for http/http
	scheme = "wss://"
	client, err = ethclientDialContext(ctx, scheme+rpcURL)
	if err == nil {
		return client, scheme, nil
	} else if !strings.Contains(err.Error(), "websocket: bad handshake") && // may be https
		!strings.Contains(err.Error(), "first record does not look like a TLS handshake") { // may be http
		return nil, "", notDeterminedErr
	}
	// https/http discrimination based on sending a specific query
	scheme = "https://"
	client, err = ethclientDialContext(ctx, scheme+rpcURL)
	if err == nil {
		_, err = client.ChainID(ctx)
		switch {
		case err == nil:
			return client, scheme, nil
		case strings.Contains(err.Error(), "server gave HTTP response to HTTPS client"):
			scheme = "http://"
			client, err = ethclientDialContext(ctx, scheme+rpcURL)
			if err == nil {
				return client, scheme, nil
			}
		}
	}
	return nil, "", notDeterminedErr
}

// connects an evm client to the given [rpcURL]
// supports [repeatsOnFailure] failures
func GetClient(ctx context.Context, rpcURL string) (Client, error) {
	client := Client{
		URL: rpcURL,
	}
	if rpcURL == "" {
		return client, constants.ErrNoRPCURL
	}
	hasScheme, err := HasScheme(rpcURL)
	if err != nil {
		return client, fmt.Errorf("failure determining the scheme of url %s: %w", rpcURL, err)
	}
	client.EthClient, err = utils.RetryWithContext(
		ctx,
		constants.APIRequestLargeTimeout,
		func(ctx context.Context) (EthClient, error) {
			if hasScheme {
				return ethclientDialContext(ctx, rpcURL)
			}
			client, _, err := GetClientWithoutScheme(ctx, rpcURL)
			return client, err
		},
		repeatsOnFailure,
		sleepBetweenRepeats,
	)
	if err != nil {
		err = fmt.Errorf("failure connecting to %s: %w", rpcURL, err)
	}
	return client, err
}

// closes underlying ethclient connection
func (client Client) Close() {
	if client.EthClient != nil {
		client.EthClient.Close()
	}
}

// returns the chain id of the network
// supports [repeatsOnFailure] failures
func (client Client) ChainID(ctx context.Context) (*big.Int, error) {
	chainID, err := utils.RetryWithContext(
		ctx,
		constants.APIRequestTimeout,
		client.EthClient.ChainID,
		repeatsOnFailure,
		sleepBetweenRepeats,
	)
	if err != nil {
		err = fmt.Errorf("failure getting chain id from %s: %w", client.URL, err)
	}
	return chainID, err
}

// returns the balance for [address]
// supports [repeatsOnFailure] failures
func (client Client) GetAddressBalance(
	ctx context.Context,
	address common.Address,
) (*big.Int, error) {
	balance, err := utils.RetryWithContext(
		ctx,
		constants.APIRequestTimeout,
		func(ctx context.Context) (*big.Int, error) {
			return client.EthClient.BalanceAt(ctx, address, nil)
		},
		repeatsOnFailure,
		sleepBetweenRepeats,
	)
	if err != nil {
		err = fmt.Errorf("failure obtaining balance for %s on %s: %w", address.Hex(), client.URL, err)
	}
	return balance, err
}

// waits for [tx]'s receipt to be available, and returns it together with
// an indication of the tx being successful or reverted
func (client Client) WaitForTransaction(
	ctx context.Context,
	tx *types.Transaction,
) (*types.Receipt, bool, error) {
	if tx == nil {
		return nil, false, errors.New("no transaction to wait for")
	}
	receipt, err := bind.WaitMined(ctx, client.EthClient, tx)
	if err != nil {
		return nil, false, fmt.Errorf("failure waiting for tx %s on %s: %w", tx.Hash(), client.URL, err)
	}
	return receipt, receipt.Status == types.ReceiptStatusSuccessful, nil
}
